// Package ship defines the space object that owns an item list and a device
// system, and persists both through the save stream.
package ship

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shipyard/internal/game/device"
	"github.com/cory-johannsen/shipyard/internal/game/dice"
	"github.com/cory-johannsen/shipyard/internal/game/item"
)

var (
	// ErrItemNotFound is returned when no item in the ship's list has the requested instance ID.
	ErrItemNotFound = errors.New("ship: item not found")
	// ErrNothingInstalled is returned when uninstalling from an empty slot.
	ErrNothingInstalled = errors.New("ship: nothing installed in slot")
)

// Options bounds the device system of every ship built with them.
type Options struct {
	// MaxSlots caps slot growth; 0 means unbounded.
	MaxSlots int
	// MinSlots is the number of slots allocated at outfitting even when the loadout is shorter.
	MinSlots int
}

// Ship is a space object: a stable handle, an item list, and the devices
// installed from it. Ship is not safe for concurrent use.
type Ship struct {
	id      uuid.UUID
	Name    string
	player  bool
	items   *item.List
	Devices *device.System

	opts   Options
	power  PowerStatus
	logger *zap.Logger
}

// New returns a ship with no items and no devices.
//
// Precondition: classes must be non-nil.
func New(name string, player bool, classes *device.Registry, opts Options, logger *zap.Logger) *Ship {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	return newShip(id, name, player, item.NewList(), classes, opts, logger)
}

func newShip(id uuid.UUID, name string, player bool, items *item.List, classes *device.Registry, opts Options, logger *zap.Logger) *Ship {
	logger = logger.With(zap.String("ship", id.String()))
	return &Ship{
		id:      id,
		Name:    name,
		player:  player,
		items:   items,
		Devices: device.NewSystem(classes, opts.MaxSlots, logger),
		opts:    opts,
		logger:  logger,
	}
}

// ID returns the ship's stable handle.
func (s *Ship) ID() uuid.UUID { return s.id }

// IsPlayer reports whether the ship is the player's.
func (s *Ship) IsPlayer() bool { return s.player }

// Items returns the ship's item list.
func (s *Ship) Items() *item.List { return s.items }

// Outfit replaces the ship's devices with the loadout's. Loadout items are
// added to the ship's existing item list.
//
// Postcondition: at least max(len(l.Devices), l.MinSlots, opts.MinSlots) slots
// exist, subject to opts.MaxSlots.
func (s *Ship) Outfit(l *device.Loadout) error {
	if err := s.Devices.Init(s, l.Devices, max(l.MinSlots, s.opts.MinSlots)); err != nil {
		s.Devices.CleanUp()
		return fmt.Errorf("ship: outfitting %q with %q: %w", s.Name, l.ID, err)
	}
	s.logger.Info("ship outfitted",
		zap.String("loadout", l.ID),
		zap.Int("slots", s.Devices.Count()),
	)
	return nil
}

func (s *Ship) cursorAt(instanceID string) (*item.Manipulator, error) {
	m := item.NewManipulator(s.items)
	for m.MoveCursorForward() {
		if m.ItemAtCursor().InstanceID == instanceID {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrItemNotFound, instanceID)
}

// Install installs the item with instanceID into slot, or into the first free
// slot when slot is device.NoSlot.
//
// Postcondition: returns the slot used; errors from the device system are wrapped.
func (s *Ship) Install(instanceID string, slot int) (int, error) {
	m, err := s.cursorAt(instanceID)
	if err != nil {
		return device.NoSlot, err
	}
	got, err := s.Devices.Install(s, m, slot, device.NoSlot, false)
	if err != nil {
		return device.NoSlot, fmt.Errorf("ship: installing %q: %w", instanceID, err)
	}
	return got, nil
}

// Uninstall removes the device in slot and returns its category.
func (s *Ship) Uninstall(slot int) (device.Category, error) {
	m := item.NewManipulator(s.items)
	s.Devices.SetCursorAtDevice(m, slot)
	cat, ok := s.Devices.Uninstall(s, m)
	if !ok {
		return device.CategoryOther, fmt.Errorf("%w: %d", ErrNothingInstalled, slot)
	}
	return cat, nil
}

// PowerStatus is the power budget computed by the last Update.
type PowerStatus struct {
	Used       int
	Generated  int
	Overloaded bool
}

// Update recomputes the power budget from the installed devices.
//
// Postcondition: Power() returns the new status; Overloaded is true when
// devices draw more than the reactors generate.
func (s *Ship) Update() PowerStatus {
	var u device.PowerUpdate
	s.Devices.AccumulatePowerUsed(s, &u)
	next := PowerStatus{Used: u.Used, Generated: u.Generated, Overloaded: u.Used > u.Generated}
	if next.Overloaded && !s.power.Overloaded {
		s.logger.Warn("reactor overloaded", zap.Int("used", next.Used), zap.Int("generated", next.Generated))
	}
	s.power = next
	return next
}

// Power returns the status computed by the last Update.
func (s *Ship) Power() PowerStatus { return s.power }

// CanBeDestroyed asks the installed devices whether the ship may be destroyed.
func (s *Ship) CanBeDestroyed(cause device.DestroyCause, attacker string) bool {
	return s.Devices.OnDestroyCheck(s, cause, attacker)
}

// ArmorEnhancements returns the enhancements the ship's devices grant to armor.
func (s *Ship) ArmorEnhancements(armor device.Armor) *device.EnhancementStack {
	var stack device.EnhancementStack
	s.Devices.AccumulateEnhancementsToArmor(s, armor, &stack)
	return &stack
}

// RandomDevice picks a random installed device, enabled ones only when
// enabledOnly is set. Returns device.NoSlot when none qualifies.
func (s *Ship) RandomDevice(src dice.Source, enabledOnly bool) int {
	slot := s.Devices.FindRandomIndex(src, enabledOnly)
	s.logger.Debug("random device", zap.Int("slot", slot), zap.Bool("enabled_only", enabledOnly))
	return slot
}
