package device

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cory-johannsen/shipyard/internal/game/item"
)

// LinkedFire is a set of flags describing when a device fires together with
// the active device of its category.
type LinkedFire uint32

const (
	// LinkedFireAlways fires on every trigger pull; such devices are never selectable.
	LinkedFireAlways LinkedFire = 1 << iota
	// LinkedFireTarget fires only when the owner has a target.
	LinkedFireTarget
	// LinkedFireEnemy fires only at enemies.
	LinkedFireEnemy

	linkedFireMask = LinkedFireAlways | LinkedFireTarget | LinkedFireEnemy
)

var linkedFireNames = map[string]LinkedFire{
	"always": LinkedFireAlways,
	"target": LinkedFireTarget,
	"enemy":  LinkedFireEnemy,
}

// ParseLinkedFire combines the named flags into one LinkedFire value.
func ParseLinkedFire(names []string) (LinkedFire, error) {
	var lf LinkedFire
	for _, n := range names {
		f, ok := linkedFireNames[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("device: unknown linked-fire option %q", n)
		}
		lf |= f
	}
	return lf, nil
}

// Slot is one position in a device system: empty, or holding exactly one
// installed device. The owner field is a handle, not a reference; the System
// is the only owner of its slots.
type Slot struct {
	class      Class
	owner      uuid.UUID
	index      int
	posIndex   int
	enabled    bool
	variant    int
	linkedFire LinkedFire
	charge     int
}

func newEmptySlot(index int) *Slot {
	return &Slot{index: index, posIndex: NoSlot}
}

// IsEmpty reports whether the slot holds no device.
func (s *Slot) IsEmpty() bool { return s.class == nil }

// Class returns the installed device class, or nil when empty.
func (s *Slot) Class() Class { return s.class }

// Category returns the installed device's category; CategoryOther when empty.
func (s *Slot) Category() Category {
	if s.class == nil {
		return CategoryOther
	}
	return s.class.Category()
}

// ID returns the installed class ID, or "" when empty.
func (s *Slot) ID() string {
	if s.class == nil {
		return ""
	}
	return s.class.ID()
}

// Owner returns the handle of the object the device is installed on.
func (s *Slot) Owner() uuid.UUID { return s.owner }

// Index returns the slot's own index in its System.
func (s *Slot) Index() int { return s.index }

// SetIndex stamps the slot's own index.
func (s *Slot) SetIndex(i int) { s.index = i }

// PosIndex returns the visual/ordering position hint, or NoSlot.
func (s *Slot) PosIndex() int { return s.posIndex }

// SetPosIndex sets the position hint.
func (s *Slot) SetPosIndex(i int) { s.posIndex = i }

// IsEnabled reports whether the device is switched on.
func (s *Slot) IsEnabled() bool { return s.enabled }

// SetEnabled switches the device on or off. Ignored for empty slots.
func (s *Slot) SetEnabled(on bool) {
	if s.class != nil {
		s.enabled = on
	}
}

// Variant returns the selected variant index.
func (s *Slot) Variant() int { return s.variant }

// SetVariant selects variant v. Called by Class implementations.
func (s *Slot) SetVariant(v int) { s.variant = v }

// LinkedFire returns the slot's linked-fire flags.
func (s *Slot) LinkedFire() LinkedFire { return s.linkedFire }

// SetLinkedFire replaces the slot's linked-fire flags.
func (s *Slot) SetLinkedFire(lf LinkedFire) { s.linkedFire = lf & linkedFireMask }

// IsLinkedFire reports whether the device is of category cat and fires linked
// with the active device of that category.
func (s *Slot) IsLinkedFire(ctx Ctx, cat Category) bool {
	if s.class == nil || s.Category() != cat {
		return false
	}
	return s.linkedFire != 0
}

// Charge returns the device's stored energy (shield level, capacitor charge).
func (s *Slot) Charge() int { return s.charge }

// SetCharge sets the stored energy. Called by Class implementations.
func (s *Slot) SetCharge(c int) { s.charge = c }

// IsSelectable reports whether the device may become the active device of its role.
func (s *Slot) IsSelectable(ctx Ctx) bool {
	if s.class == nil {
		return false
	}
	return s.class.IsSelectable(ctx)
}

// CalcPowerUsed returns the device's signed power draw; 0 when empty.
func (s *Slot) CalcPowerUsed(ctx Ctx) int {
	if s.class == nil {
		return 0
	}
	return s.class.PowerUsed(ctx)
}

// SlotsRequired returns the number of slots the device consumes; 0 when empty.
func (s *Slot) SlotsRequired() int {
	if s.class == nil {
		return 0
	}
	return s.class.SlotsRequired()
}

// initFromDesc copies the per-slot settings of a descriptor.
func (s *Slot) initFromDesc(d Desc) {
	s.posIndex = d.PosIndex
	s.linkedFire = d.LinkedFire & linkedFireMask
}

// install populates the slot with class and marks the item at the cursor as
// installed here.
//
// Precondition: the slot is empty; the cursor is on an item of class.ItemType().
func (s *Slot) install(owner Owner, m *item.Manipulator, index int, class Class, inCreate bool) error {
	if err := m.SetInstalledAtCursor(index); err != nil {
		return err
	}
	s.class = class
	s.index = index
	s.enabled = true
	s.variant = 0
	s.charge = 0
	if owner != nil {
		s.owner = owner.ID()
	}
	class.OnInstall(Ctx{Owner: owner, Slot: s}, inCreate)
	return nil
}

// uninstall clears the slot and the installed mark on the item at the cursor.
func (s *Slot) uninstall(owner Owner, m *item.Manipulator) {
	if s.class != nil {
		s.class.OnUninstall(Ctx{Owner: owner, Slot: s})
	}
	m.ClearInstalledAtCursor()
	s.clear()
}

func (s *Slot) clear() {
	s.class = nil
	s.owner = uuid.Nil
	s.posIndex = NoSlot
	s.enabled = false
	s.variant = 0
	s.linkedFire = 0
	s.charge = 0
}
