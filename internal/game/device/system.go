package device

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shipyard/internal/game/item"
)

// System owns the ordered device slots of one space object and the named
// table that records which slot is the active device of each role.
//
// Slots are recycled, never removed: the slot sequence only grows until
// CleanUp. System is not safe for concurrent use; the owning object
// serializes access.
type System struct {
	slots    []*Slot
	named    NamedTable
	classes  *Registry
	maxSlots int
	logger   *zap.Logger
}

// NewSystem returns an empty System.
//
// Precondition: classes must be non-nil; maxSlots >= 0 (0 = unbounded growth).
// Postcondition: Count() == 0 and every role is unassigned.
func NewSystem(classes *Registry, maxSlots int, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		named:    NewNamedTable(),
		classes:  classes,
		maxSlots: maxSlots,
		logger:   logger,
	}
}

// Count returns the number of slots, empty ones included.
func (s *System) Count() int { return len(s.slots) }

// Slot returns slot i, or nil when i is out of range.
func (s *System) Slot(i int) *Slot {
	if i < 0 || i >= len(s.slots) {
		return nil
	}
	return s.slots[i]
}

// Named returns a copy of the named-device table.
func (s *System) Named() NamedTable { return s.named }

// NamedIndex returns the slot holding role r, or NoSlot.
func (s *System) NamedIndex(r Role) int { return s.named.Index(r) }

// NamedSlot returns the slot holding role r, or nil.
func (s *System) NamedSlot(r Role) *Slot {
	i, ok := s.named.Get(r)
	if !ok {
		return nil
	}
	return s.Slot(i)
}

// NamedFromSlot returns the role held by slot i, or RoleNone.
func (s *System) NamedFromSlot(i int) Role { return s.named.RoleOf(i) }

// CleanUp removes every slot and clears the named table.
//
// Postcondition: Count() == 0 and every role is unassigned.
func (s *System) CleanUp() {
	s.slots = nil
	s.named.Reset()
}

func (s *System) grow(n int) {
	for i := 0; i < n; i++ {
		s.slots = append(s.slots, newEmptySlot(len(s.slots)))
	}
}

// FindFreeSlot returns the first empty slot, appending a new one when every
// slot is occupied.
//
// Postcondition: the returned slot is empty; Count() grows by at most one;
// returns ErrAllocationExhausted when growth would exceed the slot limit.
func (s *System) FindFreeSlot() (int, error) {
	for i, slot := range s.slots {
		if slot.IsEmpty() {
			return i, nil
		}
	}
	if s.maxSlots > 0 && len(s.slots) >= s.maxSlots {
		return NoSlot, fmt.Errorf("%w (limit %d)", ErrAllocationExhausted, s.maxSlots)
	}
	s.grow(1)
	return len(s.slots) - 1, nil
}

// IsSlotAvailable reports whether a device of cat can be installed without
// evicting another. For single-instance categories it returns false and the
// occupied slot when one is already installed; otherwise (true, NoSlot).
func (s *System) IsSlotAvailable(cat Category) (bool, int) {
	if !cat.IsSingleInstance() {
		return true, NoSlot
	}
	for i, slot := range s.slots {
		if !slot.IsEmpty() && slot.Category() == cat {
			return false, i
		}
	}
	return true, NoSlot
}

func (s *System) classAtCursor(m *item.Manipulator) (Class, error) {
	it := m.ItemAtCursor()
	if it == nil {
		return nil, fmt.Errorf("%w: cursor is not on an item", ErrNotDevice)
	}
	c, ok := s.classes.ForItemType(it.Type)
	if !ok {
		id := ""
		if it.Type != nil {
			id = it.Type.ID
		}
		return nil, fmt.Errorf("%w: item %q", ErrNotDevice, id)
	}
	if it.IsInstalled() {
		return nil, fmt.Errorf("%w: item %q is already installed in slot %d", ErrNotDevice, it.Type.ID, it.Installed())
	}
	return c, nil
}

// Install installs the item at the manipulator's cursor.
//
// slot selects the target slot; NoSlot picks one with FindFreeSlot. posIndex,
// when not NoSlot, sets the slot position hint. A selectable weapon or
// launcher always becomes the active device of its role, as do shields,
// drives, cargo holds, and reactors. Installing shields resets them to zero charge.
//
// Precondition: owner and m must be non-nil.
// Postcondition: on success returns the slot index and the item at the cursor
// is marked installed there; on error no state has changed.
func (s *System) Install(owner Owner, m *item.Manipulator, slot, posIndex int, inCreate bool) (int, error) {
	class, err := s.classAtCursor(m)
	if err != nil {
		return NoSlot, err
	}
	if slot == NoSlot {
		if slot, err = s.FindFreeSlot(); err != nil {
			return NoSlot, err
		}
	} else if slot < 0 || slot >= len(s.slots) {
		return NoSlot, fmt.Errorf("%w: %d (have %d)", ErrSlotOutOfRange, slot, len(s.slots))
	} else if !s.slots[slot].IsEmpty() {
		return NoSlot, fmt.Errorf("%w: slot %d holds %q", ErrSlotOccupied, slot, s.slots[slot].ID())
	}

	dev := s.slots[slot]
	if err := dev.install(owner, m, slot, class, inCreate); err != nil {
		return NoSlot, err
	}
	if posIndex != NoSlot {
		dev.SetPosIndex(posIndex)
	}

	ctx := Ctx{Owner: owner, Slot: dev}
	switch cat := dev.Category(); cat {
	case CategoryWeapon, CategoryLauncher:
		if dev.IsSelectable(ctx) {
			s.assign(cat, slot)
		}
	case CategoryShields:
		s.assign(cat, slot)
		class.Reset(ctx)
	case CategoryDrive, CategoryCargoHold, CategoryReactor:
		s.assign(cat, slot)
	case CategoryOther:
	}

	s.logger.Debug("device installed",
		zap.Int("slot", slot),
		zap.String("class", class.ID()),
		zap.Stringer("category", dev.Category()),
		zap.Bool("in_create", inCreate),
	)
	return slot, nil
}

func (s *System) assign(cat Category, slot int) {
	r, ok := cat.Role()
	if !ok {
		return
	}
	s.named.Set(r, slot)
	s.logger.Debug("named device assigned", zap.Stringer("role", r), zap.Int("slot", slot))
}

// Uninstall removes the installed device backing the item at the cursor.
//
// If the cleared slot held its category's role, a weapon role passes to the
// next selectable weapon; every other role is cleared.
//
// Postcondition: ok is false, and nothing changed, when the cursor item has no
// type, is not installed, or is not a device.
func (s *System) Uninstall(owner Owner, m *item.Manipulator) (cat Category, ok bool) {
	it := m.ItemAtCursor()
	if it == nil || it.Type == nil || !it.IsInstalled() {
		return CategoryOther, false
	}
	if _, isDevice := s.classes.ForItemType(it.Type); !isDevice {
		return CategoryOther, false
	}
	slot := it.Installed()
	dev := s.Slot(slot)
	if dev == nil || dev.IsEmpty() {
		return CategoryOther, false
	}

	cat = dev.Category()
	dev.uninstall(owner, m)

	if r, hasRole := cat.Role(); hasRole && s.named.Index(r) == slot {
		switch cat {
		case CategoryWeapon:
			s.named.Set(r, s.FindNextIndex(owner, slot, CategoryWeapon, 1))
		case CategoryLauncher, CategoryShields, CategoryDrive, CategoryCargoHold, CategoryReactor:
			s.named.Clear(r)
		case CategoryOther:
		}
		s.logger.Debug("named device released",
			zap.Stringer("role", r),
			zap.Int("slot", slot),
			zap.Int("successor", s.named.Index(r)),
		)
	}

	s.logger.Debug("device uninstalled", zap.Int("slot", slot), zap.Stringer("category", cat))
	return cat, true
}

// Init rebuilds the system from a descriptor list at object creation.
//
// Max(len(descs), minSlots) empty slots are allocated and descriptor i is
// installed into slot i. Each descriptor's item is added to the owner's list
// first and its extra items after. The earliest selectable weapon and
// launcher claim their roles; the earliest device of every other role
// category claims that role.
//
// Precondition: owner must be non-nil; minSlots >= 0.
// Postcondition: on error the system may be partially initialized; call CleanUp before retrying.
func (s *System) Init(owner Owner, descs []Desc, minSlots int) error {
	s.CleanUp()

	if s.maxSlots > 0 && len(descs) > s.maxSlots {
		return fmt.Errorf("%w: %d descriptors (limit %d)", ErrAllocationExhausted, len(descs), s.maxSlots)
	}
	n := max(len(descs), minSlots)
	if s.maxSlots > 0 {
		n = min(n, s.maxSlots)
	}
	s.grow(n)

	m := item.NewManipulator(owner.Items())
	for i, d := range descs {
		if err := m.AddItem(d.Item); err != nil {
			return fmt.Errorf("device: Init: descriptor %d: %w", i, err)
		}
		class, err := s.classAtCursor(m)
		if err != nil {
			return fmt.Errorf("device: Init: descriptor %d: %w", i, err)
		}

		dev := s.slots[i]
		dev.initFromDesc(d)
		if err := dev.install(owner, m, i, class, true); err != nil {
			return fmt.Errorf("device: Init: descriptor %d: %w", i, err)
		}

		ctx := Ctx{Owner: owner, Slot: dev}
		switch cat := dev.Category(); cat {
		case CategoryWeapon, CategoryLauncher:
			if r, _ := cat.Role(); s.named.Index(r) == NoSlot && dev.IsSelectable(ctx) {
				s.named.Set(r, i)
			}
		case CategoryShields, CategoryDrive, CategoryCargoHold, CategoryReactor:
			if r, _ := cat.Role(); s.named.Index(r) == NoSlot {
				s.named.Set(r, i)
			}
		case CategoryOther:
		}

		// Extra items move the cursor, so they go in last.
		if err := m.AddItems(d.ExtraItems); err != nil {
			return fmt.Errorf("device: Init: descriptor %d extra items: %w", i, err)
		}
	}

	s.logger.Debug("device system initialized",
		zap.Int("slots", len(s.slots)),
		zap.Int("devices", len(descs)),
	)
	return nil
}

// FindDevice returns the slot holding the installed device item it, or nil.
func (s *System) FindDevice(it *item.Item) *Slot {
	if it == nil || !it.IsInstalled() || it.Type == nil || !it.Type.IsDevice() {
		return nil
	}
	return s.Slot(it.Installed())
}

// FindNamedIndex returns the role held by the slot that it is installed in,
// or RoleNone when it is not installed or its slot holds no role.
func (s *System) FindNamedIndex(it *item.Item) Role {
	if it == nil || !it.IsInstalled() {
		return RoleNone
	}
	return s.named.RoleOf(it.Installed())
}

// SetCursorAtDevice moves the cursor to the item backing slot i. The cursor
// is left reset when the slot is empty, and past the end when no item matches.
func (s *System) SetCursorAtDevice(m *item.Manipulator, i int) {
	m.ResetCursor()
	dev := s.Slot(i)
	if dev == nil || dev.IsEmpty() {
		return
	}
	want := dev.Class().ItemType()
	for m.MoveCursorForward() {
		it := m.ItemAtCursor()
		if it.IsInstalled() && it.Type == want && it.Installed() == i {
			return
		}
	}
}

// SetCursorAtNamedDevice moves the cursor to the item backing role r. The
// cursor is untouched when r is unassigned.
func (s *System) SetCursorAtNamedDevice(m *item.Manipulator, r Role) {
	if i, ok := s.named.Get(r); ok {
		s.SetCursorAtDevice(m, i)
	}
}
