package item

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotInstalled is the Installed() value of an item that occupies no device slot.
const NotInstalled = -1

// Item is a concrete stack of one Type held by a ship.
//
// Invariant: an installed item has Count == 1.
type Item struct {
	// InstanceID uniquely identifies this stack.
	InstanceID string
	// Type is the static item definition.
	Type *Type
	// Count is the number of units in the stack.
	Count int

	installed int
}

// New returns an uninstalled Item of count units of t.
//
// Precondition: t must be non-nil; count > 0.
func New(t *Type, count int) Item {
	return Item{Type: t, Count: count, installed: NotInstalled}
}

// IsInstalled reports whether the item occupies a device slot.
func (i *Item) IsInstalled() bool { return i.installed != NotInstalled }

// Installed returns the device slot index the item occupies, or NotInstalled.
func (i *Item) Installed() int { return i.installed }

// Restore rebuilds an Item from persisted state, including its installed slot.
//
// Precondition: t must be non-nil; count > 0; installed >= NotInstalled.
func Restore(instanceID string, t *Type, count, installed int) Item {
	return Item{InstanceID: instanceID, Type: t, Count: count, installed: installed}
}

// List is an ordered collection of item stacks owned by one ship.
type List struct {
	items []*Item
}

// NewList returns an empty List.
func NewList() *List {
	return &List{}
}

// Append adds it as a new stack without merging and keeps its installed slot.
// Used when rebuilding a list from a save stream.
func (l *List) Append(it Item) *Item {
	added := it
	l.items = append(l.items, &added)
	return &added
}

// Len returns the number of stacks in the list.
func (l *List) Len() int { return len(l.items) }

// Items returns a snapshot of the stacks in list order.
//
// Postcondition: the returned slice is a copy; the *Item values are shared.
func (l *List) Items() []*Item {
	out := make([]*Item, len(l.items))
	copy(out, l.items)
	return out
}

// CountOf returns the total units of typeID across all uninstalled stacks.
func (l *List) CountOf(typeID string) int {
	n := 0
	for _, it := range l.items {
		if it.Type.ID == typeID && !it.IsInstalled() {
			n += it.Count
		}
	}
	return n
}

// Manipulator walks a List with a cursor and applies edits at the cursor.
// A fresh Manipulator has its cursor before the first item.
type Manipulator struct {
	list   *List
	cursor int
}

// NewManipulator returns a Manipulator over l with the cursor reset.
//
// Precondition: l must be non-nil.
func NewManipulator(l *List) *Manipulator {
	return &Manipulator{list: l, cursor: -1}
}

// List returns the list being manipulated.
func (m *Manipulator) List() *List { return m.list }

// ResetCursor moves the cursor before the first item.
func (m *Manipulator) ResetCursor() { m.cursor = -1 }

// MoveCursorForward advances the cursor and reports whether it is on an item.
func (m *Manipulator) MoveCursorForward() bool {
	if m.cursor < len(m.list.items) {
		m.cursor++
	}
	return m.cursor < len(m.list.items)
}

// IsCursorValid reports whether the cursor is on an item.
func (m *Manipulator) IsCursorValid() bool {
	return m.cursor >= 0 && m.cursor < len(m.list.items)
}

// ItemAtCursor returns the item under the cursor, or nil if the cursor is off the list.
func (m *Manipulator) ItemAtCursor() *Item {
	if !m.IsCursorValid() {
		return nil
	}
	return m.list.items[m.cursor]
}

// AddItem adds it to the list and leaves the cursor on the stack that received it.
// Stackable items merge into the first uninstalled stack of the same type with room.
//
// Precondition: it.Type must be non-nil and it.Count > 0.
// Postcondition: CountOf(it.Type.ID) increases by it.Count.
func (m *Manipulator) AddItem(it Item) error {
	if it.Type == nil {
		return errors.New("item: Manipulator.AddItem: item has no type")
	}
	if it.Count <= 0 {
		return fmt.Errorf("item: Manipulator.AddItem: count must be > 0, got %d", it.Count)
	}
	if it.Type.Stackable {
		for idx, existing := range m.list.items {
			if existing.Type == it.Type && !existing.IsInstalled() && existing.Count+it.Count <= it.Type.MaxStack {
				existing.Count += it.Count
				m.cursor = idx
				return nil
			}
		}
	}
	added := it
	added.installed = NotInstalled
	if added.InstanceID == "" {
		added.InstanceID = uuid.New().String()
	}
	m.list.items = append(m.list.items, &added)
	m.cursor = len(m.list.items) - 1
	return nil
}

// AddItems adds every item in items in order. The cursor ends on the last one added.
//
// Postcondition: on error, items before the failing one have been added.
func (m *Manipulator) AddItems(items []Item) error {
	for _, it := range items {
		if err := m.AddItem(it); err != nil {
			return err
		}
	}
	return nil
}

// SetInstalledAtCursor marks the item under the cursor as installed in slot.
// A multi-unit stack is split so that exactly one unit is installed; the cursor
// moves to the installed unit.
//
// Precondition: the cursor is valid; slot >= 0.
// Postcondition: ItemAtCursor().Installed() == slot and ItemAtCursor().Count == 1.
func (m *Manipulator) SetInstalledAtCursor(slot int) error {
	it := m.ItemAtCursor()
	if it == nil {
		return errors.New("item: Manipulator.SetInstalledAtCursor: cursor is not on an item")
	}
	if slot < 0 {
		return fmt.Errorf("item: Manipulator.SetInstalledAtCursor: invalid slot %d", slot)
	}
	if it.Count > 1 {
		it.Count--
		single := Item{
			InstanceID: uuid.New().String(),
			Type:       it.Type,
			Count:      1,
			installed:  slot,
		}
		m.list.items = append(m.list.items, &single)
		m.cursor = len(m.list.items) - 1
		return nil
	}
	it.installed = slot
	return nil
}

// ClearInstalledAtCursor marks the item under the cursor as no longer installed.
//
// Postcondition: ItemAtCursor().IsInstalled() == false.
func (m *Manipulator) ClearInstalledAtCursor() {
	if it := m.ItemAtCursor(); it != nil {
		it.installed = NotInstalled
	}
}
