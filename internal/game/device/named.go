package device

// NoSlot is the slot index meaning "no slot".
const NoSlot = -1

// NamedTable maps each Role to the slot index that holds it, or NoSlot.
//
// Invariant (maintained by System): at most one role refers to any slot, and a
// role referring to slot i implies slot i is non-empty with the role's category.
type NamedTable struct {
	slots [roleCount]int
}

// NewNamedTable returns a table with every role cleared.
func NewNamedTable() NamedTable {
	var t NamedTable
	t.Reset()
	return t
}

// Reset clears every role.
//
// Postcondition: Get(r) returns (NoSlot, false) for every role.
func (t *NamedTable) Reset() {
	for i := range t.slots {
		t.slots[i] = NoSlot
	}
}

// Get returns the slot holding r.
//
// Postcondition: ok is false iff r is invalid or unassigned; slot is NoSlot then.
func (t *NamedTable) Get(r Role) (slot int, ok bool) {
	if !r.Valid() {
		return NoSlot, false
	}
	s := t.slots[r]
	return s, s != NoSlot
}

// Index returns the slot holding r, or NoSlot.
func (t *NamedTable) Index(r Role) int {
	s, _ := t.Get(r)
	return s
}

// Set assigns r to slot. Passing NoSlot clears the role.
//
// Precondition: r.Valid().
func (t *NamedTable) Set(r Role, slot int) {
	t.slots[r] = slot
}

// Clear unassigns r.
func (t *NamedTable) Clear(r Role) {
	t.slots[r] = NoSlot
}

// RoleOf returns the first role that refers to slot, or RoleNone.
func (t *NamedTable) RoleOf(slot int) Role {
	if slot == NoSlot {
		return RoleNone
	}
	for i, s := range t.slots {
		if s == slot {
			return Role(i)
		}
	}
	return RoleNone
}
