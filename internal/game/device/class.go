package device

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/shipyard/internal/game/item"
)

// Owner is the space object that devices are installed on.
type Owner interface {
	// ID returns the stable handle of the object.
	ID() uuid.UUID
	// IsPlayer reports whether the object is controlled by the player.
	IsPlayer() bool
	// Items returns the object's item list.
	Items() *item.List
}

// Ctx is the context passed to every Class call: the owning object and the
// slot holding the device. Owner may be nil when a device is queried outside
// of any object (for example while inspecting a save file).
type Ctx struct {
	Owner Owner
	Slot  *Slot
}

// DestroyCause identifies why an object is being destroyed.
type DestroyCause string

const (
	CauseDamage    DestroyCause = "damage"
	CauseEjecta    DestroyCause = "ejecta"
	CauseRadiation DestroyCause = "radiation"
	CauseSelf      DestroyCause = "self_destruct"
)

// Class is the behaviour shared by every device of one kind. Implementations
// own firing, absorption, and ammunition rules; System only routes calls.
type Class interface {
	// ID returns the unique class identifier.
	ID() string
	// ItemType returns the item type that installs as this class.
	ItemType() *item.Type
	// Category returns the functional category of the class.
	Category() Category
	// SlotsRequired returns how many device slots an installed instance consumes.
	SlotsRequired() int

	// OnInstall is called after the slot has been populated.
	OnInstall(ctx Ctx, inCreate bool)
	// OnUninstall is called before the slot is cleared.
	OnUninstall(ctx Ctx)
	// Reset returns the device to its idle state (shields drop to zero charge).
	Reset(ctx Ctx)

	// PowerUsed returns the signed power draw; negative values are generation.
	PowerUsed(ctx Ctx) int
	// IsSelectable reports whether the device may become the active device of its role.
	IsSelectable(ctx Ctx) bool

	// SelectFirstVariant selects the first available variant (ammunition type).
	SelectFirstVariant(ctx Ctx) bool
	// SelectNextVariant steps the variant selection in direction dir (+1 or -1).
	SelectNextVariant(ctx Ctx, dir int) bool
	// ValidateSelectedVariant normalizes the selected variant after the device becomes active.
	ValidateSelectedVariant(ctx Ctx)

	// OnDestroyCheck returns false to prevent the owner from being destroyed.
	OnDestroyCheck(ctx Ctx, cause DestroyCause, attacker string) bool
	// AccumulateEnhancements adds the device's enhancements for armor to stack
	// and reports whether it contributed anything.
	AccumulateEnhancements(ctx Ctx, armor Armor, stack *EnhancementStack) bool
}

// Armor identifies one armor segment of the owner being enhanced.
type Armor struct {
	Segment int
	TypeID  string
}

// Enhancement is one bonus applied to an armor segment.
type Enhancement struct {
	ID     string
	Source string
	Bonus  int
}

// EnhancementStack collects the enhancements applied to one armor segment.
// An enhancement ID is applied at most once.
type EnhancementStack struct {
	items []Enhancement
}

// Has reports whether an enhancement with id is already applied.
func (s *EnhancementStack) Has(id string) bool {
	for _, e := range s.items {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Add applies e unless an enhancement with the same ID is already present.
//
// Postcondition: returns true iff e was added.
func (s *EnhancementStack) Add(e Enhancement) bool {
	if s.Has(e.ID) {
		return false
	}
	s.items = append(s.items, e)
	return true
}

// IDs returns the applied enhancement IDs in application order.
func (s *EnhancementStack) IDs() []string {
	out := make([]string, len(s.items))
	for i, e := range s.items {
		out[i] = e.ID
	}
	return out
}

// TotalBonus sums the bonus of every applied enhancement.
func (s *EnhancementStack) TotalBonus() int {
	total := 0
	for _, e := range s.items {
		total += e.Bonus
	}
	return total
}
