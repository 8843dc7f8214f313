package device

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/shipyard/internal/game/dice"
)

// FindNextIndex scans the slots circularly for the next selectable device of
// cat, starting just past start in direction dir (+1 or -1). start == NoSlot
// begins before the first slot (dir +1) or after the last slot (dir -1).
//
// Postcondition: returns NoSlot when no slot qualifies, including when there are no slots.
func (s *System) FindNextIndex(owner Owner, start int, cat Category, dir int) int {
	n := len(s.slots)
	if n == 0 {
		return NoSlot
	}
	if dir < 0 {
		dir = -1
	} else {
		dir = 1
	}

	var first int
	if start == NoSlot {
		if dir == 1 {
			first = 0
		} else {
			first = n - 1
		}
	} else {
		first = start + dir
	}

	for i := 0; i < n; i++ {
		idx := ((first+dir*i)%n + n) % n
		dev := s.slots[idx]
		if !dev.IsEmpty() && dev.Category() == cat && dev.IsSelectable(Ctx{Owner: owner, Slot: dev}) {
			return idx
		}
	}
	return NoSlot
}

// FindRandomIndex picks a uniformly random non-empty slot, considering only
// enabled devices when enabledOnly is set.
//
// Postcondition: returns NoSlot when no slot qualifies.
func (s *System) FindRandomIndex(src dice.Source, enabledOnly bool) int {
	qualifies := func(dev *Slot) bool {
		return !dev.IsEmpty() && (!enabledOnly || dev.IsEnabled())
	}

	count := 0
	for _, dev := range s.slots {
		if qualifies(dev) {
			count++
		}
	}
	if count == 0 {
		return NoSlot
	}

	pick := dice.Between(src, 1, count)
	for i, dev := range s.slots {
		if qualifies(dev) {
			pick--
			if pick == 0 {
				return i
			}
		}
	}
	return NoSlot
}

// ReadyFirstWeapon makes the first selectable weapon the primary weapon.
func (s *System) ReadyFirstWeapon(owner Owner) {
	s.readyWeapon(owner, NoSlot, 1)
}

// ReadyNextWeapon makes the next selectable weapon after the current primary
// weapon, in direction dir, the primary weapon. The role is unchanged when no
// weapon qualifies.
func (s *System) ReadyNextWeapon(owner Owner, dir int) {
	s.readyWeapon(owner, s.named.Index(RolePrimaryWeapon), dir)
}

func (s *System) readyWeapon(owner Owner, start, dir int) {
	next := s.FindNextIndex(owner, start, CategoryWeapon, dir)
	if next == NoSlot {
		return
	}
	s.named.Set(RolePrimaryWeapon, next)
	dev := s.slots[next]
	dev.Class().ValidateSelectedVariant(Ctx{Owner: owner, Slot: dev})
	s.logger.Debug("primary weapon readied", zap.Int("slot", next), zap.String("class", dev.ID()))
}

// ReadyFirstMissile selects the first variant on the missile launcher and on
// every linked launcher of the same class.
func (s *System) ReadyFirstMissile(owner Owner) {
	s.forMissileGroup(owner, func(c Class, ctx Ctx) {
		c.SelectFirstVariant(ctx)
	})
}

// ReadyNextMissile steps the variant in direction dir on the missile launcher
// and on every linked launcher of the same class.
func (s *System) ReadyNextMissile(owner Owner, dir int) {
	s.forMissileGroup(owner, func(c Class, ctx Ctx) {
		c.SelectNextVariant(ctx, dir)
	})
}

// forMissileGroup applies fn to the missile launcher, then to every other
// non-empty slot of the identical class flagged linked-fire for launchers.
func (s *System) forMissileGroup(owner Owner, fn func(Class, Ctx)) {
	primary := s.NamedSlot(RoleMissileWeapon)
	if primary == nil || primary.IsEmpty() {
		return
	}
	class := primary.Class()
	fn(class, Ctx{Owner: owner, Slot: primary})

	for _, dev := range s.slots {
		if dev == primary || dev.IsEmpty() || dev.Class() != class {
			continue
		}
		ctx := Ctx{Owner: owner, Slot: dev}
		if dev.IsLinkedFire(ctx, CategoryLauncher) {
			fn(class, ctx)
		}
	}
}

// SelectWeapon makes slot i the active device of its role. A weapon becomes
// the primary weapon. A launcher becomes the missile weapon, is reset to its
// first variant, and is advanced variantOffset times.
//
// Postcondition: returns the role assigned, or RoleNone when slot i holds
// neither a weapon nor a launcher.
func (s *System) SelectWeapon(owner Owner, i, variantOffset int) Role {
	dev := s.Slot(i)
	if dev == nil || dev.IsEmpty() {
		return RoleNone
	}
	switch dev.Category() {
	case CategoryWeapon:
		s.named.Set(RolePrimaryWeapon, i)
		return RolePrimaryWeapon
	case CategoryLauncher:
		s.named.Set(RoleMissileWeapon, i)
		s.ReadyFirstMissile(owner)
		for ; variantOffset > 0; variantOffset-- {
			s.ReadyNextMissile(owner, 1)
		}
		return RoleMissileWeapon
	default:
		return RoleNone
	}
}
