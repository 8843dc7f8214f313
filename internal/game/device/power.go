package device

// PowerUpdate carries the running totals for one AccumulatePowerUsed pass.
type PowerUpdate struct {
	Used      int
	Generated int
}

// AccumulatePowerUsed adds every device's draw to u: non-negative values to
// Used, the negation of negative values to Generated.
func (s *System) AccumulatePowerUsed(owner Owner, u *PowerUpdate) {
	for _, dev := range s.slots {
		if dev.IsEmpty() {
			continue
		}
		p := dev.CalcPowerUsed(Ctx{Owner: owner, Slot: dev})
		if p >= 0 {
			u.Used += p
		} else {
			u.Generated += -p
		}
	}
}

// SlotUsage is the slot cost of all installed devices.
type SlotUsage struct {
	Total     int
	Weapon    int
	NonWeapon int
}

// CalcSlotsInUse sums the slot cost of every installed device, split between
// weapons and launchers on one side and everything else on the other.
//
// Postcondition: Total == Weapon + NonWeapon.
func (s *System) CalcSlotsInUse() SlotUsage {
	var u SlotUsage
	for _, dev := range s.slots {
		if dev.IsEmpty() {
			continue
		}
		n := dev.SlotsRequired()
		u.Total += n
		if dev.Category().IsWeapon() {
			u.Weapon += n
		} else {
			u.NonWeapon += n
		}
	}
	return u
}

// GetCountByID returns the number of installed devices of class id.
func (s *System) GetCountByID(id string) int {
	n := 0
	for _, dev := range s.slots {
		if !dev.IsEmpty() && dev.ID() == id {
			n++
		}
	}
	return n
}

// OnDestroyCheck asks every installed device whether the owner may be
// destroyed. Returns false as soon as one device prevents it.
func (s *System) OnDestroyCheck(owner Owner, cause DestroyCause, attacker string) bool {
	for _, dev := range s.slots {
		if dev.IsEmpty() {
			continue
		}
		if !dev.Class().OnDestroyCheck(Ctx{Owner: owner, Slot: dev}, cause, attacker) {
			s.logger.Debug("destruction prevented by device")
			return false
		}
	}
	return true
}

// AccumulateEnhancementsToArmor collects the enhancements every installed
// device grants to armor. A player's device that contributes becomes known.
func (s *System) AccumulateEnhancementsToArmor(owner Owner, armor Armor, stack *EnhancementStack) {
	for _, dev := range s.slots {
		if dev.IsEmpty() {
			continue
		}
		if dev.Class().AccumulateEnhancements(Ctx{Owner: owner, Slot: dev}, armor, stack) {
			if owner != nil && owner.IsPlayer() {
				dev.Class().ItemType().SetKnown()
			}
		}
	}
}
