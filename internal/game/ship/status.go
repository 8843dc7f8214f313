package ship

import "github.com/cory-johannsen/shipyard/internal/game/device"

// SlotStatus is a snapshot of one device slot.
type SlotStatus struct {
	Index      int    `json:"index" yaml:"index"`
	ClassID    string `json:"class,omitempty" yaml:"class,omitempty"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Role       string `json:"role,omitempty" yaml:"role,omitempty"`
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Variant    int    `json:"variant" yaml:"variant"`
	Charge     int    `json:"charge" yaml:"charge"`
	LinkedFire bool   `json:"linked_fire" yaml:"linked_fire"`
}

// ItemStatus is a snapshot of one item stack in the ship's hold.
type ItemStatus struct {
	InstanceID string `json:"instance_id" yaml:"instance_id"`
	Type       string `json:"type" yaml:"type"`
	Count      int    `json:"count" yaml:"count"`
	Installed  int    `json:"installed" yaml:"installed"`
}

// Status is a snapshot of a ship's devices and power budget.
type Status struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Player      bool         `json:"player" yaml:"player"`
	Slots       []SlotStatus `json:"slots" yaml:"slots"`
	Items       []ItemStatus `json:"items" yaml:"items"`
	SlotsInUse  int          `json:"slots_in_use" yaml:"slots_in_use"`
	WeaponSlots int          `json:"weapon_slots" yaml:"weapon_slots"`
	PowerUsed   int          `json:"power_used" yaml:"power_used"`
	PowerGen    int          `json:"power_generated" yaml:"power_generated"`
	Overloaded  bool         `json:"overloaded" yaml:"overloaded"`
}

// Status returns a snapshot of the ship. The power fields come from the last Update.
func (s *Ship) Status() Status {
	usage := s.Devices.CalcSlotsInUse()
	st := Status{
		ID:          s.id.String(),
		Name:        s.Name,
		Player:      s.player,
		SlotsInUse:  usage.Total,
		WeaponSlots: usage.Weapon,
		PowerUsed:   s.power.Used,
		PowerGen:    s.power.Generated,
		Overloaded:  s.power.Overloaded,
	}
	for i := 0; i < s.Devices.Count(); i++ {
		dev := s.Devices.Slot(i)
		ss := SlotStatus{Index: i}
		if !dev.IsEmpty() {
			ss.ClassID = dev.ID()
			ss.Category = dev.Category().String()
			ss.Enabled = dev.IsEnabled()
			ss.Variant = dev.Variant()
			ss.Charge = dev.Charge()
			ss.LinkedFire = dev.LinkedFire() != 0
			if r := s.Devices.NamedFromSlot(i); r != device.RoleNone {
				ss.Role = r.String()
			}
		}
		st.Slots = append(st.Slots, ss)
	}
	for _, it := range s.items.Items() {
		st.Items = append(st.Items, ItemStatus{
			InstanceID: it.InstanceID,
			Type:       it.Type.ID,
			Count:      it.Count,
			Installed:  it.Installed(),
		})
	}
	return st
}
