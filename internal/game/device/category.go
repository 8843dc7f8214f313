// Package device manages the devices installed on a space object: slot
// allocation, the named-device table that tracks the active device of each
// role, weapon and missile cycling, power accounting, and persistence.
package device

import "fmt"

// Category classifies a device by function. The category of an installed
// device comes from its Class.
type Category int

const (
	CategoryOther Category = iota
	CategoryWeapon
	CategoryLauncher
	CategoryShields
	CategoryDrive
	CategoryCargoHold
	CategoryReactor
)

var categoryNames = [...]string{
	CategoryOther:     "other",
	CategoryWeapon:    "weapon",
	CategoryLauncher:  "launcher",
	CategoryShields:   "shields",
	CategoryDrive:     "drive",
	CategoryCargoHold: "cargo_hold",
	CategoryReactor:   "reactor",
}

// String returns the YAML name of c.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory returns the Category whose YAML name is s.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return CategoryOther, fmt.Errorf("device: unknown category %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so YAML can decode categories by name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IsWeapon reports whether c counts against weapon slots.
func (c Category) IsWeapon() bool {
	return c == CategoryWeapon || c == CategoryLauncher
}

// IsSingleInstance reports whether at most one device of c may be installed
// without evicting the existing one.
func (c Category) IsSingleInstance() bool {
	switch c {
	case CategoryLauncher, CategoryReactor, CategoryShields, CategoryCargoHold, CategoryDrive:
		return true
	case CategoryWeapon, CategoryOther:
		return false
	default:
		panic(fmt.Sprintf("device: IsSingleInstance: unhandled category %d", int(c)))
	}
}

// Role returns the named-device role that devices of c compete for.
// ok is false for categories that have no role.
func (c Category) Role() (r Role, ok bool) {
	switch c {
	case CategoryWeapon:
		return RolePrimaryWeapon, true
	case CategoryLauncher:
		return RoleMissileWeapon, true
	case CategoryShields:
		return RoleShields, true
	case CategoryDrive:
		return RoleDrive, true
	case CategoryCargoHold:
		return RoleCargo, true
	case CategoryReactor:
		return RoleReactor, true
	case CategoryOther:
		return RoleNone, false
	default:
		panic(fmt.Sprintf("device: Role: unhandled category %d", int(c)))
	}
}

// Role names the active device of one functional category.
// Values 0 through 5 are also the role tags written to save streams.
type Role int

const (
	// RoleNone means no role.
	RoleNone Role = -1

	RolePrimaryWeapon Role = iota - 1
	RoleMissileWeapon
	RoleShields
	RoleDrive
	RoleCargo
	RoleReactor

	roleCount = int(RoleReactor) + 1
)

var roleNames = [roleCount]string{
	RolePrimaryWeapon: "primary_weapon",
	RoleMissileWeapon: "missile_weapon",
	RoleShields:       "shields",
	RoleDrive:         "drive",
	RoleCargo:         "cargo",
	RoleReactor:       "reactor",
}

// Roles returns every role in tag order.
func Roles() []Role {
	out := make([]Role, roleCount)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

// Valid reports whether r is one of the six roles.
func (r Role) Valid() bool {
	return r >= 0 && int(r) < roleCount
}

// String returns the name of r.
func (r Role) String() string {
	if !r.Valid() {
		return "none"
	}
	return roleNames[r]
}

// Category returns the device category that may hold r.
func (r Role) Category() Category {
	switch r {
	case RolePrimaryWeapon:
		return CategoryWeapon
	case RoleMissileWeapon:
		return CategoryLauncher
	case RoleShields:
		return CategoryShields
	case RoleDrive:
		return CategoryDrive
	case RoleCargo:
		return CategoryCargoHold
	case RoleReactor:
		return CategoryReactor
	default:
		return CategoryOther
	}
}
