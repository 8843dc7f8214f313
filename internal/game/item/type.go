// Package item provides item types, item instances, and the cursor-based list
// manipulator through which ships add, install, and uninstall items.
package item

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Kind constants for Type.Kind.
const (
	KindDevice = "device"
	KindAmmo   = "ammo"
	KindArmor  = "armor"
	KindCargo  = "cargo"
	KindMisc   = "misc"
)

var validKinds = map[string]bool{
	KindDevice: true,
	KindAmmo:   true,
	KindArmor:  true,
	KindCargo:  true,
	KindMisc:   true,
}

// Type defines the static properties of an item loaded from YAML.
type Type struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Kind        string  `yaml:"kind"`
	Mass        float64 `yaml:"mass"`
	Stackable   bool    `yaml:"stackable"`
	MaxStack    int     `yaml:"max_stack"`
	Value       int     `yaml:"value"`

	known bool
}

// IsDevice reports whether items of this type can be installed as devices.
func (t *Type) IsDevice() bool {
	return t.Kind == KindDevice
}

// IsKnown reports whether the player has identified this type.
func (t *Type) IsKnown() bool { return t.known }

// SetKnown marks the type as identified.
//
// Postcondition: IsKnown() == true.
func (t *Type) SetKnown() { t.known = true }

// Validate checks that the Type satisfies its invariants.
//
// Precondition: t is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (t *Type) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validKinds[t.Kind] {
		errs = append(errs, fmt.Errorf("Kind must be one of device, ammo, armor, cargo, misc; got %q", t.Kind))
	}
	if t.MaxStack < 1 {
		errs = append(errs, errors.New("MaxStack must be >= 1"))
	}
	if t.Mass < 0 {
		errs = append(errs, errors.New("Mass must be >= 0"))
	}
	if t.Kind == KindDevice && t.Stackable {
		errs = append(errs, errors.New("device types must not be stackable"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item type validation failed: %v", errs)
	}
	return nil
}

// LoadTypes reads all *.yaml and *.yml files from dir, parses each as a
// Type, validates it, and returns the collected slice. Non-stackable types
// that omit max_stack get a MaxStack of 1.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Types or the first encountered error.
func LoadTypes(dir string) ([]*Type, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadTypes: cannot read directory %q: %w", dir, err)
	}

	var types []*Type
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadTypes: cannot read file %q: %w", path, err)
		}
		var t Type
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("LoadTypes: cannot parse file %q: %w", path, err)
		}
		if !t.Stackable && t.MaxStack == 0 {
			t.MaxStack = 1
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("LoadTypes: invalid item type in %q: %w", path, err)
		}
		types = append(types, &t)
	}
	return types, nil
}
