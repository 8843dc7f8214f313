package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/shipyard/internal/game/item"
)

// Desc declares one device to install when an object is created.
type Desc struct {
	// Category is the category the descriptor's author expects; checked at load.
	Category Category
	// Item is the device item added to the owner and installed.
	Item item.Item
	// PosIndex is the slot position hint, or NoSlot.
	PosIndex int
	// LinkedFire holds the initial linked-fire flags of the slot.
	LinkedFire LinkedFire
	// ExtraItems are added to the owner after the device is installed (ammunition, spares).
	ExtraItems []item.Item
}

// Loadout is a named, ordered list of device descriptors.
type Loadout struct {
	ID       string
	Name     string
	MinSlots int
	Devices  []Desc
}

type loadoutFile struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	MinSlots int         `yaml:"min_slots"`
	Devices  []descEntry `yaml:"devices"`
}

type descEntry struct {
	Item       string       `yaml:"item"`
	Category   string       `yaml:"category"`
	SlotPos    *int         `yaml:"slot_pos"`
	LinkedFire []string     `yaml:"linked_fire"`
	Extra      []extraEntry `yaml:"extra_items"`
}

type extraEntry struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

// ParseLoadout decodes a loadout document and resolves every item and class.
//
// Precondition: items and classes must be non-nil.
// Postcondition: every Desc.Item refers to a type with a registered Class whose
// category matches the declared one; returns an error describing every violation otherwise.
func ParseLoadout(data []byte, items *item.Registry, classes *Registry) (*Loadout, error) {
	var f loadoutFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ParseLoadout: %w", err)
	}
	var errs []error
	if f.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if f.MinSlots < 0 {
		errs = append(errs, fmt.Errorf("min_slots must be >= 0, got %d", f.MinSlots))
	}
	out := &Loadout{ID: f.ID, Name: f.Name, MinSlots: f.MinSlots}
	for i, e := range f.Devices {
		d, err := resolveDesc(e, items, classes)
		if err != nil {
			errs = append(errs, fmt.Errorf("devices[%d]: %w", i, err))
			continue
		}
		out.Devices = append(out.Devices, d)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("loadout %q validation failed: %v", f.ID, errs)
	}
	return out, nil
}

func resolveDesc(e descEntry, items *item.Registry, classes *Registry) (Desc, error) {
	t, err := items.MustType(e.Item)
	if err != nil {
		return Desc{}, err
	}
	class, ok := classes.ForItemType(t)
	if !ok {
		return Desc{}, fmt.Errorf("%w: item %q", ErrUnknownClass, e.Item)
	}
	d := Desc{
		Category: class.Category(),
		Item:     item.New(t, 1),
		PosIndex: NoSlot,
	}
	if e.Category != "" {
		cat, err := ParseCategory(e.Category)
		if err != nil {
			return Desc{}, err
		}
		if cat != class.Category() {
			return Desc{}, fmt.Errorf("item %q is a %s, declared %s", e.Item, class.Category(), cat)
		}
	}
	if e.SlotPos != nil {
		d.PosIndex = *e.SlotPos
	}
	if d.LinkedFire, err = ParseLinkedFire(e.LinkedFire); err != nil {
		return Desc{}, err
	}
	for _, x := range e.Extra {
		xt, err := items.MustType(x.Item)
		if err != nil {
			return Desc{}, err
		}
		if x.Count <= 0 {
			return Desc{}, fmt.Errorf("extra item %q count must be > 0, got %d", x.Item, x.Count)
		}
		d.ExtraItems = append(d.ExtraItems, item.New(xt, x.Count))
	}
	return d, nil
}

// LoadLoadout reads dir/<id>.yaml and parses it with ParseLoadout.
//
// Precondition: dir must be a readable directory; id must be non-empty.
// Postcondition: Returns the resolved Loadout or an error.
func LoadLoadout(dir, id string, items *item.Registry, classes *Registry) (*Loadout, error) {
	path := filepath.Join(dir, id+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadLoadout: cannot read file %q: %w", path, err)
	}
	l, err := ParseLoadout(data, items, classes)
	if err != nil {
		return nil, fmt.Errorf("LoadLoadout: %q: %w", path, err)
	}
	return l, nil
}
