package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/shipyard/internal/game/item"
)

// HookRunner evaluates named script predicates. *scripting.Manager satisfies it.
type HookRunner interface {
	CallPredicate(hook string, fields map[string]any) (result bool, ok bool)
}

// HookDefs names the script hooks a class defers to. Empty names are unused.
type HookDefs struct {
	Selectable     string `yaml:"selectable"`
	OnDestroyCheck string `yaml:"on_destroy_check"`
}

// EnhancementDef is an armor enhancement granted by an enabled device.
type EnhancementDef struct {
	ID        string `yaml:"id"`
	Bonus     int    `yaml:"bonus"`
	ArmorType string `yaml:"armor_type"` // empty = every armor type
}

// ClassDef defines a data-driven device class loaded from YAML.
type ClassDef struct {
	ID                string           `yaml:"id"`
	Item              string           `yaml:"item"`
	Category          string           `yaml:"category"`
	Slots             int              `yaml:"slots"`
	Power             int              `yaml:"power"`          // negative = generation
	RechargePower     int              `yaml:"recharge_power"` // extra draw while below MaxCharge
	MaxCharge         int              `yaml:"max_charge"`
	Ammo              []string         `yaml:"ammo"` // variant item type IDs, in cycling order
	NotSelectable     bool             `yaml:"not_selectable"`
	Hooks             HookDefs         `yaml:"hooks"`
	ArmorEnhancements []EnhancementDef `yaml:"armor_enhancements"`
}

// Validate checks that the ClassDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ClassDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Item == "" {
		errs = append(errs, errors.New("Item must not be empty"))
	}
	cat, err := ParseCategory(d.Category)
	if err != nil {
		errs = append(errs, err)
	}
	if d.Slots < 0 {
		errs = append(errs, errors.New("Slots must be >= 0"))
	}
	if d.MaxCharge < 0 {
		errs = append(errs, errors.New("MaxCharge must be >= 0"))
	}
	if len(d.Ammo) > 0 && cat != CategoryLauncher {
		errs = append(errs, fmt.Errorf("Ammo is only valid for launchers, got category %q", d.Category))
	}
	for i, e := range d.ArmorEnhancements {
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("ArmorEnhancements[%d].ID must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("device class validation failed: %v", errs)
	}
	return nil
}

// StandardClass is the data-driven Class used for every device defined in content.
type StandardClass struct {
	def      ClassDef
	category Category
	itemType *item.Type
	hooks    HookRunner
}

// NewStandardClass builds a StandardClass from def.
//
// Precondition: t is the item type named by def.Item; hooks may be nil.
// Postcondition: returns an error if def is invalid or t does not match.
func NewStandardClass(def ClassDef, t *item.Type, hooks HookRunner) (*StandardClass, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if t == nil || t.ID != def.Item {
		return nil, fmt.Errorf("device: class %q: item type %q not supplied", def.ID, def.Item)
	}
	if !t.IsDevice() {
		return nil, fmt.Errorf("device: class %q: item %q is kind %q, not device", def.ID, t.ID, t.Kind)
	}
	cat, _ := ParseCategory(def.Category)
	return &StandardClass{def: def, category: cat, itemType: t, hooks: hooks}, nil
}

func (c *StandardClass) ID() string           { return c.def.ID }
func (c *StandardClass) ItemType() *item.Type { return c.itemType }
func (c *StandardClass) Category() Category   { return c.category }
func (c *StandardClass) SlotsRequired() int   { return c.def.Slots }
func (c *StandardClass) Def() ClassDef        { return c.def }
func (c *StandardClass) OnUninstall(ctx Ctx)  {}

// OnInstall charges shields fully for devices created with their owner and
// loads the first available ammunition into launchers.
func (c *StandardClass) OnInstall(ctx Ctx, inCreate bool) {
	switch c.category {
	case CategoryShields:
		if inCreate {
			ctx.Slot.SetCharge(c.def.MaxCharge)
		}
	case CategoryLauncher:
		c.SelectFirstVariant(ctx)
	}
}

// Reset drops stored energy to zero.
func (c *StandardClass) Reset(ctx Ctx) {
	ctx.Slot.SetCharge(0)
}

// PowerUsed returns 0 for disabled devices. Shields below full charge add RechargePower.
func (c *StandardClass) PowerUsed(ctx Ctx) int {
	if !ctx.Slot.IsEnabled() {
		return 0
	}
	p := c.def.Power
	if c.category == CategoryShields && ctx.Slot.Charge() < c.def.MaxCharge {
		p += c.def.RechargePower
	}
	return p
}

// IsSelectable is false for classes marked not_selectable and for slots that
// always fire linked. Otherwise the selectable hook decides when present.
func (c *StandardClass) IsSelectable(ctx Ctx) bool {
	if c.def.NotSelectable {
		return false
	}
	if ctx.Slot.LinkedFire()&LinkedFireAlways != 0 {
		return false
	}
	if res, ok := c.callHook(c.def.Hooks.Selectable, ctx, nil); ok {
		return res
	}
	return true
}

func (c *StandardClass) variantAvailable(ctx Ctx, v int) bool {
	if v < 0 || v >= len(c.def.Ammo) {
		return false
	}
	if ctx.Owner == nil || ctx.Owner.Items() == nil {
		return true
	}
	return ctx.Owner.Items().CountOf(c.def.Ammo[v]) > 0
}

// SelectFirstVariant selects the first ammunition type the owner carries.
//
// Postcondition: returns false when the class has no ammunition or none is carried;
// the variant is then 0.
func (c *StandardClass) SelectFirstVariant(ctx Ctx) bool {
	for v := range c.def.Ammo {
		if c.variantAvailable(ctx, v) {
			ctx.Slot.SetVariant(v)
			return true
		}
	}
	ctx.Slot.SetVariant(0)
	return false
}

// SelectNextVariant steps to the next carried ammunition type in direction dir, wrapping.
//
// Postcondition: returns false and leaves the variant unchanged when nothing is carried.
func (c *StandardClass) SelectNextVariant(ctx Ctx, dir int) bool {
	n := len(c.def.Ammo)
	if n == 0 {
		return false
	}
	if dir < 0 {
		dir = -1
	} else {
		dir = 1
	}
	cur := ctx.Slot.Variant()
	for step := 1; step <= n; step++ {
		v := ((cur+dir*step)%n + n) % n
		if c.variantAvailable(ctx, v) {
			ctx.Slot.SetVariant(v)
			return true
		}
	}
	return false
}

// ValidateSelectedVariant falls back to the first carried variant when the
// selected one is out of range or no longer carried.
func (c *StandardClass) ValidateSelectedVariant(ctx Ctx) {
	if len(c.def.Ammo) == 0 {
		return
	}
	if !c.variantAvailable(ctx, ctx.Slot.Variant()) {
		c.SelectFirstVariant(ctx)
	}
}

// OnDestroyCheck defers to the on_destroy_check hook; without one the device never intervenes.
func (c *StandardClass) OnDestroyCheck(ctx Ctx, cause DestroyCause, attacker string) bool {
	extra := map[string]any{"cause": string(cause), "attacker": attacker}
	if res, ok := c.callHook(c.def.Hooks.OnDestroyCheck, ctx, extra); ok {
		return res
	}
	return true
}

// AccumulateEnhancements adds each matching armor enhancement not already on the stack.
func (c *StandardClass) AccumulateEnhancements(ctx Ctx, armor Armor, stack *EnhancementStack) bool {
	if !ctx.Slot.IsEnabled() {
		return false
	}
	added := false
	for _, e := range c.def.ArmorEnhancements {
		if e.ArmorType != "" && e.ArmorType != armor.TypeID {
			continue
		}
		if stack.Add(Enhancement{ID: e.ID, Source: c.def.ID, Bonus: e.Bonus}) {
			added = true
		}
	}
	return added
}

func (c *StandardClass) callHook(hook string, ctx Ctx, extra map[string]any) (bool, bool) {
	if hook == "" || c.hooks == nil {
		return false, false
	}
	fields := map[string]any{
		"class_id": c.def.ID,
		"category": c.category.String(),
		"slot":     ctx.Slot.Index(),
		"enabled":  ctx.Slot.IsEnabled(),
		"variant":  ctx.Slot.Variant(),
		"charge":   ctx.Slot.Charge(),
		"linked":   ctx.Slot.LinkedFire() != 0,
		"player":   ctx.Owner != nil && ctx.Owner.IsPlayer(),
	}
	for k, v := range extra {
		fields[k] = v
	}
	return c.hooks.CallPredicate(hook, fields)
}

// LoadClasses reads all *.yaml and *.yml files from dir, parses each as a
// ClassDef, resolves its item type in items, and returns the built classes.
//
// Precondition: dir is a readable directory path; items is non-nil; hooks may be nil.
// Postcondition: returns all valid classes or the first encountered error.
func LoadClasses(dir string, items *item.Registry, hooks HookRunner) ([]*StandardClass, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadClasses: cannot read directory %q: %w", dir, err)
	}
	var classes []*StandardClass
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadClasses: cannot read file %q: %w", path, err)
		}
		var def ClassDef
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("LoadClasses: cannot parse file %q: %w", path, err)
		}
		t, ok := items.Type(def.Item)
		if !ok {
			return nil, fmt.Errorf("LoadClasses: class %q in %q: %w: %q", def.ID, path, item.ErrUnknownType, def.Item)
		}
		c, err := NewStandardClass(def, t, hooks)
		if err != nil {
			return nil, fmt.Errorf("LoadClasses: invalid class in %q: %w", path, err)
		}
		classes = append(classes, c)
	}
	return classes, nil
}
