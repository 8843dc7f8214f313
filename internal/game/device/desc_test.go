package device_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/shipyard/internal/game/device"
	"github.com/cory-johannsen/shipyard/internal/game/item"
)

const frigateLoadout = `
id: frigate
name: Patrol Frigate
min_slots: 6
devices:
  - item: laser_cannon
    category: weapon
  - item: nuke_launcher
    slot_pos: 2
    extra_items:
      - item: nuke_missile
        count: 10
  - item: blaster
    linked_fire: [target]
  - item: fusion_reactor
`

func TestParseLoadout(t *testing.T) {
	f := newFixture(t)
	l, err := device.ParseLoadout([]byte(frigateLoadout), f.items, f.classes)
	require.NoError(t, err)

	assert.Equal(t, "frigate", l.ID)
	assert.Equal(t, 6, l.MinSlots)
	require.Len(t, l.Devices, 4)

	assert.Equal(t, device.CategoryWeapon, l.Devices[0].Category)
	assert.Equal(t, device.NoSlot, l.Devices[0].PosIndex)
	assert.Equal(t, 2, l.Devices[1].PosIndex)
	require.Len(t, l.Devices[1].ExtraItems, 1)
	assert.Equal(t, 10, l.Devices[1].ExtraItems[0].Count)
	assert.Equal(t, device.LinkedFireTarget, l.Devices[2].LinkedFire)
	assert.Equal(t, device.CategoryReactor, l.Devices[3].Category)
}

func TestParseLoadout_ReportsEveryViolation(t *testing.T) {
	f := newFixture(t)
	_, err := device.ParseLoadout([]byte(`
id: broken
min_slots: -1
devices:
  - item: laser_cannon
    category: drive
  - item: nuke_missile
  - item: tachyon_lance
  - item: blaster
    linked_fire: [never]
`), f.items, f.classes)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "min_slots")
	assert.Contains(t, msg, "devices[0]")
	assert.Contains(t, msg, "devices[1]")
	assert.Contains(t, msg, "devices[2]")
	assert.Contains(t, msg, "devices[3]")
}

func TestLoadLoadout_InitsSystem(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frigate.yaml"), []byte(frigateLoadout), 0644))

	l, err := device.LoadLoadout(dir, "frigate", f.items, f.classes)
	require.NoError(t, err)

	sys := device.NewSystem(f.classes, 0, nil)
	o := newTestOwner(true)
	require.NoError(t, sys.Init(o, l.Devices, l.MinSlots))
	assert.Equal(t, 6, sys.Count())
	assert.Equal(t, 0, sys.NamedIndex(device.RolePrimaryWeapon))
	assert.Equal(t, 1, sys.NamedIndex(device.RoleMissileWeapon))
	assert.Equal(t, 3, sys.NamedIndex(device.RoleReactor))
	assert.Equal(t, 10, o.items.CountOf("nuke_missile"))

	_, err = device.LoadLoadout(dir, "missing", f.items, f.classes)
	assert.Error(t, err)
}

func TestLoadClasses(t *testing.T) {
	items := item.NewRegistry()
	require.NoError(t, items.Register(&item.Type{ID: "laser_cannon", Name: "Laser", Kind: item.KindDevice, MaxStack: 1}))
	require.NoError(t, items.Register(&item.Type{ID: "torpedo", Name: "Torpedo", Kind: item.KindAmmo, Stackable: true, MaxStack: 50}))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "laser.yaml"), []byte(`
id: laser
item: laser_cannon
category: weapon
slots: 1
power: 5
hooks:
  selectable: laser_selectable
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	classes, err := device.LoadClasses(dir, items, nil)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	def := classes[0].Def()
	assert.Equal(t, "laser", def.ID)
	assert.Equal(t, 5, def.Power)
	assert.Equal(t, "laser_selectable", def.Hooks.Selectable)
	assert.Equal(t, device.CategoryWeapon, classes[0].Category())

	reg := device.NewRegistry()
	require.NoError(t, reg.Register(classes[0]))
	assert.Error(t, reg.Register(classes[0]), "duplicate class")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "torpedo.yaml"), []byte(`
id: torpedo_class
item: torpedo
category: launcher
`), 0644))
	_, err = device.LoadClasses(dir, items, nil)
	assert.Error(t, err, "item kind must be device")
}

func TestClassDef_Validate(t *testing.T) {
	bad := device.ClassDef{Category: "weapon", Slots: -1, MaxCharge: -1, Ammo: []string{"x"},
		ArmorEnhancements: []device.EnhancementDef{{}}}
	err := bad.Validate()
	require.Error(t, err)
	for _, want := range []string{"ID must not be empty", "Item must not be empty", "Slots must be >= 0",
		"MaxCharge must be >= 0", "Ammo is only valid for launchers", "ArmorEnhancements[0].ID"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestStandardClass_SelectableHook(t *testing.T) {
	f := newFixture(t)
	hooks := &fakeHooks{results: map[string]bool{"gate": false}}
	typ := &item.Type{ID: "gated_gun", Kind: item.KindDevice, MaxStack: 1}
	c, err := device.NewStandardClass(device.ClassDef{ID: "gated", Item: "gated_gun", Category: "weapon",
		Hooks: device.HookDefs{Selectable: "gate"}}, typ, hooks)
	require.NoError(t, err)
	require.NoError(t, f.classes.Register(c))

	sys := device.NewSystem(f.classes, 0, nil)
	o := newTestOwner(false)
	m := item.NewManipulator(o.items)
	require.NoError(t, m.AddItem(item.New(typ, 1)))
	slot, err := sys.Install(o, m, device.NoSlot, device.NoSlot, false)
	require.NoError(t, err)
	assert.Equal(t, device.NoSlot, sys.NamedIndex(device.RolePrimaryWeapon))

	hooks.results["gate"] = true
	sys.ReadyFirstWeapon(o)
	assert.Equal(t, slot, sys.NamedIndex(device.RolePrimaryWeapon))
	last := hooks.calls[len(hooks.calls)-1]
	assert.Equal(t, "gated", last["class_id"])
	assert.Equal(t, "weapon", last["category"])
}

func TestRepositoryContentLoads(t *testing.T) {
	content := filepath.Join("..", "..", "..", "content")
	types, err := item.LoadTypes(filepath.Join(content, "items"))
	require.NoError(t, err)
	items := item.NewRegistry()
	for _, typ := range types {
		require.NoError(t, items.Register(typ))
	}

	classes, err := device.LoadClasses(filepath.Join(content, "devices"), items, nil)
	require.NoError(t, err)
	reg := device.NewRegistry()
	for _, c := range classes {
		require.NoError(t, reg.Register(c))
	}

	for _, id := range []string{"frigate", "freighter"} {
		l, err := device.LoadLoadout(filepath.Join(content, "loadouts"), id, items, reg)
		require.NoError(t, err, id)

		sys := device.NewSystem(reg, 0, nil)
		require.NoError(t, sys.Init(newTestOwner(true), l.Devices, l.MinSlots), id)
		assert.Equal(t, l.MinSlots, sys.Count(), id)
	}
}
