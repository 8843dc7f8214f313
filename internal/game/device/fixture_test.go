package device_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/shipyard/internal/game/device"
	"github.com/cory-johannsen/shipyard/internal/game/item"
)

//go:generate mockgen -destination "mock_class_test.go" -package device_test github.com/cory-johannsen/shipyard/internal/game/device Class

type testOwner struct {
	id     uuid.UUID
	player bool
	items  *item.List
}

func newTestOwner(player bool) *testOwner {
	return &testOwner{id: uuid.New(), player: player, items: item.NewList()}
}

func (o *testOwner) ID() uuid.UUID     { return o.id }
func (o *testOwner) IsPlayer() bool    { return o.player }
func (o *testOwner) Items() *item.List { return o.items }

// fakeHooks answers every hook from a fixed table.
type fakeHooks struct {
	results map[string]bool
	calls   []map[string]any
}

func (f *fakeHooks) CallPredicate(hook string, fields map[string]any) (bool, bool) {
	f.calls = append(f.calls, fields)
	res, ok := f.results[hook]
	return res, ok
}

type fixture struct {
	items   *item.Registry
	classes *device.Registry
	hooks   *fakeHooks
}

var fixtureDefs = []device.ClassDef{
	{ID: "laser", Item: "laser_cannon", Category: "weapon", Slots: 1, Power: 5},
	{ID: "blaster", Item: "blaster", Category: "weapon", Slots: 1, Power: 3},
	{ID: "point_defense", Item: "point_defense", Category: "weapon", Slots: 1, Power: 2, NotSelectable: true},
	{ID: "nuke_launcher", Item: "nuke_launcher", Category: "launcher", Slots: 2, Power: 4, Ammo: []string{"nuke_missile", "emp_missile"}},
	{ID: "class1_shield", Item: "class1_shield", Category: "shields", Slots: 1, Power: 2, RechargePower: 3, MaxCharge: 50,
		ArmorEnhancements: []device.EnhancementDef{{ID: "hardened", Bonus: 10, ArmorType: "plasteel"}}},
	{ID: "ion_drive", Item: "ion_drive", Category: "drive", Slots: 1, Power: 1},
	{ID: "cargo_expander", Item: "cargo_expander", Category: "cargo_hold", Slots: 1},
	{ID: "fusion_reactor", Item: "fusion_reactor", Category: "reactor", Slots: 1, Power: -20},
	{ID: "scanner", Item: "scanner", Category: "other", Slots: 0, Power: 1,
		Hooks: device.HookDefs{OnDestroyCheck: "scanner_guard"}},
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{items: item.NewRegistry(), classes: device.NewRegistry(), hooks: &fakeHooks{results: map[string]bool{}}}
	for _, id := range []string{"nuke_missile", "emp_missile"} {
		require.NoError(t, f.items.Register(&item.Type{ID: id, Name: id, Kind: item.KindAmmo, Stackable: true, MaxStack: 100}))
	}
	for _, def := range fixtureDefs {
		typ := &item.Type{ID: def.Item, Name: def.Item, Kind: item.KindDevice, MaxStack: 1}
		require.NoError(t, f.items.Register(typ))
		c, err := device.NewStandardClass(def, typ, f.hooks)
		require.NoError(t, err)
		require.NoError(t, f.classes.Register(c))
	}
	return f
}

func (f *fixture) itemType(t *testing.T, id string) *item.Type {
	t.Helper()
	typ, err := f.items.MustType(id)
	require.NoError(t, err)
	return typ
}

// give adds count units of typeID to the owner's list.
func (f *fixture) give(t *testing.T, o *testOwner, typeID string, count int) {
	t.Helper()
	m := item.NewManipulator(o.items)
	require.NoError(t, m.AddItem(item.New(f.itemType(t, typeID), count)))
}

// install adds a fresh typeID item to the owner and installs it in the first free slot.
func (f *fixture) install(t *testing.T, sys *device.System, o *testOwner, typeID string) int {
	t.Helper()
	m := item.NewManipulator(o.items)
	require.NoError(t, m.AddItem(item.New(f.itemType(t, typeID), 1)))
	slot, err := sys.Install(o, m, device.NoSlot, device.NoSlot, false)
	require.NoError(t, err)
	return slot
}

// uninstall removes the device in slot i.
func uninstall(t *testing.T, sys *device.System, o *testOwner, i int) device.Category {
	t.Helper()
	m := item.NewManipulator(o.items)
	sys.SetCursorAtDevice(m, i)
	cat, ok := sys.Uninstall(o, m)
	require.True(t, ok, "uninstall slot %d", i)
	return cat
}

func (f *fixture) desc(t *testing.T, typeID string) device.Desc {
	t.Helper()
	c, ok := f.classes.ForItemType(f.itemType(t, typeID))
	require.True(t, ok)
	return device.Desc{
		Category: c.Category(),
		Item:     item.New(f.itemType(t, typeID), 1),
		PosIndex: device.NoSlot,
	}
}
