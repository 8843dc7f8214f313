package ship

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shipyard/internal/game/device"
	"github.com/cory-johannsen/shipyard/internal/game/item"
	"github.com/cory-johannsen/shipyard/internal/savestream"
)

// maxSavedItems bounds the item count accepted from a save stream.
const maxSavedItems = 1 << 16

// Save writes the ship in the current format: header, identity, item list, devices.
func (s *Ship) Save(out io.Writer) error {
	w := savestream.NewWriter(out)
	savestream.WriteHeader(w, savestream.CurrentVersion)
	w.String(s.id.String())
	w.String(s.Name)
	w.Bool(s.player)

	items := s.items.Items()
	w.Int32(int32(len(items)))
	for _, it := range items {
		w.String(it.InstanceID)
		w.String(it.Type.ID)
		w.Int32(int32(it.Count))
		w.Int32(int32(it.Installed()))
	}
	s.Devices.WriteTo(w)

	if err := w.Err(); err != nil {
		return fmt.Errorf("ship: saving %q: %w", s.Name, err)
	}
	return nil
}

// Load reads a ship written by Save in any supported format version.
//
// Precondition: items and classes hold every type and class the save refers to.
// Postcondition: returns the rebuilt ship, or an error wrapping
// savestream.ErrBadMagic, savestream.ErrUnsupportedVersion, item.ErrUnknownType,
// device.ErrUnknownClass, or device.ErrCorruptState.
func Load(in io.Reader, items *item.Registry, classes *device.Registry, opts Options, logger *zap.Logger) (*Ship, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := savestream.NewReader(in)
	version, err := savestream.ReadHeader(r)
	if err != nil {
		return nil, fmt.Errorf("ship: load: %w", err)
	}

	rawID := r.String()
	name := r.String()
	player := r.Bool()
	n := r.Int32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("ship: load: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("ship: load: %w: ship id %q: %v", device.ErrCorruptState, rawID, err)
	}
	if n < 0 || n > maxSavedItems {
		return nil, fmt.Errorf("ship: load: %w: item count %d", device.ErrCorruptState, n)
	}

	list := item.NewList()
	for i := int32(0); i < n; i++ {
		instanceID := r.String()
		typeID := r.String()
		count := r.Int32()
		installed := r.Int32()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("ship: load: item %d: %w", i, err)
		}
		t, err := items.MustType(typeID)
		if err != nil {
			return nil, fmt.Errorf("ship: load: item %d: %w", i, err)
		}
		if count <= 0 || installed < item.NotInstalled {
			return nil, fmt.Errorf("ship: load: %w: item %d count %d installed %d", device.ErrCorruptState, i, count, installed)
		}
		list.Append(item.Restore(instanceID, t, int(count), int(installed)))
	}

	s := newShip(id, name, player, list, classes, opts, logger)
	if err := s.Devices.ReadFrom(r, version, s); err != nil {
		return nil, fmt.Errorf("ship: load %q: %w", name, err)
	}
	if err := s.checkInstalled(); err != nil {
		return nil, fmt.Errorf("ship: load %q: %w", name, err)
	}
	s.logger.Debug("ship loaded", zap.Uint32("version", version), zap.Int("items", list.Len()))
	return s, nil
}

// checkInstalled verifies that every installed item backs a device of its type,
// every device is backed by exactly one item, and every role names a slot
// holding a device of the role's category.
func (s *Ship) checkInstalled() error {
	backed := make(map[int]bool)
	for _, it := range s.items.Items() {
		if !it.IsInstalled() {
			continue
		}
		dev := s.Devices.Slot(it.Installed())
		if dev == nil || dev.IsEmpty() || dev.Class().ItemType() != it.Type || backed[it.Installed()] {
			return fmt.Errorf("%w: item %q claims slot %d", device.ErrCorruptState, it.InstanceID, it.Installed())
		}
		backed[it.Installed()] = true
	}
	for i := 0; i < s.Devices.Count(); i++ {
		if !s.Devices.Slot(i).IsEmpty() && !backed[i] {
			return fmt.Errorf("%w: slot %d has no backing item", device.ErrCorruptState, i)
		}
	}
	for _, r := range device.Roles() {
		i := s.Devices.NamedIndex(r)
		if i == device.NoSlot {
			continue
		}
		dev := s.Devices.Slot(i)
		if dev == nil || dev.IsEmpty() || dev.Category() != r.Category() {
			return fmt.Errorf("%w: role %s names slot %d", device.ErrCorruptState, r, i)
		}
	}
	return nil
}
