package device

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shipyard/internal/savestream"
)

const (
	// noRoleTag marks a slot that holds no role in a saved stream.
	noRoleTag uint32 = 0xFFFFFFFF
	// maxStreamSlots bounds the slot count accepted from a stream.
	maxStreamSlots = 1 << 12
)

// WriteTo writes the system in the current format: the slot count, then for
// each slot its block followed by the tag of the role it holds.
//
// Postcondition: w.Err() reports any write failure.
func (s *System) WriteTo(w *savestream.Writer) {
	w.Int32(int32(len(s.slots)))
	for i, dev := range s.slots {
		dev.writeTo(w)
		if r := s.named.RoleOf(i); r != RoleNone {
			w.Uint32(uint32(r))
		} else {
			w.Uint32(noRoleTag)
		}
	}
}

// ReadFrom replaces the system's contents with a stream written in format
// version. The named table is taken verbatim from the stored role tags.
//
// Precondition: version was obtained from savestream.ReadHeader.
// Postcondition: on error the system is empty; ErrCorruptState wraps
// malformed counts and role tags, ErrUnknownClass wraps unregistered devices.
func (s *System) ReadFrom(r *savestream.Reader, version uint32, owner Owner) error {
	if err := s.readFrom(r, version, owner); err != nil {
		s.CleanUp()
		return err
	}
	migrate(s, version)
	s.logger.Debug("device system loaded",
		zap.Int("slots", len(s.slots)),
		zap.Uint32("version", version),
	)
	return nil
}

func (s *System) readFrom(r *savestream.Reader, version uint32, owner Owner) error {
	if version < savestream.VersionLegacy || version > savestream.CurrentVersion {
		return fmt.Errorf("%w: %d", savestream.ErrUnsupportedVersion, version)
	}
	s.CleanUp()

	count := r.Int32()
	if err := r.Err(); err != nil {
		return fmt.Errorf("device: reading slot count: %w", err)
	}
	limit := maxStreamSlots
	if s.maxSlots > 0 {
		limit = s.maxSlots
	}
	if count < 0 || int(count) > limit {
		return fmt.Errorf("%w: slot count %d (limit %d)", ErrCorruptState, count, limit)
	}
	// Indices come from the stream, or from migrate for formats that lack them.
	for i := 0; i < int(count); i++ {
		s.slots = append(s.slots, newEmptySlot(NoSlot))
	}

	for i, dev := range s.slots {
		if err := dev.readFrom(r, version, s.classes, owner); err != nil {
			return fmt.Errorf("device: slot %d: %w", i, err)
		}
		if dev.IsEmpty() {
			dev.SetIndex(i)
		}
		tag := r.Uint32()
		if err := r.Err(); err != nil {
			return fmt.Errorf("device: slot %d role tag: %w", i, err)
		}
		if tag == noRoleTag {
			continue
		}
		role := Role(tag)
		if !role.Valid() {
			return fmt.Errorf("%w: slot %d role tag %#x", ErrCorruptState, i, tag)
		}
		s.named.Set(role, i)
	}
	return nil
}

// migrate upgrades a freshly read system to the current layout. Each format
// change adds its own step here.
func migrate(s *System, version uint32) {
	if version < savestream.VersionSlotIndex {
		// Slots did not store their own index.
		for i, dev := range s.slots {
			dev.SetIndex(i)
		}
	}
}

func (s *Slot) writeTo(w *savestream.Writer) {
	if s.IsEmpty() {
		w.String("")
		return
	}
	w.String(s.class.ID())
	w.Int32(int32(s.index))
	w.Int32(int32(s.posIndex))
	w.Bool(s.enabled)
	w.Int32(int32(s.variant))
	w.Uint32(uint32(s.linkedFire))
	w.Int32(int32(s.charge))
}

func (s *Slot) readFrom(r *savestream.Reader, version uint32, classes *Registry, owner Owner) error {
	id := r.String()
	if err := r.Err(); err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	class, ok := classes.Class(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, id)
	}

	if version >= savestream.VersionSlotIndex {
		s.index = int(r.Int32())
	}
	s.posIndex = int(r.Int32())
	s.enabled = r.Bool()
	s.variant = int(r.Int32())
	s.linkedFire = LinkedFire(r.Uint32()) & linkedFireMask
	s.charge = int(r.Int32())
	if err := r.Err(); err != nil {
		return err
	}

	s.class = class
	if owner != nil {
		s.owner = owner.ID()
	}
	return nil
}
