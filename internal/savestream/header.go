package savestream

import (
	"errors"
	"fmt"
)

// Magic identifies a shipyard save file.
const Magic = "SHPY"

// Format versions. Each bump that changes a record layout gets a constant so
// readers can gate on it by name.
const (
	// VersionLegacy is the oldest layout still readable.
	VersionLegacy uint32 = 20
	// VersionSlotIndex is the first layout in which device slots store their own index.
	VersionSlotIndex uint32 = 29
	// CurrentVersion is the layout written by this build.
	CurrentVersion uint32 = 30
)

var (
	// ErrBadMagic is returned when a stream does not start with Magic.
	ErrBadMagic = errors.New("savestream: bad magic")
	// ErrUnsupportedVersion is returned for versions outside [VersionLegacy, CurrentVersion].
	ErrUnsupportedVersion = errors.New("savestream: unsupported format version")
)

// WriteHeader writes Magic followed by version.
//
// Postcondition: w.Err() reports any write failure.
func WriteHeader(w *Writer, version uint32) {
	w.write([]byte(Magic))
	w.Uint32(version)
}

// ReadHeader validates Magic and returns the declared format version.
//
// Postcondition: returns ErrBadMagic, ErrUnsupportedVersion, a read error, or the version.
func ReadHeader(r *Reader) (uint32, error) {
	magic := make([]byte, len(Magic))
	if !r.read(magic) {
		return 0, r.Err()
	}
	if string(magic) != Magic {
		return 0, fmt.Errorf("%w: got %q", ErrBadMagic, magic)
	}
	version := r.Uint32()
	if err := r.Err(); err != nil {
		return 0, err
	}
	if version < VersionLegacy || version > CurrentVersion {
		return 0, fmt.Errorf("%w: %d (supported %d-%d)", ErrUnsupportedVersion, version, VersionLegacy, CurrentVersion)
	}
	return version, nil
}
