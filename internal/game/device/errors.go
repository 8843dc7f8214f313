package device

import "errors"

var (
	// ErrAllocationExhausted is returned when no free slot exists and the
	// slot sequence may not grow any further.
	ErrAllocationExhausted = errors.New("device: no free slot and slot limit reached")
	// ErrCorruptState is returned when a save stream holds values no writer produces.
	ErrCorruptState = errors.New("device: corrupt device state")
	// ErrNotDevice is returned when the item at the cursor cannot be installed as a device.
	ErrNotDevice = errors.New("device: item is not an installable device")
	// ErrSlotOutOfRange is returned for a slot hint outside the slot sequence.
	ErrSlotOutOfRange = errors.New("device: slot index out of range")
	// ErrSlotOccupied is returned when installing into a slot that already holds a device.
	ErrSlotOccupied = errors.New("device: slot already holds a device")
	// ErrUnknownClass is returned when a class ID or item type has no registered class.
	ErrUnknownClass = errors.New("device: unknown device class")
)
