package errors

import "errors"

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrCapacityGuard means the conditional capacity write matched no
	// document: either the slot vanished or a concurrent reservation consumed
	// the remaining places between read and write.
	ErrCapacityGuard = errors.New("capacity guard rejected the reservation")
)
