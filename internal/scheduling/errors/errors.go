package errors

import "errors"

var (
	ErrSlotNotFound = errors.New("slot not found")

	ErrClosureNotFound = errors.New("closed period not found")

	ErrActivityNotFound = errors.New("activity not found")

	ErrSettingsNotFound = errors.New("settings document not found")

	ErrDuplicateSlot = errors.New("a slot already exists at this date, time and activity")

	ErrNotPendingDeletion = errors.New("not staged for deletion")
)
