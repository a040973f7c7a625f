package model

import (
	"time"
)

// SlotState is the staging state of a slot. Pending deletion is a separate
// flag so a slot can be staged for removal from any state.
type SlotState string

const (
	SlotDraft        SlotState = "draft"
	SlotPublished    SlotState = "published"
	SlotOutsideHours SlotState = "outside_hours"
)

// SlotSnapshot captures the last customer-visible position of a slot.
// It is set the first time a published slot is moved or resized and cleared
// when the slot is republished from its new position.
type SlotSnapshot struct {
	Date        string `json:"date" bson:"date"`
	Time        string `json:"time" bson:"time"`
	DurationMin int    `json:"duration_min" bson:"duration_min"`
}

type TimeSlot struct {
	ID                string        `json:"id" bson:"_id" validate:"required,uuid4"`
	ActivityID        string        `json:"activity_id" bson:"activity_id" validate:"required"`
	Date              string        `json:"date" bson:"date" validate:"required,slot_date"`
	Time              string        `json:"time" bson:"time" validate:"required,slot_time"`
	DurationMin       int           `json:"duration_min" bson:"duration_min" validate:"required,min=5,max=480"`
	MaxCapacity       int           `json:"max_capacity" bson:"max_capacity" validate:"required,min=1,max=500"`
	CurrentBookings   int           `json:"current_bookings" bson:"current_bookings" validate:"min=0"`
	Price             float64       `json:"price" bson:"price" validate:"min=0"`
	State             SlotState     `json:"state" bson:"state" validate:"required,oneof=draft published outside_hours"`
	PendingDeletion   bool          `json:"pending_deletion" bson:"pending_deletion"`
	PublishedSnapshot *SlotSnapshot `json:"published_snapshot,omitempty" bson:"published_snapshot,omitempty"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// SlotMove is the payload for repositioning a slot.
type SlotMove struct {
	Date string `json:"date" validate:"required,slot_date"`
	Time string `json:"time" validate:"required,slot_time"`
}

// SlotResize is the payload for changing a slot's duration in place.
type SlotResize struct {
	DurationMin int `json:"duration_min" validate:"required,min=5,max=480"`
}

func (s *TimeSlot) AvailablePlaces() int {
	return s.MaxCapacity - s.CurrentBookings
}

func (s *TimeSlot) IsPublished() bool {
	return s.State == SlotPublished
}

// Snapshot records the current position as the last customer-visible one.
// A snapshot already present wins: it points at the position customers still
// see, which does not change until republication.
func (s *TimeSlot) Snapshot() {
	if s.PublishedSnapshot != nil {
		return
	}
	s.PublishedSnapshot = &SlotSnapshot{
		Date:        s.Date,
		Time:        s.Time,
		DurationMin: s.DurationMin,
	}
}
