package model

import "time"

// ClosedPeriod blocks slot generation for its date range and, once published,
// hides any slot in that range from customers. It follows the same staging
// machine as slots, minus the outside-hours state.
type ClosedPeriod struct {
	ID              string    `json:"id" bson:"_id" validate:"required,uuid4"`
	StartDate       string    `json:"start_date" bson:"start_date" validate:"required,slot_date"`
	EndDate         string    `json:"end_date" bson:"end_date" validate:"required,slot_date"`
	Reason          string    `json:"reason" bson:"reason" validate:"required,min=2,max=200"`
	Published       bool      `json:"published" bson:"published"`
	PendingDeletion bool      `json:"pending_deletion" bson:"pending_deletion"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Covers reports whether the given date (YYYY-MM-DD) falls within the period.
// Lexicographic comparison is correct for the fixed date layout.
func (c *ClosedPeriod) Covers(date string) bool {
	return date >= c.StartDate && date <= c.EndDate
}
