package model

import (
	"time"
)

// Booking is an immutable snapshot of a slot at reservation time. Date, time,
// activity and price are copied, not referenced, so later slot edits or
// deletion do not corrupt historical reporting.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SlotID        string    `json:"slot_id" bson:"slot_id" validate:"required"`
	ActivityID    string    `json:"activity_id" bson:"activity_id" validate:"required"`
	ActivityName  string    `json:"activity_name" bson:"activity_name" validate:"required,min=2,max=100"`
	CustomerName  string    `json:"customer_name" bson:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string    `json:"customer_email" bson:"customer_email" validate:"required,email"`
	CustomerPhone string    `json:"customer_phone" bson:"customer_phone" validate:"omitempty,e164"`
	People        int       `json:"people" bson:"people" validate:"required,min=1,max=500"`
	TotalPrice    float64   `json:"total_price" bson:"total_price" validate:"min=0"`
	Date          string    `json:"date" bson:"date" validate:"required,slot_date"`
	Time          string    `json:"time" bson:"time" validate:"required,slot_time"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
