package model

import "time"

// Activity is a bookable category. Disabling it hides it from slot generation
// and customer-facing filters without touching its existing slots.
type Activity struct {
	ID        string    `json:"id" bson:"_id" validate:"required,uuid4"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Enabled   bool      `json:"enabled" bson:"enabled"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ActivityUpdate struct {
	Name    string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Enabled *bool  `json:"enabled,omitempty"`
}
