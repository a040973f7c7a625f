package model

// SettingsID is the _id of the single global settings document.
const SettingsID = "global"

// WorkingHours is the maximal window in which slots may exist for a weekday.
type WorkingHours struct {
	Enabled bool   `json:"enabled" bson:"enabled"`
	Start   string `json:"start" bson:"start" validate:"required_if=Enabled true,omitempty,slot_time"`
	End     string `json:"end" bson:"end" validate:"required_if=Enabled true,omitempty,slot_time"`
}

// TimeWindow is a minute-of-day interval, used for the optional lunch break.
type TimeWindow struct {
	Start string `json:"start" bson:"start" validate:"required,slot_time"`
	End   string `json:"end" bson:"end" validate:"required,slot_time"`
}

// Settings holds global configuration plus the monotonic data version.
// DataVersion is incremented inside the same transaction as any mutation that
// changes customer-visible state, so a poller observing a new version is
// guaranteed to observe the mutation's effects too.
type Settings struct {
	ID          string                  `json:"id" bson:"_id"`
	DataVersion int64                   `json:"data_version" bson:"data_version"`
	Hours       map[string]WorkingHours `json:"working_hours" bson:"working_hours" validate:"required,dive"`
	LunchBreak  *TimeWindow             `json:"lunch_break,omitempty" bson:"lunch_break,omitempty" validate:"omitempty"`
}

// WorkingHoursUpdate replaces the weekday windows and/or lunch break.
// Map keys are weekday numbers "0" (Sunday) through "6".
type WorkingHoursUpdate struct {
	Hours      map[string]WorkingHours `json:"working_hours" validate:"required,min=1,max=7,dive"`
	LunchBreak *TimeWindow             `json:"lunch_break,omitempty" validate:"omitempty"`
}
