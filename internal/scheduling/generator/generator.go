package generator

import (
	"fmt"
	"time"

	"courtly/internal/scheduling/schedule"
	"courtly/pkg/model"

	"github.com/google/uuid"
)

// Request describes one generation run over a date range.
type Request struct {
	StartDate   string   `json:"start_date" validate:"required,slot_date"`
	EndDate     string   `json:"end_date" validate:"required,slot_date"`
	ActivityIDs []string `json:"activity_ids" validate:"required,min=1,dive,uuid4"`
	DurationMin int      `json:"duration_min" validate:"required,min=5,max=480"`
	MaxCapacity int      `json:"max_capacity" validate:"required,min=1,max=500"`
	Price       float64  `json:"price" validate:"min=0"`
}

// Result carries the created slots and user-facing warnings. Producing zero
// slots is a warning, not an error: the operator gets feedback, not a failure.
type Result struct {
	Created  []*model.TimeSlot `json:"created"`
	Warnings []string          `json:"warnings,omitempty"`
}

const (
	WarnNoActivities   = "no enabled activities selected"
	WarnNoDates        = "no generatable days in the requested range"
	WarnNothingCreated = "all candidate slots already exist"
)

// Generate walks each day of the range, skips closed or disabled days, steps
// through the working window in duration-sized increments and emits a draft
// slot per requested activity wherever no slot already occupies the same
// (date, time, activity). Existing slots are never mutated or removed.
func Generate(cfg *schedule.Configuration, req Request, existing []*model.TimeSlot) (*Result, error) {
	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", req.EndDate, req.StartDate)
	}

	result := &Result{}

	if len(req.ActivityIDs) == 0 {
		result.Warnings = append(result.Warnings, WarnNoActivities)
		return result, nil
	}

	occupied := make(map[string]struct{}, len(existing))
	for _, slot := range existing {
		occupied[slotKey(slot.Date, slot.Time, slot.ActivityID)] = struct{}{}
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	daysOpen := 0

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(schedule.DateLayout)

		if cfg.IsClosed(date) {
			continue
		}

		windowStart, windowEnd, ok := cfg.Window(day.Weekday())
		if !ok {
			continue
		}
		daysOpen++

		for startMin := windowStart; startMin+req.DurationMin <= windowEnd; startMin += req.DurationMin {
			if cfg.IntersectsLunchBreak(startMin, req.DurationMin) {
				continue
			}

			timeOfDay := schedule.FormatMinutes(startMin)
			for _, activityID := range req.ActivityIDs {
				key := slotKey(date, timeOfDay, activityID)
				if _, exists := occupied[key]; exists {
					continue
				}
				occupied[key] = struct{}{}

				result.Created = append(result.Created, &model.TimeSlot{
					ID:              uuid.NewString(),
					ActivityID:      activityID,
					Date:            date,
					Time:            timeOfDay,
					DurationMin:     req.DurationMin,
					MaxCapacity:     req.MaxCapacity,
					CurrentBookings: 0,
					Price:           req.Price,
					State:           model.SlotDraft,
					CreatedAt:       now,
				})
			}
		}
	}

	if daysOpen == 0 {
		result.Warnings = append(result.Warnings, WarnNoDates)
	} else if len(result.Created) == 0 {
		result.Warnings = append(result.Warnings, WarnNothingCreated)
	}

	return result, nil
}

func slotKey(date, timeOfDay, activityID string) string {
	return date + "|" + timeOfDay + "|" + activityID
}
