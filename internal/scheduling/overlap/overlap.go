package overlap

import (
	"courtly/internal/scheduling/schedule"
	"courtly/pkg/model"
)

// Conflicts reports whether the candidate slot intersects any existing slot
// of the same activity on the same date. Slots of different activities may
// share a time range: multiple activities run in parallel on the same
// facility abstraction.
func Conflicts(candidate *model.TimeSlot, existing []*model.TimeSlot) bool {
	candStart, err := schedule.ParseMinutes(candidate.Time)
	if err != nil {
		return false
	}
	candEnd := candStart + candidate.DurationMin

	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if other.ActivityID != candidate.ActivityID || other.Date != candidate.Date {
			continue
		}

		otherStart, err := schedule.ParseMinutes(other.Time)
		if err != nil {
			continue
		}
		otherEnd := otherStart + other.DurationMin

		if candStart < otherEnd && candEnd > otherStart {
			return true
		}
	}

	return false
}
