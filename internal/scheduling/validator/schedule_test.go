package validator

import (
	"io"
	"strings"
	"testing"

	"courtly/pkg/logger"
	"courtly/pkg/model"
)

func testValidator() *ScheduleValidator {
	log := logger.New(logger.Config{
		Level:  "error",
		Format: logger.JSON,
		Output: io.Discard,
	})
	return NewScheduleValidator(log)
}

func validSlot() *model.TimeSlot {
	return &model.TimeSlot{
		ID:          "0b2f7b6e-9a1d-4c5e-8f3a-1234567890ab",
		ActivityID:  "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Date:        "2026-09-07",
		Time:        "10:00",
		DurationMin: 60,
		MaxCapacity: 4,
		State:       model.SlotDraft,
	}
}

func TestValidateSlot_Valid(t *testing.T) {
	if err := testValidator().ValidateSlot(validSlot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateSlot_DateFormat(t *testing.T) {
	v := testValidator()

	bad := []string{"2026-9-07", "07-09-2026", "2026-13-01", "2026-09-32", "2026-09-07T10:00"}
	for _, date := range bad {
		slot := validSlot()
		slot.Date = date
		err := v.ValidateSlot(slot)
		if err == nil {
			t.Errorf("date %q accepted, want rejection", date)
			continue
		}
		if !strings.Contains(err.Error(), "YYYY-MM-DD") {
			t.Errorf("date %q: error %q does not mention the expected format", date, err)
		}
	}
}

func TestValidateSlot_TimeFormat(t *testing.T) {
	v := testValidator()

	bad := []string{"9:00", "24:00", "10:60", "10.30", "1000"}
	for _, tod := range bad {
		slot := validSlot()
		slot.Time = tod
		if err := v.ValidateSlot(slot); err == nil {
			t.Errorf("time %q accepted, want rejection", tod)
		}
	}
}

func TestValidateSlot_BookingsExceedCapacity(t *testing.T) {
	slot := validSlot()
	slot.MaxCapacity = 4
	slot.CurrentBookings = 5

	err := testValidator().ValidateSlot(slot)
	if err == nil {
		t.Fatal("expected error when bookings exceed capacity")
	}
	if !strings.Contains(err.Error(), "exceeds max_capacity") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateWorkingHours(t *testing.T) {
	v := testValidator()

	valid := &model.WorkingHoursUpdate{
		Hours: map[string]model.WorkingHours{
			"1": {Enabled: true, Start: "09:00", End: "18:00"},
			"6": {Enabled: false},
		},
	}
	if err := v.ValidateWorkingHours(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badKey := &model.WorkingHoursUpdate{
		Hours: map[string]model.WorkingHours{
			"7": {Enabled: true, Start: "09:00", End: "18:00"},
		},
	}
	if err := v.ValidateWorkingHours(badKey); err == nil {
		t.Error("day key 7 accepted, want rejection")
	}

	inverted := &model.WorkingHoursUpdate{
		Hours: map[string]model.WorkingHours{
			"1": {Enabled: true, Start: "18:00", End: "09:00"},
		},
	}
	if err := v.ValidateWorkingHours(inverted); err == nil {
		t.Error("start after end accepted, want rejection")
	}

	disabledInverted := &model.WorkingHoursUpdate{
		Hours: map[string]model.WorkingHours{
			"0": {Enabled: false, Start: "18:00", End: "09:00"},
		},
	}
	if err := v.ValidateWorkingHours(disabledInverted); err != nil {
		t.Errorf("disabled day must not check window order: %v", err)
	}

	badLunch := &model.WorkingHoursUpdate{
		Hours: map[string]model.WorkingHours{
			"1": {Enabled: true, Start: "09:00", End: "18:00"},
		},
		LunchBreak: &model.TimeWindow{Start: "13:00", End: "12:00"},
	}
	if err := v.ValidateWorkingHours(badLunch); err == nil {
		t.Error("inverted lunch break accepted, want rejection")
	}
}

func TestValidateClosure_DateOrdering(t *testing.T) {
	v := testValidator()

	closure := &model.ClosedPeriod{
		ID:        "9f8e7d6c-5b4a-4956-8493-abcdefabcdef",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-08",
		Reason:    "maintenance",
	}
	err := v.ValidateClosure(closure)
	if err == nil {
		t.Fatal("end before start accepted, want rejection")
	}
	if !strings.Contains(err.Error(), "must not be before") {
		t.Errorf("unexpected message: %v", err)
	}

	closure.EndDate = "2026-09-10"
	if err := v.ValidateClosure(closure); err != nil {
		t.Errorf("single-day closure rejected: %v", err)
	}
}
