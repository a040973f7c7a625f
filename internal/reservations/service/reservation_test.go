package service

import (
	"context"
	"sync"
	"testing"

	reservationerrors "courtly/internal/reservations/errors"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/model"
)

const testSlotID = "0b2f7b6e-9a1d-4c5e-8f3a-1234567890ab"

func reservableSlot() *model.TimeSlot {
	return &model.TimeSlot{
		ID:              testSlotID,
		ActivityID:      "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Date:            "2026-09-07",
		Time:            "10:00",
		DurationMin:     60,
		MaxCapacity:     4,
		CurrentBookings: 2,
		Price:           25,
		State:           model.SlotPublished,
	}
}

func request(people int) *ReservationRequest {
	return &ReservationRequest{
		SlotID:        testSlotID,
		CustomerName:  "Dana Cohen",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "+14155550123",
		People:        people,
	}
}

func TestReserve_Success(t *testing.T) {
	slot := reservableSlot()
	var inserted *model.Booking

	repo := &mockReservationRepository{
		findSlotFunc: func(_ context.Context, id string) (*model.TimeSlot, error) {
			return slot, nil
		},
		reservePlacesFunc: func(_ context.Context, slotID string, people int) (*model.TimeSlot, error) {
			updated := *slot
			updated.CurrentBookings += people
			return &updated, nil
		},
		insertBookingFunc: func(_ context.Context, booking *model.Booking) error {
			booking.ID = "64f1c0ffee0ddba11caffe00"
			inserted = booking
			return nil
		},
		incrementFunc: func(_ context.Context) (int64, error) {
			return 7, nil
		},
	}

	svc := newReservationService(repo)

	result, err := svc.Reserve(context.Background(), request(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Slot.CurrentBookings != 4 {
		t.Errorf("current bookings = %d, want 4", result.Slot.CurrentBookings)
	}
	if result.DataVersion != 7 {
		t.Errorf("data version = %d, want 7", result.DataVersion)
	}
	if inserted == nil {
		t.Fatal("expected a booking to be inserted")
	}
	if inserted.TotalPrice != 50 {
		t.Errorf("total price = %.2f, want 50.00 (2 x 25)", inserted.TotalPrice)
	}
	if inserted.ActivityName != "Padel Court" {
		t.Errorf("activity name = %q, want the snapshot from the activity", inserted.ActivityName)
	}
	if inserted.Date != "2026-09-07" || inserted.Time != "10:00" {
		t.Errorf("booking snapshot position = %s %s, want the slot position", inserted.Date, inserted.Time)
	}
}

func TestReserve_SlotNotFound(t *testing.T) {
	repo := &mockReservationRepository{
		findSlotFunc: func(_ context.Context, id string) (*model.TimeSlot, error) {
			return nil, reservationerrors.ErrSlotNotFound
		},
	}

	svc := newReservationService(repo)

	_, err := svc.Reserve(context.Background(), request(1))
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeSlotNotFound {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeSlotNotFound)
	}
}

func TestReserve_UnpublishedSlotHidden(t *testing.T) {
	slot := reservableSlot()
	slot.State = model.SlotDraft

	repo := &mockReservationRepository{
		findSlotFunc: func(_ context.Context, id string) (*model.TimeSlot, error) {
			return slot, nil
		},
	}

	svc := newReservationService(repo)

	_, err := svc.Reserve(context.Background(), request(1))
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeSlotNotFound {
		t.Errorf("an unpublished slot must look like a missing slot, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestReserve_NotEnoughPlaces(t *testing.T) {
	slot := reservableSlot() // 2 of 4 taken

	repo := &mockReservationRepository{
		findSlotFunc: func(_ context.Context, id string) (*model.TimeSlot, error) {
			return slot, nil
		},
	}

	svc := newReservationService(repo)

	_, err := svc.Reserve(context.Background(), request(3))
	if err == nil {
		t.Fatal("expected an error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotEnoughPlaces {
		t.Fatalf("code = %s, want %s", appErr.Code, apperrors.CodeNotEnoughPlaces)
	}
	if appErr.Details["available"] != 2 {
		t.Errorf("details.available = %v, want 2", appErr.Details["available"])
	}
}

func TestReserve_RaceDetected(t *testing.T) {
	slot := reservableSlot()

	repo := &mockReservationRepository{
		findSlotFunc: func(_ context.Context, id string) (*model.TimeSlot, error) {
			return slot, nil
		},
		// The read said there was room, the guard says there no longer is.
		reservePlacesFunc: func(_ context.Context, slotID string, people int) (*model.TimeSlot, error) {
			return nil, reservationerrors.ErrCapacityGuard
		},
	}

	svc := newReservationService(repo)

	_, err := svc.Reserve(context.Background(), request(2))
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeRaceCondition {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeRaceCondition)
	}
}

// TestReserve_ConcurrentNeverOversubscribes drives concurrent reservations
// against a guard that mimics the conditional database write: the increment
// only applies while it still fits under capacity.
func TestReserve_ConcurrentNeverOversubscribes(t *testing.T) {
	var mu sync.Mutex
	slot := reservableSlot()
	slot.CurrentBookings = 0

	repo := &mockReservationRepository{
		findSlotFunc: func(_ context.Context, id string) (*model.TimeSlot, error) {
			mu.Lock()
			defer mu.Unlock()
			copied := *slot
			return &copied, nil
		},
		reservePlacesFunc: func(_ context.Context, slotID string, people int) (*model.TimeSlot, error) {
			mu.Lock()
			defer mu.Unlock()
			if slot.CurrentBookings+people > slot.MaxCapacity {
				return nil, reservationerrors.ErrCapacityGuard
			}
			slot.CurrentBookings += people
			copied := *slot
			return &copied, nil
		},
	}

	svc := newReservationService(repo)

	const attempts = 10
	var wg sync.WaitGroup
	results := make([]error, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), request(1))
			results[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		code := apperrors.AsAppError(err).Code
		if code != apperrors.CodeNotEnoughPlaces && code != apperrors.CodeRaceCondition {
			t.Errorf("unexpected failure code %s", code)
		}
	}

	if succeeded != slot.MaxCapacity {
		t.Errorf("%d reservations succeeded, want exactly %d", succeeded, slot.MaxCapacity)
	}
	if slot.CurrentBookings > slot.MaxCapacity {
		t.Errorf("slot oversubscribed: %d of %d", slot.CurrentBookings, slot.MaxCapacity)
	}
}

func TestReserve_InvalidPayload(t *testing.T) {
	svc := newReservationService(&mockReservationRepository{})

	req := request(1)
	req.CustomerEmail = "not-an-email"

	_, err := svc.Reserve(context.Background(), req)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeValidation)
	}
}
