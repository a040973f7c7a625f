package integration

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"courtly/pkg/model"
	"courtly/test/integration/testutil"
)

// The reservation flow test needs both services: scheduling to stage and
// publish a slot, reservations to book it. Set SCHEDULING_URL and
// RESERVATIONS_URL to enable.

func clients(t *testing.T) (*testutil.Client, *testutil.Client) {
	t.Helper()
	scheduling := testutil.NewClient(testutil.BaseURL(t, "SCHEDULING_URL"))
	reservations := testutil.NewClient(testutil.BaseURL(t, "RESERVATIONS_URL"))
	scheduling.WaitForHealthy(t, 30*time.Second)
	reservations.WaitForHealthy(t, 30*time.Second)
	return scheduling, reservations
}

// publishSlot stages a single slot in the far future and publishes it,
// returning the published slot.
func publishSlot(t *testing.T, scheduling *testutil.Client, capacity int) *model.TimeSlot {
	t.Helper()

	resp := scheduling.POST(t, "/api/v1/activities", map[string]any{
		"name":    fmt.Sprintf("Court %d", time.Now().UnixNano()),
		"enabled": true,
	})
	testutil.AssertStatusCode(t, resp, 201)
	var activity model.Activity
	resp.Data(t, &activity)

	// A Monday well in the future: Mondays are enabled both in the seeded
	// defaults and in the window the scheduling flow test configures.
	date := time.Now().AddDate(0, 0, 28)
	for date.Weekday() != time.Monday {
		date = date.AddDate(0, 0, 1)
	}
	resp = scheduling.POST(t, "/api/v1/slots", map[string]any{
		"activity_id":  activity.ID,
		"date":         date.Format("2006-01-02"),
		"time":         "10:00",
		"duration_min": 60,
		"max_capacity": capacity,
		"price":        25,
	})
	testutil.AssertStatusCode(t, resp, 201)
	var slot model.TimeSlot
	resp.Data(t, &slot)

	resp = scheduling.POST(t, "/api/v1/publish", nil)
	testutil.AssertStatusCode(t, resp, 200)

	return &slot
}

func reserve(t *testing.T, reservations *testutil.Client, slotID string, people int) *testutil.Response {
	t.Helper()
	return reservations.POST(t, "/api/v1/reservations", map[string]any{
		"slot_id":        slotID,
		"customer_name":  "Maria Garcia",
		"customer_email": "maria.garcia@example.com",
		"people":         people,
	})
}

func TestReservationFlow(t *testing.T) {
	scheduling, reservations := clients(t)
	slot := publishSlot(t, scheduling, 4)

	resp := reserve(t, reservations, slot.ID, 2)
	testutil.AssertStatusCode(t, resp, 201)

	var result struct {
		Booking     *model.Booking  `json:"booking"`
		Slot        *model.TimeSlot `json:"slot"`
		DataVersion int64           `json:"data_version"`
	}
	resp.Data(t, &result)

	if result.Booking.TotalPrice != 50 {
		t.Errorf("total price = %v, want 50", result.Booking.TotalPrice)
	}
	if result.Slot.CurrentBookings != 2 {
		t.Errorf("current bookings = %d, want 2", result.Slot.CurrentBookings)
	}
	if result.DataVersion < 1 {
		t.Errorf("data version = %d, want >= 1", result.DataVersion)
	}

	// A poll with an older version must return the new dataset.
	resp = reservations.GET(t, fmt.Sprintf("/api/v1/sync?last_seen_version=%d", result.DataVersion-1))
	testutil.AssertStatusCode(t, resp, 200)
	var sync struct {
		Changed     bool  `json:"changed"`
		DataVersion int64 `json:"data_version"`
	}
	resp.Data(t, &sync)
	if !sync.Changed {
		t.Error("expected changed=true for a stale poll")
	}
	if sync.DataVersion < result.DataVersion {
		t.Errorf("sync version %d behind reservation version %d", sync.DataVersion, result.DataVersion)
	}
}

func TestReservationRejectsOverbooking(t *testing.T) {
	scheduling, reservations := clients(t)
	slot := publishSlot(t, scheduling, 3)

	resp := reserve(t, reservations, slot.ID, 2)
	testutil.AssertStatusCode(t, resp, 201)

	resp = reserve(t, reservations, slot.ID, 2)
	if resp.StatusCode != 409 {
		t.Fatalf("overbooking returned %d, want 409. Body: %s", resp.StatusCode, resp.Body)
	}
	code := resp.ErrorCode(t)
	if code != "NOT_ENOUGH_PLACES" && code != "RACE_CONDITION" {
		t.Errorf("error code = %s, want NOT_ENOUGH_PLACES or RACE_CONDITION", code)
	}
}

func TestReservationConcurrent(t *testing.T) {
	scheduling, reservations := clients(t)
	slot := publishSlot(t, scheduling, 5)

	const attempts = 10
	var wg sync.WaitGroup
	statuses := make([]int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i] = reserve(t, reservations, slot.ID, 1).StatusCode
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, status := range statuses {
		if status == 201 {
			succeeded++
		}
	}
	if succeeded != 5 {
		t.Errorf("%d concurrent reservations succeeded for capacity 5", succeeded)
	}
}

func TestReservationUnknownSlot(t *testing.T) {
	_, reservations := clients(t)

	resp := reserve(t, reservations, "0b2f7b6e-9a1d-4c5e-8f3a-1234567890ab", 1)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown slot returned %d, want 404. Body: %s", resp.StatusCode, resp.Body)
	}
	if code := resp.ErrorCode(t); code != "SLOT_NOT_FOUND" {
		t.Errorf("error code = %s, want SLOT_NOT_FOUND", code)
	}
}
