package service

import (
	"context"
	"testing"

	"courtly/pkg/model"
)

func newSyncService(repo *mockSyncRepository) *SyncService {
	return NewSyncService(testConfig(), repo)
}

func enabledActivity(id string) *model.Activity {
	return &model.Activity{ID: id, Name: "Padel Court", Enabled: true}
}

func TestSync_UpToDateClient(t *testing.T) {
	repo := &mockSyncRepository{
		getSettingsFunc: func(_ context.Context) (*model.Settings, error) {
			return &model.Settings{ID: model.SettingsID, DataVersion: 5}, nil
		},
		findSlotsFunc: func(_ context.Context) ([]*model.TimeSlot, error) {
			t.Fatal("an up-to-date client must not trigger a dataset load")
			return nil, nil
		},
	}

	svc := newSyncService(repo)

	resp, err := svc.Sync(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Changed {
		t.Error("expected changed=false for a current client")
	}
	if resp.DataVersion != 5 {
		t.Errorf("data version = %d, want 5", resp.DataVersion)
	}
	if resp.Slots != nil {
		t.Error("dataset must be omitted when nothing changed")
	}
}

func TestSync_StaleClientGetsSnapshot(t *testing.T) {
	published := &model.TimeSlot{
		ID: "s1", ActivityID: "a1", Date: "2026-09-07", Time: "10:00",
		DurationMin: 60, MaxCapacity: 4, CurrentBookings: 1, Price: 25,
		State: model.SlotPublished,
	}

	repo := &mockSyncRepository{
		getSettingsFunc: func(_ context.Context) (*model.Settings, error) {
			return &model.Settings{ID: model.SettingsID, DataVersion: 6}, nil
		},
		findSlotsFunc: func(_ context.Context) ([]*model.TimeSlot, error) {
			return []*model.TimeSlot{published}, nil
		},
		findActivitiesFunc: func(_ context.Context) ([]*model.Activity, error) {
			return []*model.Activity{enabledActivity("a1")}, nil
		},
	}

	svc := newSyncService(repo)

	resp, err := svc.Sync(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Changed {
		t.Fatal("expected changed=true for a stale client")
	}
	if len(resp.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp.Slots))
	}
	if resp.Slots[0].AvailablePlaces != 3 {
		t.Errorf("available places = %d, want 3", resp.Slots[0].AvailablePlaces)
	}
	if resp.Settings == nil || resp.Settings.DataVersion != 6 {
		t.Error("expected the settings document in the snapshot")
	}
}

func TestSync_EditedSlotRenderedAtSnapshot(t *testing.T) {
	staged := &model.TimeSlot{
		ID: "s1", ActivityID: "a1",
		Date: "2026-09-09", Time: "14:00", DurationMin: 90,
		MaxCapacity: 4, CurrentBookings: 2, Price: 25,
		State: model.SlotDraft,
		PublishedSnapshot: &model.SlotSnapshot{
			Date: "2026-09-07", Time: "10:00", DurationMin: 60,
		},
	}

	repo := &mockSyncRepository{
		findSlotsFunc: func(_ context.Context) ([]*model.TimeSlot, error) {
			return []*model.TimeSlot{staged}, nil
		},
		findActivitiesFunc: func(_ context.Context) ([]*model.Activity, error) {
			return []*model.Activity{enabledActivity("a1")}, nil
		},
	}

	svc := newSyncService(repo)

	resp, err := svc.Sync(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp.Slots))
	}
	got := resp.Slots[0]
	if got.Date != "2026-09-07" || got.Time != "10:00" || got.DurationMin != 60 {
		t.Errorf("customer sees %s %s (%dmin), want the snapshot position 2026-09-07 10:00 (60min)",
			got.Date, got.Time, got.DurationMin)
	}
}

func TestSync_DraftWithoutSnapshotHidden(t *testing.T) {
	draft := &model.TimeSlot{
		ID: "s1", ActivityID: "a1", Date: "2026-09-07", Time: "10:00",
		DurationMin: 60, MaxCapacity: 4, State: model.SlotDraft,
	}

	repo := &mockSyncRepository{
		findSlotsFunc: func(_ context.Context) ([]*model.TimeSlot, error) {
			return []*model.TimeSlot{draft}, nil
		},
		findActivitiesFunc: func(_ context.Context) ([]*model.Activity, error) {
			return []*model.Activity{enabledActivity("a1")}, nil
		},
	}

	svc := newSyncService(repo)

	resp, err := svc.Sync(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Slots) != 0 {
		t.Error("a never-published draft must not be customer-visible")
	}
}

func TestSync_DisabledActivityHidden(t *testing.T) {
	published := &model.TimeSlot{
		ID: "s1", ActivityID: "a1", Date: "2026-09-07", Time: "10:00",
		DurationMin: 60, MaxCapacity: 4, State: model.SlotPublished,
	}

	repo := &mockSyncRepository{
		findSlotsFunc: func(_ context.Context) ([]*model.TimeSlot, error) {
			return []*model.TimeSlot{published}, nil
		},
		findActivitiesFunc: func(_ context.Context) ([]*model.Activity, error) {
			return []*model.Activity{}, nil
		},
	}

	svc := newSyncService(repo)

	resp, err := svc.Sync(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Slots) != 0 {
		t.Error("slots of disabled activities must be hidden")
	}
}

func TestSync_PublishedClosureHidesSlots(t *testing.T) {
	published := &model.TimeSlot{
		ID: "s1", ActivityID: "a1", Date: "2026-09-07", Time: "10:00",
		DurationMin: 60, MaxCapacity: 4, State: model.SlotPublished,
	}

	repo := &mockSyncRepository{
		findSlotsFunc: func(_ context.Context) ([]*model.TimeSlot, error) {
			return []*model.TimeSlot{published}, nil
		},
		findClosuresFunc: func(_ context.Context) ([]*model.ClosedPeriod, error) {
			return []*model.ClosedPeriod{
				{ID: "c1", StartDate: "2026-09-07", EndDate: "2026-09-08", Published: true},
			}, nil
		},
		findActivitiesFunc: func(_ context.Context) ([]*model.Activity, error) {
			return []*model.Activity{enabledActivity("a1")}, nil
		},
	}

	svc := newSyncService(repo)

	resp, err := svc.Sync(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Slots) != 0 {
		t.Error("slots covered by a published closure must be hidden")
	}
}

func TestSync_PendingDeletionStillVisible(t *testing.T) {
	staged := &model.TimeSlot{
		ID: "s1", ActivityID: "a1", Date: "2026-09-07", Time: "10:00",
		DurationMin: 60, MaxCapacity: 4, State: model.SlotPublished,
		PendingDeletion: true,
	}

	repo := &mockSyncRepository{
		findSlotsFunc: func(_ context.Context) ([]*model.TimeSlot, error) {
			return []*model.TimeSlot{staged}, nil
		},
		findActivitiesFunc: func(_ context.Context) ([]*model.Activity, error) {
			return []*model.Activity{enabledActivity("a1")}, nil
		},
	}

	svc := newSyncService(repo)

	resp, err := svc.Sync(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Slots) != 1 {
		t.Error("a slot staged for deletion stays visible until the deletion is published")
	}
}
