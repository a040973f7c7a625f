package service

import (
	"context"
	"testing"

	"courtly/pkg/model"
)

func newPublicationService(slots *mockSlotRepository, closures *mockClosureRepository, settings *mockSettingsRepository) *PublicationService {
	cfg := testConfig()
	return NewPublicationService(cfg, slots, closures, settings, nil)
}

func TestPublishAll_BumpsVersionOnce(t *testing.T) {
	increments := 0

	slots := &mockSlotRepository{
		publishDraftsFunc: func(_ context.Context) (int64, error) {
			return 3, nil
		},
		deletePendingFunc: func(_ context.Context) (int64, error) {
			return 1, nil
		},
	}
	closures := &mockClosureRepository{
		publishFunc: func(_ context.Context) (int64, error) {
			return 2, nil
		},
		deletePendingFunc: func(_ context.Context) (int64, error) {
			return 1, nil
		},
	}
	settings := &mockSettingsRepository{
		incrementFunc: func(_ context.Context) (int64, error) {
			increments++
			return 8, nil
		},
	}

	svc := newPublicationService(slots, closures, settings)

	result, err := svc.PublishAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Published != 3 {
		t.Errorf("published = %d, want 3", result.Published)
	}
	if result.PublishedClosures != 2 {
		t.Errorf("published closures = %d, want 2", result.PublishedClosures)
	}
	if result.Deleted != 2 {
		t.Errorf("deleted = %d, want 2 (one slot, one closure)", result.Deleted)
	}
	if result.DataVersion != 8 {
		t.Errorf("data version = %d, want 8", result.DataVersion)
	}
	if increments != 1 {
		t.Errorf("version incremented %d times, want exactly once per batch", increments)
	}
}

func TestPublishAll_NothingStagedIsNoOp(t *testing.T) {
	increments := 0

	settings := &mockSettingsRepository{
		getFunc: func(_ context.Context) (*model.Settings, error) {
			s := defaultSettings()
			s.DataVersion = 5
			return s, nil
		},
		incrementFunc: func(_ context.Context) (int64, error) {
			increments++
			return 6, nil
		},
	}

	svc := newPublicationService(&mockSlotRepository{}, &mockClosureRepository{}, settings)

	result, err := svc.PublishAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Published != 0 || result.PublishedClosures != 0 || result.Deleted != 0 {
		t.Errorf("expected zero counts, got %+v", result)
	}
	if result.DataVersion != 5 {
		t.Errorf("data version = %d, want the unchanged 5", result.DataVersion)
	}
	if increments != 0 {
		t.Error("an empty publish run must not move the data version")
	}

	// A second run must behave identically.
	again, err := svc.PublishAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if again.DataVersion != 5 || again.Published != 0 {
		t.Errorf("repeat run changed state: %+v", again)
	}
}

func TestPublishAll_DeletionsOnlyStillBumpVersion(t *testing.T) {
	increments := 0

	slots := &mockSlotRepository{
		deletePendingFunc: func(_ context.Context) (int64, error) {
			return 2, nil
		},
	}
	settings := &mockSettingsRepository{
		incrementFunc: func(_ context.Context) (int64, error) {
			increments++
			return 9, nil
		},
	}

	svc := newPublicationService(slots, &mockClosureRepository{}, settings)

	result, err := svc.PublishAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Deleted != 2 {
		t.Errorf("deleted = %d, want 2", result.Deleted)
	}
	if increments != 1 {
		t.Error("published deletions change the customer view and must bump the version")
	}
	if result.DataVersion != 9 {
		t.Errorf("data version = %d, want 9", result.DataVersion)
	}
}
