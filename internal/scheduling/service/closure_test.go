package service

import (
	"context"
	"testing"

	apperrors "courtly/pkg/errors"
	"courtly/pkg/model"
)

func liveClosure(id string) *model.ClosedPeriod {
	return &model.ClosedPeriod{
		ID:        id,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-09",
		Reason:    "maintenance",
		Published: true,
	}
}

func newClosureService(closures *mockClosureRepository, settings *mockSettingsRepository) *ClosureService {
	cfg := testConfig()
	return NewClosureService(cfg, closures, settings, testValidator(cfg))
}

func TestClosureUpdate_LiveClosureBumpsDataVersion(t *testing.T) {
	closure := liveClosure("0b2f7b6e-9a1d-4c5e-8f3a-1234567890ab")

	var replaced *model.ClosedPeriod
	closures := &mockClosureRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.ClosedPeriod, error) {
			return closure, nil
		},
		replaceFunc: func(_ context.Context, c *model.ClosedPeriod) error {
			replaced = c
			return nil
		},
	}
	increments := 0

	svc := newClosureService(closures, countingSettings(&increments))

	updated, err := svc.Update(context.Background(), closure.ID, &model.ClosedPeriod{
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Reason:    "maintenance extended",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Published {
		t.Error("an edited closure must drop back to unpublished")
	}
	if replaced == nil {
		t.Error("expected the closure to be persisted")
	}
	if increments != 1 {
		t.Errorf("data version incremented %d times, want 1: unpublishing a live closure reveals its slots", increments)
	}
}

func TestClosureUpdate_UnpublishedSkipsBump(t *testing.T) {
	closure := liveClosure("0b2f7b6e-9a1d-4c5e-8f3a-1234567890ab")
	closure.Published = false

	closures := &mockClosureRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.ClosedPeriod, error) {
			return closure, nil
		},
	}
	increments := 0

	svc := newClosureService(closures, countingSettings(&increments))

	_, err := svc.Update(context.Background(), closure.ID, &model.ClosedPeriod{
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Reason:    "maintenance extended",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if increments != 0 {
		t.Errorf("data version incremented %d times, want 0 for a closure customers never saw", increments)
	}
}

func TestClosureDelete_StagedLiveClosureBumpsDataVersion(t *testing.T) {
	closure := liveClosure("0b2f7b6e-9a1d-4c5e-8f3a-1234567890ab")
	closure.PendingDeletion = true

	deleted := false
	closures := &mockClosureRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.ClosedPeriod, error) {
			return closure, nil
		},
		deleteFunc: func(_ context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	increments := 0

	svc := newClosureService(closures, countingSettings(&increments))

	if err := svc.Delete(context.Background(), closure.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected the staged closure to be deleted")
	}
	if increments != 1 {
		t.Errorf("data version incremented %d times, want 1: removing a live closure changes the customer view", increments)
	}
}

func TestClosureCancelPendingDeletion_NotStaged(t *testing.T) {
	closure := liveClosure("0b2f7b6e-9a1d-4c5e-8f3a-1234567890ab")

	closures := &mockClosureRepository{
		findByIDFunc: func(_ context.Context, id string) (*model.ClosedPeriod, error) {
			return closure, nil
		},
	}

	svc := newClosureService(closures, &mockSettingsRepository{})

	err := svc.CancelPendingDeletion(context.Background(), closure.ID)
	if err == nil {
		t.Fatal("expected cancelling an unstaged closure to fail")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeConflict)
	}
}
