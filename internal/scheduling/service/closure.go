package service

import (
	"context"
	"errors"

	schedulingerrors "courtly/internal/scheduling/errors"
	"courtly/internal/scheduling/repository"
	"courtly/internal/scheduling/validator"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// ClosureService manages closed periods. A closed period suppresses slot
// generation immediately but only hides customer-visible slots once
// published.
type ClosureService struct {
	cfg       *config.Config
	log       *logger.Logger
	closures  repository.ClosureRepository
	settings  repository.SettingsRepository
	validator *validator.ScheduleValidator
}

func NewClosureService(cfg *config.Config, closures repository.ClosureRepository, settings repository.SettingsRepository, v *validator.ScheduleValidator) *ClosureService {
	return &ClosureService{
		cfg:       cfg,
		log:       cfg.Log,
		closures:  closures,
		settings:  settings,
		validator: v,
	}
}

func (s *ClosureService) Create(ctx context.Context, closure *model.ClosedPeriod) (*model.ClosedPeriod, error) {
	if closure.ID == "" {
		closure.ID = uuid.NewString()
	}
	closure.Published = false
	closure.PendingDeletion = false

	if err := s.validator.ValidateClosure(closure); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	if err := s.closures.Create(ctx, closure); err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Closed period created",
		"closure_id", closure.ID,
		"start_date", closure.StartDate,
		"end_date", closure.EndDate,
	)

	return closure, nil
}

func (s *ClosureService) Get(ctx context.Context, id string) (*model.ClosedPeriod, error) {
	closure, err := s.closures.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return closure, nil
}

func (s *ClosureService) List(ctx context.Context) ([]*model.ClosedPeriod, error) {
	closures, err := s.closures.FindAll(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return closures, nil
}

// Update replaces the period's dates and reason. An edited closure drops back
// to unpublished so the change goes live only on the next publish run. If the
// closure was live, unpublishing it reveals the slots it was hiding, so the
// edit and the version bump commit together.
func (s *ClosureService) Update(ctx context.Context, id string, update *model.ClosedPeriod) (*model.ClosedPeriod, error) {
	existing, err := s.closures.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	wasLive := existing.Published

	existing.StartDate = update.StartDate
	existing.EndDate = update.EndDate
	existing.Reason = update.Reason
	existing.Published = false

	if err := s.validator.ValidateClosure(existing); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	if !wasLive {
		if err := s.closures.Replace(ctx, existing); err != nil {
			return nil, s.mapError(err)
		}
		s.log.Info("Closed period updated", "closure_id", id)
		return existing, nil
	}

	err = s.closures.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.closures.Replace(sessCtx, existing); err != nil {
			return err
		}
		_, err := s.settings.IncrementDataVersion(sessCtx)
		return err
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Closed period updated", "closure_id", id)
	return existing, nil
}

func (s *ClosureService) MarkPendingDeletion(ctx context.Context, id string) error {
	if err := s.closures.SetPendingDeletion(ctx, id, true); err != nil {
		return s.mapError(err)
	}
	s.log.Info("Closed period staged for deletion", "closure_id", id)
	return nil
}

func (s *ClosureService) CancelPendingDeletion(ctx context.Context, id string) error {
	closure, err := s.closures.FindByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if !closure.PendingDeletion {
		return s.mapError(schedulingerrors.ErrNotPendingDeletion)
	}

	if err := s.closures.SetPendingDeletion(ctx, id, false); err != nil {
		return s.mapError(err)
	}
	s.log.Info("Closed period deletion cancelled", "closure_id", id)
	return nil
}

// Delete removes a closed period immediately. A published closure is
// customer-visible and must go through the staging path; confirming its
// staged deletion reveals the slots it hid, so that path bumps the data
// version in the same transaction.
func (s *ClosureService) Delete(ctx context.Context, id string) error {
	closure, err := s.closures.FindByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}

	if closure.Published && !closure.PendingDeletion {
		return apperrors.Conflict("closed period is customer-visible; stage it for deletion and publish instead")
	}

	if !closure.Published {
		if err := s.closures.Delete(ctx, id); err != nil {
			return s.mapError(err)
		}
		s.log.Info("Closed period deleted", "closure_id", id)
		return nil
	}

	err = s.closures.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.closures.Delete(sessCtx, id); err != nil {
			return err
		}
		_, err := s.settings.IncrementDataVersion(sessCtx)
		return err
	})
	if err != nil {
		return s.mapError(err)
	}
	s.log.Info("Closed period deleted", "closure_id", id)
	return nil
}

func (s *ClosureService) mapError(err error) error {
	switch {
	case errors.Is(err, schedulingerrors.ErrClosureNotFound):
		return apperrors.NotFound("closed period")
	case errors.Is(err, schedulingerrors.ErrNotPendingDeletion):
		return apperrors.Conflict("closed period is not staged for deletion")
	case apperrors.IsAppError(err):
		return err
	default:
		return apperrors.Internal("closed period operation failed", err)
	}
}
