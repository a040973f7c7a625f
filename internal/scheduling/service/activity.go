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
	"courtly/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityService manages the activity catalog. Disabling an activity stops
// generation and hides its slots from customers without touching the slots
// themselves, so catalog changes bump the data version to reach pollers.
type ActivityService struct {
	cfg        *config.Config
	log        *logger.Logger
	activities repository.ActivityRepository
	settings   repository.SettingsRepository
	validator  *validator.ScheduleValidator
}

func NewActivityService(cfg *config.Config, activities repository.ActivityRepository, settings repository.SettingsRepository, v *validator.ScheduleValidator) *ActivityService {
	return &ActivityService{
		cfg:        cfg,
		log:        cfg.Log,
		activities: activities,
		settings:   settings,
		validator:  v,
	}
}

func (s *ActivityService) Create(ctx context.Context, activity *model.Activity) (*model.Activity, error) {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	activity.Name = sanitizer.NormalizeName(activity.Name)

	if err := s.validator.ValidateActivity(activity); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	// A disabled activity is invisible to customers, no bump needed.
	if !activity.Enabled {
		if err := s.activities.Create(ctx, activity); err != nil {
			return nil, s.mapError(err)
		}
		s.log.Info("Activity created", "activity_id", activity.ID, "name", activity.Name)
		return activity, nil
	}

	err := s.activities.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.activities.Create(sessCtx, activity); err != nil {
			return err
		}
		_, err := s.settings.IncrementDataVersion(sessCtx)
		return err
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Activity created", "activity_id", activity.ID, "name", activity.Name)
	return activity, nil
}

func (s *ActivityService) Get(ctx context.Context, id string) (*model.Activity, error) {
	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return activity, nil
}

func (s *ActivityService) List(ctx context.Context) ([]*model.Activity, error) {
	activities, err := s.activities.FindAll(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return activities, nil
}

// Update edits the catalog entry. Enabling or disabling flips the
// customer-visible slot set immediately, so the change and the version bump
// commit together.
func (s *ActivityService) Update(ctx context.Context, id string, update *model.ActivityUpdate) (*model.Activity, error) {
	if update.Name != "" {
		update.Name = sanitizer.NormalizeName(update.Name)
	}

	if err := s.validator.ValidateActivityUpdate(update); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	err := s.activities.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.activities.Update(sessCtx, id, update); err != nil {
			return err
		}
		_, err := s.settings.IncrementDataVersion(sessCtx)
		return err
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Activity updated", "activity_id", id)
	return activity, nil
}

func (s *ActivityService) Delete(ctx context.Context, id string) error {
	err := s.activities.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.activities.Delete(sessCtx, id); err != nil {
			return err
		}
		_, err := s.settings.IncrementDataVersion(sessCtx)
		return err
	})
	if err != nil {
		return s.mapError(err)
	}
	s.log.Info("Activity deleted", "activity_id", id)
	return nil
}

func (s *ActivityService) mapError(err error) error {
	switch {
	case errors.Is(err, schedulingerrors.ErrActivityNotFound):
		return apperrors.NotFound("activity")
	case apperrors.IsAppError(err):
		return err
	default:
		return apperrors.Internal("activity operation failed", err)
	}
}
