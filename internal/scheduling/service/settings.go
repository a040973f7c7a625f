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
)

// SettingsService exposes the global working-hours configuration. Hour
// changes affect future generation runs only; already created slots keep
// their position and are flagged outside hours by the lifecycle instead.
type SettingsService struct {
	cfg       *config.Config
	log       *logger.Logger
	settings  repository.SettingsRepository
	validator *validator.ScheduleValidator
}

func NewSettingsService(cfg *config.Config, settings repository.SettingsRepository, v *validator.ScheduleValidator) *SettingsService {
	return &SettingsService{
		cfg:       cfg,
		log:       cfg.Log,
		settings:  settings,
		validator: v,
	}
}

func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	return settings, nil
}

func (s *SettingsService) UpdateWorkingHours(ctx context.Context, update *model.WorkingHoursUpdate) (*model.Settings, error) {
	if err := s.validator.ValidateWorkingHours(update); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	if err := s.settings.UpdateWorkingHours(ctx, update.Hours, update.LunchBreak); err != nil {
		return nil, s.mapError(err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Working hours updated", "days", len(update.Hours))
	return settings, nil
}

func (s *SettingsService) mapError(err error) error {
	switch {
	case errors.Is(err, schedulingerrors.ErrSettingsNotFound):
		return apperrors.NotFound("settings")
	case apperrors.IsAppError(err):
		return err
	default:
		return apperrors.Internal("settings operation failed", err)
	}
}
