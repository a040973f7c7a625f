package service

import (
	"context"
	"errors"

	reservationerrors "courtly/internal/reservations/errors"
	"courtly/internal/reservations/repository"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"
	"courtly/pkg/model"
)

// CustomerSlot is the customer-facing projection of a slot. An edited slot
// that has not been republished is rendered at its snapshot position, so the
// customer view never moves between publish runs.
type CustomerSlot struct {
	ID              string  `json:"id"`
	ActivityID      string  `json:"activity_id"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	DurationMin     int     `json:"duration_min"`
	AvailablePlaces int     `json:"available_places"`
	Price           float64 `json:"price"`
}

// SyncResponse is the polling payload. When the client's version is current,
// Changed is false and the dataset fields are omitted. Settings ride along so
// clients can render the working-hours grid without a second call.
type SyncResponse struct {
	Changed     bool              `json:"changed"`
	DataVersion int64             `json:"data_version"`
	Slots       []*CustomerSlot   `json:"slots,omitempty"`
	Activities  []*model.Activity `json:"activities,omitempty"`
	Settings    *model.Settings   `json:"settings,omitempty"`
}

// SyncService answers version polls. A client sends the last data version it
// saw; anything newer triggers a full customer-visible snapshot.
type SyncService struct {
	cfg  *config.Config
	log  *logger.Logger
	repo repository.SyncRepository
}

func NewSyncService(cfg *config.Config, repo repository.SyncRepository) *SyncService {
	return &SyncService{
		cfg:  cfg,
		log:  cfg.Log,
		repo: repo,
	}
}

func (s *SyncService) Sync(ctx context.Context, lastSeenVersion int64) (*SyncResponse, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrSettingsNotFound) {
			return nil, apperrors.NotFound("settings")
		}
		return nil, apperrors.Internal("failed to load settings", err)
	}

	if settings.DataVersion <= lastSeenVersion && lastSeenVersion > 0 {
		return &SyncResponse{
			Changed:     false,
			DataVersion: settings.DataVersion,
		}, nil
	}

	slots, err := s.repo.FindCustomerVisibleSlots(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load slots", err)
	}
	closures, err := s.repo.FindPublishedClosures(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load closed periods", err)
	}
	activities, err := s.repo.FindEnabledActivities(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to load activities", err)
	}

	enabled := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		enabled[a.ID] = struct{}{}
	}

	view := buildCustomerView(slots, closures, enabled)

	return &SyncResponse{
		Changed:     true,
		DataVersion: settings.DataVersion,
		Slots:       view,
		Activities:  activities,
		Settings:    settings,
	}, nil
}

// buildCustomerView projects slots to what customers see: published slots at
// their live position, edited-but-unpublished slots at their snapshot
// position. Slots inside a published closure or belonging to a disabled
// activity are dropped. Slots staged for deletion stay visible until the
// deletion is published.
func buildCustomerView(slots []*model.TimeSlot, closures []*model.ClosedPeriod, enabledActivities map[string]struct{}) []*CustomerSlot {
	view := make([]*CustomerSlot, 0, len(slots))

	for _, slot := range slots {
		if _, ok := enabledActivities[slot.ActivityID]; !ok {
			continue
		}

		date := slot.Date
		timeOfDay := slot.Time
		duration := slot.DurationMin
		if !slot.IsPublished() {
			if slot.PublishedSnapshot == nil {
				continue
			}
			date = slot.PublishedSnapshot.Date
			timeOfDay = slot.PublishedSnapshot.Time
			duration = slot.PublishedSnapshot.DurationMin
		}

		if coveredByClosure(date, closures) {
			continue
		}

		view = append(view, &CustomerSlot{
			ID:              slot.ID,
			ActivityID:      slot.ActivityID,
			Date:            date,
			Time:            timeOfDay,
			DurationMin:     duration,
			AvailablePlaces: slot.AvailablePlaces(),
			Price:           slot.Price,
		})
	}

	return view
}

func coveredByClosure(date string, closures []*model.ClosedPeriod) bool {
	for _, c := range closures {
		if c.Covers(date) {
			return true
		}
	}
	return false
}
