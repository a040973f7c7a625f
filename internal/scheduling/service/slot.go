package service

import (
	"context"
	"errors"
	"sync"

	schedulingerrors "courtly/internal/scheduling/errors"
	"courtly/internal/scheduling/generator"
	"courtly/internal/scheduling/overlap"
	"courtly/internal/scheduling/repository"
	"courtly/internal/scheduling/schedule"
	"courtly/internal/scheduling/validator"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/logger"
	"courtly/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// SlotService owns the slot lifecycle: creation, generation, repositioning,
// resizing and deletion staging. Every edit to a customer-visible slot is
// staged as a draft until the next publication run.
type SlotService struct {
	cfg        *config.Config
	log        *logger.Logger
	slots      repository.SlotRepository
	closures   repository.ClosureRepository
	activities repository.ActivityRepository
	settings   repository.SettingsRepository
	validator  *validator.ScheduleValidator
}

func NewSlotService(
	cfg *config.Config,
	slots repository.SlotRepository,
	closures repository.ClosureRepository,
	activities repository.ActivityRepository,
	settings repository.SettingsRepository,
	v *validator.ScheduleValidator,
) *SlotService {
	return &SlotService{
		cfg:        cfg,
		log:        cfg.Log,
		slots:      slots,
		closures:   closures,
		activities: activities,
		settings:   settings,
		validator:  v,
	}
}

// PaginatedSlots is the response shape for slot listings.
type PaginatedSlots struct {
	Slots  []*model.TimeSlot `json:"slots"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int64             `json:"offset"`
}

func (s *SlotService) loadConfiguration(ctx context.Context) (*schedule.Configuration, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	closures, err := s.closures.FindAll(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}

	return schedule.NewConfiguration(settings, closures), nil
}

// Create inserts a single manually positioned slot as a draft. The slot may
// not land on a closed date or overlap another slot of the same activity;
// a position outside the working window is allowed but flagged.
func (s *SlotService) Create(ctx context.Context, slot *model.TimeSlot) (*model.TimeSlot, error) {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	slot.State = model.SlotDraft
	slot.CurrentBookings = 0
	slot.PendingDeletion = false
	slot.PublishedSnapshot = nil

	if err := s.validator.ValidateSlot(slot); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	cfg, err := s.loadConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.IsClosed(slot.Date) {
		return nil, apperrors.ScheduleConflict("date falls inside a closed period")
	}

	existing, err := s.slots.FindByDateAndActivity(ctx, slot.Date, slot.ActivityID)
	if err != nil {
		return nil, s.mapError(err)
	}
	if overlap.Conflicts(slot, existing) {
		return nil, apperrors.ScheduleConflict("slot overlaps an existing slot of the same activity")
	}

	s.classify(cfg, slot)

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Slot created",
		"slot_id", slot.ID,
		"activity_id", slot.ActivityID,
		"date", slot.Date,
		"time", slot.Time,
		"state", slot.State,
	)

	return slot, nil
}

// Generate bulk-creates draft slots over a date range. Disabled activities
// are silently dropped from the request; producing nothing is reported as
// warnings rather than an error.
func (s *SlotService) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	if req.DurationMin == 0 {
		req.DurationMin = s.cfg.DefaultSlotDurationMin
	}
	if req.MaxCapacity == 0 {
		req.MaxCapacity = s.cfg.DefaultSlotCapacity
	}
	if req.Price == 0 {
		req.Price = s.cfg.DefaultSlotPrice
	}

	if err := s.validator.ValidateGeneration(&req); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	enabled, err := s.activities.FindEnabled(ctx)
	if err != nil {
		return nil, s.mapError(err)
	}
	enabledIDs := make(map[string]struct{}, len(enabled))
	for _, a := range enabled {
		enabledIDs[a.ID] = struct{}{}
	}

	var activityIDs []string
	for _, id := range req.ActivityIDs {
		if _, ok := enabledIDs[id]; ok {
			activityIDs = append(activityIDs, id)
		}
	}
	req.ActivityIDs = activityIDs

	cfg, err := s.loadConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.slots.FindByDateRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, s.mapError(err)
	}

	result, err := generator.Generate(cfg, req, existing)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if err := s.slots.CreateMany(ctx, result.Created); err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Slots generated",
		"created", len(result.Created),
		"warnings", result.Warnings,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
	)

	return result, nil
}

func (s *SlotService) Get(ctx context.Context, id string) (*model.TimeSlot, error) {
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return slot, nil
}

func (s *SlotService) List(ctx context.Context, limit int, offset int64) (*PaginatedSlots, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		wg       sync.WaitGroup
		total    int64
		slots    []*model.TimeSlot
		countErr error
		findErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		total, countErr = s.slots.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		slots, findErr = s.slots.FindAll(ctx, limit, offset)
	}()
	wg.Wait()

	if countErr != nil {
		return nil, s.mapError(countErr)
	}
	if findErr != nil {
		return nil, s.mapError(findErr)
	}

	return &PaginatedSlots{
		Slots:  slots,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *SlotService) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*model.TimeSlot, error) {
	slots, err := s.slots.FindByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, s.mapError(err)
	}
	return slots, nil
}

// Move repositions a slot. A published slot keeps a snapshot of the position
// customers currently see and drops back to draft until republished.
func (s *SlotService) Move(ctx context.Context, id string, move *model.SlotMove) (*model.TimeSlot, error) {
	if err := s.validator.ValidateMove(move); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.reposition(ctx, slot, move.Date, move.Time, slot.DurationMin)
}

// Resize changes a slot's duration in place, with the same staging rules
// as Move.
func (s *SlotService) Resize(ctx context.Context, id string, resize *model.SlotResize) (*model.TimeSlot, error) {
	if err := s.validator.ValidateResize(resize); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.reposition(ctx, slot, slot.Date, slot.Time, resize.DurationMin)
}

func (s *SlotService) reposition(ctx context.Context, slot *model.TimeSlot, date, timeOfDay string, durationMin int) (*model.TimeSlot, error) {
	cfg, err := s.loadConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.IsClosed(date) {
		return nil, apperrors.ScheduleConflict("target date falls inside a closed period")
	}

	day, err := schedule.Weekday(date)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid target date")
	}
	if _, _, ok := cfg.Window(day); !ok {
		return nil, apperrors.ScheduleConflict("target weekday has working hours disabled")
	}

	candidate := *slot
	candidate.Date = date
	candidate.Time = timeOfDay
	candidate.DurationMin = durationMin

	existing, err := s.slots.FindByDateAndActivity(ctx, date, slot.ActivityID)
	if err != nil {
		return nil, s.mapError(err)
	}
	if overlap.Conflicts(&candidate, existing) {
		return nil, apperrors.ScheduleConflict("target position overlaps an existing slot of the same activity")
	}

	// The snapshot records where customers still see the slot. It is taken
	// the first time a published slot is edited and survives further edits.
	if slot.IsPublished() {
		slot.Snapshot()
	}

	slot.Date = date
	slot.Time = timeOfDay
	slot.DurationMin = durationMin
	s.classify(cfg, slot)

	if err := s.slots.Replace(ctx, slot); err != nil {
		return nil, s.mapError(err)
	}

	s.log.Info("Slot repositioned",
		"slot_id", slot.ID,
		"date", slot.Date,
		"time", slot.Time,
		"duration_min", slot.DurationMin,
		"state", slot.State,
	)

	return slot, nil
}

// classify assigns the staging state from the slot's position relative to
// the working window. Lunch break intersection also parks the slot outside
// hours so the operator sees it flagged.
func (s *SlotService) classify(cfg *schedule.Configuration, slot *model.TimeSlot) {
	slot.State = model.SlotDraft

	day, err := schedule.Weekday(slot.Date)
	if err != nil {
		slot.State = model.SlotOutsideHours
		return
	}
	startMin, err := schedule.ParseMinutes(slot.Time)
	if err != nil {
		slot.State = model.SlotOutsideHours
		return
	}

	if !cfg.Contains(day, startMin, slot.DurationMin) || cfg.IntersectsLunchBreak(startMin, slot.DurationMin) {
		slot.State = model.SlotOutsideHours
	}
}

// MarkPendingDeletion stages a slot for removal. The slot stays visible to
// customers until the next publication run deletes it.
func (s *SlotService) MarkPendingDeletion(ctx context.Context, id string) error {
	if err := s.slots.SetPendingDeletion(ctx, id, true); err != nil {
		return s.mapError(err)
	}
	s.log.Info("Slot staged for deletion", "slot_id", id)
	return nil
}

func (s *SlotService) CancelPendingDeletion(ctx context.Context, id string) error {
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}
	if !slot.PendingDeletion {
		return s.mapError(schedulingerrors.ErrNotPendingDeletion)
	}

	if err := s.slots.SetPendingDeletion(ctx, id, false); err != nil {
		return s.mapError(err)
	}
	s.log.Info("Slot deletion cancelled", "slot_id", id)
	return nil
}

// Delete removes a slot immediately. Only drafts that have never been
// published and carry no bookings may skip the staging path.
func (s *SlotService) Delete(ctx context.Context, id string) error {
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return s.mapError(err)
	}

	// A draft that was never published is invisible to customers and can
	// go without a version bump.
	if !slot.PendingDeletion {
		if slot.State != model.SlotDraft || slot.PublishedSnapshot != nil || slot.CurrentBookings != 0 {
			return apperrors.Conflict("slot is customer-visible; stage it for deletion and publish instead")
		}
		if err := s.slots.Delete(ctx, id); err != nil {
			return s.mapError(err)
		}
		s.log.Info("Slot deleted", "slot_id", id)
		return nil
	}

	// Confirming a staged deletion removes a slot customers may still see.
	// The version bump rides the same transaction so pollers drop it on
	// their next sync.
	err = s.slots.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.slots.Delete(sessCtx, id); err != nil {
			return err
		}
		_, err := s.settings.IncrementDataVersion(sessCtx)
		return err
	})
	if err != nil {
		return s.mapError(err)
	}
	s.log.Info("Slot deleted", "slot_id", id)
	return nil
}

func (s *SlotService) mapError(err error) error {
	switch {
	case errors.Is(err, schedulingerrors.ErrSlotNotFound):
		return apperrors.NotFound("slot")
	case errors.Is(err, schedulingerrors.ErrActivityNotFound):
		return apperrors.NotFound("activity")
	case errors.Is(err, schedulingerrors.ErrClosureNotFound):
		return apperrors.NotFound("closed period")
	case errors.Is(err, schedulingerrors.ErrSettingsNotFound):
		return apperrors.NotFound("settings")
	case errors.Is(err, schedulingerrors.ErrDuplicateSlot):
		return apperrors.Conflict("a slot already exists at this date, time and activity")
	case errors.Is(err, schedulingerrors.ErrNotPendingDeletion):
		return apperrors.Conflict("slot is not staged for deletion")
	case apperrors.IsAppError(err):
		return err
	default:
		return apperrors.Internal("slot operation failed", err)
	}
}
