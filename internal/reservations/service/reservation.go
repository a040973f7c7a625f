package service

import (
	"context"
	"errors"
	"sync"

	reservationerrors "courtly/internal/reservations/errors"
	"courtly/internal/reservations/repository"
	"courtly/internal/reservations/validator"
	"courtly/pkg/config"
	apperrors "courtly/pkg/errors"
	"courtly/pkg/kafka"
	"courtly/pkg/logger"
	"courtly/pkg/model"
	"courtly/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRequest is the customer-facing booking payload.
type ReservationRequest struct {
	SlotID        string `json:"slot_id" validate:"required,uuid4"`
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,e164"`
	People        int    `json:"people" validate:"required,min=1,max=500"`
}

// ReservationResult carries the booking and the slot as committed.
type ReservationResult struct {
	Booking     *model.Booking  `json:"booking"`
	Slot        *model.TimeSlot `json:"slot"`
	DataVersion int64           `json:"data_version"`
}

// ReservationService books places on published slots. Capacity is consumed
// by a single conditional write inside a transaction, so concurrent
// reservations either fit or fail; the slot can never go over capacity.
type ReservationService struct {
	cfg       *config.Config
	log       *logger.Logger
	repo      repository.ReservationRepository
	validator *validator.ReservationValidator
	emitter   *kafka.Emitter
}

func NewReservationService(
	cfg *config.Config,
	repo repository.ReservationRepository,
	v *validator.ReservationValidator,
	emitter *kafka.Emitter,
) *ReservationService {
	return &ReservationService{
		cfg:       cfg,
		log:       cfg.Log,
		repo:      repo,
		validator: v,
		emitter:   emitter,
	}
}

// Reserve books places on a slot. The availability read before the
// transaction distinguishes a plain shortage from a lost race: if the
// conditional write fails after the read said the places were there,
// someone else took them in between.
func (s *ReservationService) Reserve(ctx context.Context, req *ReservationRequest) (*ReservationResult, error) {
	req.CustomerName = sanitizer.NormalizeName(req.CustomerName)
	req.CustomerEmail = sanitizer.NormalizeEmail(req.CustomerEmail)
	req.CustomerPhone = sanitizer.NormalizePhone(req.CustomerPhone)

	if err := s.validator.Validate(req); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	slot, err := s.repo.FindSlotByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrSlotNotFound) {
			return nil, apperrors.SlotNotFound(req.SlotID)
		}
		return nil, apperrors.Internal("failed to load slot", err)
	}
	if !slot.IsPublished() {
		return nil, apperrors.SlotNotFound(req.SlotID)
	}

	activity, err := s.repo.FindActivityByID(ctx, slot.ActivityID)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrSlotNotFound) {
			return nil, apperrors.SlotNotFound(req.SlotID)
		}
		return nil, apperrors.Internal("failed to load activity", err)
	}
	if !activity.Enabled {
		return nil, apperrors.SlotNotFound(req.SlotID)
	}

	if available := slot.AvailablePlaces(); available < req.People {
		return nil, apperrors.NotEnoughPlaces(req.People, available)
	}

	result := &ReservationResult{}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		updated, err := s.repo.ReservePlaces(sessCtx, req.SlotID, req.People)
		if err != nil {
			if errors.Is(err, reservationerrors.ErrCapacityGuard) {
				// The availability read passed, so the guard lost a race
				// with a concurrent reservation or a publish run.
				return apperrors.RaceCondition()
			}
			return err
		}

		booking := &model.Booking{
			SlotID:        updated.ID,
			ActivityID:    updated.ActivityID,
			ActivityName:  activity.Name,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			People:        req.People,
			TotalPrice:    updated.Price * float64(req.People),
			Date:          updated.Date,
			Time:          updated.Time,
		}
		if err := s.repo.InsertBooking(sessCtx, booking); err != nil {
			return err
		}

		version, err := s.repo.IncrementDataVersion(sessCtx)
		if err != nil {
			return err
		}

		result.Booking = booking
		result.Slot = updated
		result.DataVersion = version
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("reservation failed", err)
	}

	s.log.Info("Reservation committed",
		"booking_id", result.Booking.ID,
		"slot_id", result.Slot.ID,
		"people", req.People,
		"data_version", result.DataVersion,
	)

	s.emitter.Emit(ctx, result.Booking.ID, kafka.EventTypeBookingCreated, kafka.BookingCreatedEvent{
		BookingID:    result.Booking.ID,
		SlotID:       result.Slot.ID,
		ActivityID:   result.Slot.ActivityID,
		ActivityName: result.Booking.ActivityName,
		Date:         result.Booking.Date,
		Time:         result.Booking.Time,
		People:       result.Booking.People,
		TotalPrice:   result.Booking.TotalPrice,
		DataVersion:  result.DataVersion,
	})

	return result, nil
}

// PaginatedBookings is the response shape for booking listings.
type PaginatedBookings struct {
	Bookings []*model.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int64            `json:"offset"`
}

func (s *ReservationService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrBookingNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}
	return booking, nil
}

func (s *ReservationService) ListBookings(ctx context.Context, limit int, offset int64) (*PaginatedBookings, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		wg       sync.WaitGroup
		total    int64
		bookings []*model.Booking
		countErr error
		findErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		total, countErr = s.repo.CountBookings(ctx)
	}()
	go func() {
		defer wg.Done()
		bookings, findErr = s.repo.FindBookings(ctx, limit, offset)
	}()
	wg.Wait()

	if countErr != nil {
		return nil, apperrors.Internal("failed to count bookings", countErr)
	}
	if findErr != nil {
		return nil, apperrors.Internal("failed to list bookings", findErr)
	}

	return &PaginatedBookings{
		Bookings: bookings,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}
