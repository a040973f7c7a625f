package service

import (
	"context"

	"courtly/internal/reservations/repository"
	"courtly/internal/reservations/validator"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	"courtly/pkg/logger"
	"courtly/pkg/model"
)

type mockReservationRepository struct {
	findSlotFunc        func(ctx context.Context, id string) (*model.TimeSlot, error)
	findActivityFunc    func(ctx context.Context, id string) (*model.Activity, error)
	reservePlacesFunc   func(ctx context.Context, slotID string, people int) (*model.TimeSlot, error)
	insertBookingFunc   func(ctx context.Context, booking *model.Booking) error
	findBookingFunc     func(ctx context.Context, id string) (*model.Booking, error)
	findBookingsFunc    func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countBookingsFunc   func(ctx context.Context) (int64, error)
	incrementFunc       func(ctx context.Context) (int64, error)
}

func (m *mockReservationRepository) FindSlotByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	if m.findSlotFunc != nil {
		return m.findSlotFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockReservationRepository) FindActivityByID(ctx context.Context, id string) (*model.Activity, error) {
	if m.findActivityFunc != nil {
		return m.findActivityFunc(ctx, id)
	}
	return &model.Activity{ID: id, Name: "Padel Court", Enabled: true}, nil
}

func (m *mockReservationRepository) ReservePlaces(ctx context.Context, slotID string, people int) (*model.TimeSlot, error) {
	if m.reservePlacesFunc != nil {
		return m.reservePlacesFunc(ctx, slotID, people)
	}
	return nil, nil
}

func (m *mockReservationRepository) InsertBooking(ctx context.Context, booking *model.Booking) error {
	if m.insertBookingFunc != nil {
		return m.insertBookingFunc(ctx, booking)
	}
	booking.ID = "64f1c0ffee0ddba11caffe00"
	return nil
}

func (m *mockReservationRepository) FindBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findBookingFunc != nil {
		return m.findBookingFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockReservationRepository) FindBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findBookingsFunc != nil {
		return m.findBookingsFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockReservationRepository) CountBookings(ctx context.Context) (int64, error) {
	if m.countBookingsFunc != nil {
		return m.countBookingsFunc(ctx)
	}
	return 0, nil
}

func (m *mockReservationRepository) IncrementDataVersion(ctx context.Context) (int64, error) {
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx)
	}
	return 1, nil
}

func (m *mockReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSyncRepository struct {
	getSettingsFunc    func(ctx context.Context) (*model.Settings, error)
	findSlotsFunc      func(ctx context.Context) ([]*model.TimeSlot, error)
	findClosuresFunc   func(ctx context.Context) ([]*model.ClosedPeriod, error)
	findActivitiesFunc func(ctx context.Context) ([]*model.Activity, error)
}

func (m *mockSyncRepository) GetSettings(ctx context.Context) (*model.Settings, error) {
	if m.getSettingsFunc != nil {
		return m.getSettingsFunc(ctx)
	}
	return &model.Settings{ID: model.SettingsID, DataVersion: 1}, nil
}

func (m *mockSyncRepository) FindCustomerVisibleSlots(ctx context.Context) ([]*model.TimeSlot, error) {
	if m.findSlotsFunc != nil {
		return m.findSlotsFunc(ctx)
	}
	return []*model.TimeSlot{}, nil
}

func (m *mockSyncRepository) FindPublishedClosures(ctx context.Context) ([]*model.ClosedPeriod, error) {
	if m.findClosuresFunc != nil {
		return m.findClosuresFunc(ctx)
	}
	return []*model.ClosedPeriod{}, nil
}

func (m *mockSyncRepository) FindEnabledActivities(ctx context.Context) ([]*model.Activity, error) {
	if m.findActivitiesFunc != nil {
		return m.findActivitiesFunc(ctx)
	}
	return []*model.Activity{}, nil
}

var (
	_ repository.ReservationRepository = (*mockReservationRepository)(nil)
	_ repository.SyncRepository        = (*mockSyncRepository)(nil)
)

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{Log: log}
}

func newReservationService(repo *mockReservationRepository) *ReservationService {
	cfg := testConfig()
	return NewReservationService(cfg, repo, validator.NewReservationValidator(cfg.Log), nil)
}
