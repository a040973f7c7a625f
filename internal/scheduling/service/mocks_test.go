package service

import (
	"context"

	"courtly/internal/scheduling/generator"
	"courtly/internal/scheduling/repository"
	"courtly/internal/scheduling/validator"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	"courtly/pkg/logger"
	"courtly/pkg/model"
)

// Mock repositories for testing.

type mockSlotRepository struct {
	createFunc                func(ctx context.Context, slot *model.TimeSlot) error
	createManyFunc            func(ctx context.Context, slots []*model.TimeSlot) error
	findByIDFunc              func(ctx context.Context, id string) (*model.TimeSlot, error)
	findAllFunc               func(ctx context.Context, limit int, offset int64) ([]*model.TimeSlot, error)
	findByDateRangeFunc       func(ctx context.Context, startDate, endDate string) ([]*model.TimeSlot, error)
	findByDateAndActivityFunc func(ctx context.Context, date, activityID string) ([]*model.TimeSlot, error)
	replaceFunc               func(ctx context.Context, slot *model.TimeSlot) error
	setPendingDeletionFunc    func(ctx context.Context, id string, pending bool) error
	deleteFunc                func(ctx context.Context, id string) error
	countFunc                 func(ctx context.Context) (int64, error)
	countDraftsFunc           func(ctx context.Context) (int64, error)
	publishDraftsFunc         func(ctx context.Context) (int64, error)
	deletePendingFunc         func(ctx context.Context) (int64, error)
}

func (m *mockSlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, slot)
	}
	return nil
}

func (m *mockSlotRepository) CreateMany(ctx context.Context, slots []*model.TimeSlot) error {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, slots)
	}
	return nil
}

func (m *mockSlotRepository) FindByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSlotRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.TimeSlot, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.TimeSlot{}, nil
}

func (m *mockSlotRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.TimeSlot, error) {
	if m.findByDateRangeFunc != nil {
		return m.findByDateRangeFunc(ctx, startDate, endDate)
	}
	return []*model.TimeSlot{}, nil
}

func (m *mockSlotRepository) FindByDateAndActivity(ctx context.Context, date, activityID string) ([]*model.TimeSlot, error) {
	if m.findByDateAndActivityFunc != nil {
		return m.findByDateAndActivityFunc(ctx, date, activityID)
	}
	return []*model.TimeSlot{}, nil
}

func (m *mockSlotRepository) Replace(ctx context.Context, slot *model.TimeSlot) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, slot)
	}
	return nil
}

func (m *mockSlotRepository) SetPendingDeletion(ctx context.Context, id string, pending bool) error {
	if m.setPendingDeletionFunc != nil {
		return m.setPendingDeletionFunc(ctx, id, pending)
	}
	return nil
}

func (m *mockSlotRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockSlotRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockSlotRepository) CountDrafts(ctx context.Context) (int64, error) {
	if m.countDraftsFunc != nil {
		return m.countDraftsFunc(ctx)
	}
	return 0, nil
}

func (m *mockSlotRepository) PublishDrafts(ctx context.Context) (int64, error) {
	if m.publishDraftsFunc != nil {
		return m.publishDraftsFunc(ctx)
	}
	return 0, nil
}

func (m *mockSlotRepository) DeletePendingDeletion(ctx context.Context) (int64, error) {
	if m.deletePendingFunc != nil {
		return m.deletePendingFunc(ctx)
	}
	return 0, nil
}

func (m *mockSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockClosureRepository struct {
	createFunc             func(ctx context.Context, closure *model.ClosedPeriod) error
	findByIDFunc           func(ctx context.Context, id string) (*model.ClosedPeriod, error)
	findAllFunc            func(ctx context.Context) ([]*model.ClosedPeriod, error)
	findPublishedFunc      func(ctx context.Context) ([]*model.ClosedPeriod, error)
	replaceFunc            func(ctx context.Context, closure *model.ClosedPeriod) error
	setPendingDeletionFunc func(ctx context.Context, id string, pending bool) error
	deleteFunc             func(ctx context.Context, id string) error
	publishFunc            func(ctx context.Context) (int64, error)
	deletePendingFunc      func(ctx context.Context) (int64, error)
}

func (m *mockClosureRepository) Create(ctx context.Context, closure *model.ClosedPeriod) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, closure)
	}
	return nil
}

func (m *mockClosureRepository) FindByID(ctx context.Context, id string) (*model.ClosedPeriod, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockClosureRepository) FindAll(ctx context.Context) ([]*model.ClosedPeriod, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.ClosedPeriod{}, nil
}

func (m *mockClosureRepository) FindPublished(ctx context.Context) ([]*model.ClosedPeriod, error) {
	if m.findPublishedFunc != nil {
		return m.findPublishedFunc(ctx)
	}
	return []*model.ClosedPeriod{}, nil
}

func (m *mockClosureRepository) Replace(ctx context.Context, closure *model.ClosedPeriod) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, closure)
	}
	return nil
}

func (m *mockClosureRepository) SetPendingDeletion(ctx context.Context, id string, pending bool) error {
	if m.setPendingDeletionFunc != nil {
		return m.setPendingDeletionFunc(ctx, id, pending)
	}
	return nil
}

func (m *mockClosureRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockClosureRepository) PublishUnpublished(ctx context.Context) (int64, error) {
	if m.publishFunc != nil {
		return m.publishFunc(ctx)
	}
	return 0, nil
}

func (m *mockClosureRepository) DeletePendingDeletion(ctx context.Context) (int64, error) {
	if m.deletePendingFunc != nil {
		return m.deletePendingFunc(ctx)
	}
	return 0, nil
}

func (m *mockClosureRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockActivityRepository struct {
	createFunc      func(ctx context.Context, activity *model.Activity) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Activity, error)
	findAllFunc     func(ctx context.Context) ([]*model.Activity, error)
	findEnabledFunc func(ctx context.Context) ([]*model.Activity, error)
	updateFunc      func(ctx context.Context, id string, update *model.ActivityUpdate) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepository) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockActivityRepository) FindAll(ctx context.Context) ([]*model.Activity, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Activity{}, nil
}

func (m *mockActivityRepository) FindEnabled(ctx context.Context) ([]*model.Activity, error) {
	if m.findEnabledFunc != nil {
		return m.findEnabledFunc(ctx)
	}
	return []*model.Activity{}, nil
}

func (m *mockActivityRepository) Update(ctx context.Context, id string, update *model.ActivityUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, update)
	}
	return nil
}

func (m *mockActivityRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockActivityRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSettingsRepository struct {
	getFunc       func(ctx context.Context) (*model.Settings, error)
	updateFunc    func(ctx context.Context, hours map[string]model.WorkingHours, lunchBreak *model.TimeWindow) error
	incrementFunc func(ctx context.Context) (int64, error)
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return defaultSettings(), nil
}

func (m *mockSettingsRepository) UpdateWorkingHours(ctx context.Context, hours map[string]model.WorkingHours, lunchBreak *model.TimeWindow) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, hours, lunchBreak)
	}
	return nil
}

func (m *mockSettingsRepository) IncrementDataVersion(ctx context.Context) (int64, error) {
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx)
	}
	return 1, nil
}

var (
	_ repository.SlotRepository     = (*mockSlotRepository)(nil)
	_ repository.ClosureRepository  = (*mockClosureRepository)(nil)
	_ repository.ActivityRepository = (*mockActivityRepository)(nil)
	_ repository.SettingsRepository = (*mockSettingsRepository)(nil)
)

func defaultSettings() *model.Settings {
	return &model.Settings{
		ID:          model.SettingsID,
		DataVersion: 1,
		Hours: map[string]model.WorkingHours{
			"0": {Enabled: false},
			"1": {Enabled: true, Start: "09:00", End: "18:00"},
			"2": {Enabled: true, Start: "09:00", End: "18:00"},
			"3": {Enabled: true, Start: "09:00", End: "18:00"},
			"4": {Enabled: true, Start: "09:00", End: "18:00"},
			"5": {Enabled: true, Start: "09:00", End: "18:00"},
			"6": {Enabled: false},
		},
	}
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{Log: log}
}

func testValidator(cfg *config.Config) *validator.ScheduleValidator {
	return validator.NewScheduleValidator(cfg.Log)
}

func generatorRequest() generator.Request {
	return generator.Request{
		StartDate:   "2026-09-07",
		EndDate:     "2026-09-13",
		ActivityIDs: []string{"f47ac10b-58cc-4372-a567-0e02b2c3d479"},
		DurationMin: 60,
		MaxCapacity: 4,
		Price:       25,
	}
}
