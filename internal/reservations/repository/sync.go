package repository

import (
	"context"
	"errors"
	"fmt"

	reservationerrors "courtly/internal/reservations/errors"
	"courtly/pkg/config"
	"courtly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ClosureCollection  = "ClosedPeriods"
	ActivityCollection = "Activities"
)

// SyncRepository reads the customer-visible dataset: the current data
// version plus everything a client needs to render the schedule.
type SyncRepository interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	FindCustomerVisibleSlots(ctx context.Context) ([]*model.TimeSlot, error)
	FindPublishedClosures(ctx context.Context) ([]*model.ClosedPeriod, error)
	FindEnabledActivities(ctx context.Context) ([]*model.Activity, error)
}

type mongoSyncRepository struct {
	cfg        *config.Config
	slots      *mongo.Collection
	closures   *mongo.Collection
	activities *mongo.Collection
	settings   *mongo.Collection
}

func NewMongoSyncRepository(cfg *config.Config) SyncRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSyncRepository{
		cfg:        cfg,
		slots:      db.Collection(SlotCollection),
		closures:   db.Collection(ClosureCollection),
		activities: db.Collection(ActivityCollection),
		settings:   db.Collection(SettingsCollection),
	}
}

func (r *mongoSyncRepository) GetSettings(ctx context.Context) (*model.Settings, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var settings model.Settings
	err := r.settings.FindOne(ctx, bson.M{"_id": model.SettingsID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}

	return &settings, nil
}

// FindCustomerVisibleSlots returns published slots plus edited slots that
// still carry a snapshot of their last published position. The caller
// renders the latter at the snapshot, not at the staged position.
func (r *mongoSyncRepository) FindCustomerVisibleSlots(ctx context.Context) ([]*model.TimeSlot, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"$or": bson.A{
			bson.M{"state": model.SlotPublished},
			bson.M{"published_snapshot": bson.M{"$exists": true}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})

	cursor, err := r.slots.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.TimeSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}

	return slots, nil
}

func (r *mongoSyncRepository) FindPublishedClosures(ctx context.Context) ([]*model.ClosedPeriod, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.closures.Find(ctx, bson.M{"published": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find closed periods: %w", err)
	}
	defer cursor.Close(ctx)

	var closures []*model.ClosedPeriod
	if err = cursor.All(ctx, &closures); err != nil {
		return nil, fmt.Errorf("failed to decode closed periods: %w", err)
	}

	return closures, nil
}

func (r *mongoSyncRepository) FindEnabledActivities(ctx context.Context) ([]*model.Activity, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.activities.Find(ctx, bson.M{"enabled": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []*model.Activity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	return activities, nil
}
