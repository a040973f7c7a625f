package repository

import (
	"context"
	"errors"
	"fmt"

	schedulingerrors "courtly/internal/scheduling/errors"
	"courtly/pkg/config"
	"courtly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SettingsCollection = "Settings"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	UpdateWorkingHours(ctx context.Context, hours map[string]model.WorkingHours, lunchBreak *model.TimeWindow) error
	// IncrementDataVersion bumps the global sync counter and returns the new
	// value. Must run inside the same transaction as the mutation it tags.
	IncrementDataVersion(ctx context.Context) (int64, error)
}

type mongoSettingsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSettingsRepository(cfg *config.Config) SettingsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSettingsRepository{
		cfg:        cfg,
		collection: db.Collection(SettingsCollection),
	}
}

func (r *mongoSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var settings model.Settings
	err := r.collection.FindOne(ctx, bson.M{"_id": model.SettingsID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, schedulingerrors.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}

	return &settings, nil
}

func (r *mongoSettingsRepository) UpdateWorkingHours(ctx context.Context, hours map[string]model.WorkingHours, lunchBreak *model.TimeWindow) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"working_hours": hours}}
	if lunchBreak != nil {
		update["$set"].(bson.M)["lunch_break"] = lunchBreak
	} else {
		update["$unset"] = bson.M{"lunch_break": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": model.SettingsID}, update)
	if err != nil {
		return fmt.Errorf("failed to update working hours: %w", err)
	}
	if result.MatchedCount == 0 {
		return schedulingerrors.ErrSettingsNotFound
	}

	return nil
}

func (r *mongoSettingsRepository) IncrementDataVersion(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var settings model.Settings
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": model.SettingsID},
		bson.M{"$inc": bson.M{"data_version": 1}},
		opts,
	).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, schedulingerrors.ErrSettingsNotFound
		}
		return 0, fmt.Errorf("failed to increment data version: %w", err)
	}

	return settings.DataVersion, nil
}
