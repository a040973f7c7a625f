package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	schedulingerrors "courtly/internal/scheduling/errors"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	"courtly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ClosureCollection = "ClosedPeriods"
)

type ClosureRepository interface {
	Create(ctx context.Context, closure *model.ClosedPeriod) error
	FindByID(ctx context.Context, id string) (*model.ClosedPeriod, error)
	FindAll(ctx context.Context) ([]*model.ClosedPeriod, error)
	FindPublished(ctx context.Context) ([]*model.ClosedPeriod, error)
	Replace(ctx context.Context, closure *model.ClosedPeriod) error
	SetPendingDeletion(ctx context.Context, id string, pending bool) error
	Delete(ctx context.Context, id string) error
	PublishUnpublished(ctx context.Context) (int64, error)
	DeletePendingDeletion(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoClosureRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoClosureRepository(cfg *config.Config) ClosureRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClosureRepository{
		cfg:        cfg,
		collection: db.Collection(ClosureCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.TxnWaitBudget, cfg.TxnExecBudget),
	}
}

func (r *mongoClosureRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoClosureRepository) Create(ctx context.Context, closure *model.ClosedPeriod) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if closure.CreatedAt.IsZero() {
		closure.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if _, err := r.collection.InsertOne(ctx, closure); err != nil {
		return fmt.Errorf("failed to create closed period: %w", err)
	}
	return nil
}

func (r *mongoClosureRepository) FindByID(ctx context.Context, id string) (*model.ClosedPeriod, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var closure model.ClosedPeriod
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&closure)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, schedulingerrors.ErrClosureNotFound
		}
		return nil, fmt.Errorf("failed to find closed period: %w", err)
	}

	return &closure, nil
}

func (r *mongoClosureRepository) FindAll(ctx context.Context) ([]*model.ClosedPeriod, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findClosures(ctx, bson.M{})
}

func (r *mongoClosureRepository) FindPublished(ctx context.Context) ([]*model.ClosedPeriod, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findClosures(ctx, bson.M{"published": true})
}

func (r *mongoClosureRepository) findClosures(ctx context.Context, filter bson.M) ([]*model.ClosedPeriod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
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

func (r *mongoClosureRepository) Replace(ctx context.Context, closure *model.ClosedPeriod) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": closure.ID}, closure)
	if err != nil {
		return fmt.Errorf("failed to replace closed period: %w", err)
	}
	if result.MatchedCount == 0 {
		return schedulingerrors.ErrClosureNotFound
	}

	return nil
}

func (r *mongoClosureRepository) SetPendingDeletion(ctx context.Context, id string, pending bool) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"pending_deletion": pending}},
	)
	if err != nil {
		return fmt.Errorf("failed to update closed period: %w", err)
	}
	if result.MatchedCount == 0 {
		return schedulingerrors.ErrClosureNotFound
	}

	return nil
}

func (r *mongoClosureRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete closed period: %w", err)
	}
	if result.DeletedCount == 0 {
		return schedulingerrors.ErrClosureNotFound
	}

	return nil
}

func (r *mongoClosureRepository) PublishUnpublished(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"published": false, "pending_deletion": false},
		bson.M{"$set": bson.M{"published": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to publish closed periods: %w", err)
	}

	return result.ModifiedCount, nil
}

func (r *mongoClosureRepository) DeletePendingDeletion(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"pending_deletion": true})
	if err != nil {
		return 0, fmt.Errorf("failed to delete staged closed periods: %w", err)
	}

	return result.DeletedCount, nil
}
