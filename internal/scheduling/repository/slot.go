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
	SlotCollection = "Slots"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *model.TimeSlot) error
	CreateMany(ctx context.Context, slots []*model.TimeSlot) error
	FindByID(ctx context.Context, id string) (*model.TimeSlot, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.TimeSlot, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.TimeSlot, error)
	FindByDateAndActivity(ctx context.Context, date, activityID string) ([]*model.TimeSlot, error)
	Replace(ctx context.Context, slot *model.TimeSlot) error
	SetPendingDeletion(ctx context.Context, id string, pending bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountDrafts(ctx context.Context) (int64, error)
	PublishDrafts(ctx context.Context) (int64, error)
	DeletePendingDeletion(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoSlotRepository(cfg *config.Config) SlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotRepository{
		cfg:        cfg,
		collection: db.Collection(SlotCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.TxnWaitBudget, cfg.TxnExecBudget),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction, where wrapping the session context would break transaction
// semantics.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoSlotRepository) Create(ctx context.Context, slot *model.TimeSlot) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if _, err := r.collection.InsertOne(ctx, slot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return schedulingerrors.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *mongoSlotRepository) CreateMany(ctx context.Context, slots []*model.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	docs := make([]any, 0, len(slots))
	for _, slot := range slots {
		docs = append(docs, slot)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return schedulingerrors.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create slots: %w", err)
	}
	return nil
}

func (r *mongoSlotRepository) FindByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var slot model.TimeSlot
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, schedulingerrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	return &slot, nil
}

func (r *mongoSlotRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.TimeSlot, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.findSlots(ctx, bson.M{}, opts)
}

func (r *mongoSlotRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.TimeSlot, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date": bson.M{"$gte": startDate, "$lte": endDate},
	}

	return r.findSlots(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}))
}

func (r *mongoSlotRepository) FindByDateAndActivity(ctx context.Context, date, activityID string) ([]*model.TimeSlot, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date":        date,
		"activity_id": activityID,
	}

	return r.findSlots(ctx, filter, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
}

func (r *mongoSlotRepository) findSlots(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.TimeSlot, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
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

func (r *mongoSlotRepository) Replace(ctx context.Context, slot *model.TimeSlot) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": slot.ID}, slot)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return schedulingerrors.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to replace slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return schedulingerrors.ErrSlotNotFound
	}

	return nil
}

func (r *mongoSlotRepository) SetPendingDeletion(ctx context.Context, id string, pending bool) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"pending_deletion": pending}},
	)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return schedulingerrors.ErrSlotNotFound
	}

	return nil
}

func (r *mongoSlotRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if result.DeletedCount == 0 {
		return schedulingerrors.ErrSlotNotFound
	}

	return nil
}

func (r *mongoSlotRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}

// CountDrafts counts the slots a publish run would promote. Pending-deletion
// slots are excluded: they belong to the deletion path.
func (r *mongoSlotRepository) CountDrafts(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"state":            model.SlotDraft,
		"pending_deletion": false,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count draft slots: %w", err)
	}
	return count, nil
}

// PublishDrafts promotes every draft slot not staged for deletion, clearing
// the published snapshot so customers see the slot at its new position.
// Slots outside working hours are left untouched.
func (r *mongoSlotRepository) PublishDrafts(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{
			"state":            model.SlotDraft,
			"pending_deletion": false,
		},
		bson.M{
			"$set":   bson.M{"state": model.SlotPublished},
			"$unset": bson.M{"published_snapshot": ""},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to publish draft slots: %w", err)
	}

	return result.ModifiedCount, nil
}

func (r *mongoSlotRepository) DeletePendingDeletion(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"pending_deletion": true})
	if err != nil {
		return 0, fmt.Errorf("failed to delete staged slots: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *mongoSlotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
