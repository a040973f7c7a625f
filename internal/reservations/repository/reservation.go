package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationerrors "courtly/internal/reservations/errors"
	"courtly/pkg/config"
	mongotx "courtly/pkg/db/mongo"
	"courtly/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SlotCollection     = "Slots"
	BookingCollection  = "Bookings"
	SettingsCollection = "Settings"
)

type ReservationRepository interface {
	FindSlotByID(ctx context.Context, id string) (*model.TimeSlot, error)
	FindActivityByID(ctx context.Context, id string) (*model.Activity, error)
	ReservePlaces(ctx context.Context, slotID string, people int) (*model.TimeSlot, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	FindBookingByID(ctx context.Context, id string) (*model.Booking, error)
	FindBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	CountBookings(ctx context.Context) (int64, error)
	IncrementDataVersion(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoReservationRepository struct {
	cfg        *config.Config
	slots      *mongo.Collection
	bookings   *mongo.Collection
	settings   *mongo.Collection
	activities *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		slots:      db.Collection(SlotCollection),
		bookings:   db.Collection(BookingCollection),
		settings:   db.Collection(SettingsCollection),
		activities: db.Collection(ActivityCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.TxnWaitBudget, cfg.TxnExecBudget),
	}
}

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

func (r *mongoReservationRepository) FindSlotByID(ctx context.Context, id string) (*model.TimeSlot, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var slot model.TimeSlot
	err := r.slots.FindOne(ctx, bson.M{"_id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	return &slot, nil
}

func (r *mongoReservationRepository) FindActivityByID(ctx context.Context, id string) (*model.Activity, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var activity model.Activity
	err := r.activities.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to find activity: %w", err)
	}

	return &activity, nil
}

// ReservePlaces consumes capacity with a single conditional update: the
// filter only matches while the slot is published and the increment still
// fits under max_capacity, so two concurrent reservations can never
// oversubscribe a slot. No match returns ErrCapacityGuard; the caller
// decides whether that was a genuine shortage or a lost race.
func (r *mongoReservationRepository) ReservePlaces(ctx context.Context, slotID string, people int) (*model.TimeSlot, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":   slotID,
		"state": model.SlotPublished,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{"$current_bookings", people}},
				"$max_capacity",
			},
		},
	}
	update := bson.M{"$inc": bson.M{"current_bookings": people}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot model.TimeSlot
	err := r.slots.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrCapacityGuard
		}
		return nil, fmt.Errorf("failed to reserve places: %w", err)
	}

	return &slot, nil
}

func (r *mongoReservationRepository) InsertBooking(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if booking.ID == "" {
		booking.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoReservationRepository) FindBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	err := r.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationerrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoReservationRepository) FindBookings(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.bookings.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoReservationRepository) CountBookings(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.bookings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) IncrementDataVersion(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var settings model.Settings
	err := r.settings.FindOneAndUpdate(ctx,
		bson.M{"_id": model.SettingsID},
		bson.M{"$inc": bson.M{"data_version": 1}},
		opts,
	).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, reservationerrors.ErrSettingsNotFound
		}
		return 0, fmt.Errorf("failed to increment data version: %w", err)
	}

	return settings.DataVersion, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
