package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"courtly/internal/migrations/mongo/validators"
	"courtly/pkg/model"
)

var (
	// One slot per (date, time, activity): the unique index backs up the
	// generator's in-memory dedup against concurrent runs.
	SlotsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
				{Key: "activity_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "pending_deletion", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "slot_id", Value: 1}}},
		{Keys: bson.D{{Key: "customer_email", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	ClosuresIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}}},
	}

	ActivitiesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "enabled", Value: 1}}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName, startOfDay, endOfDay string) error {
	db := client.Database(dbName)
	fmt.Printf("Running Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Slots": {
			Indexes:   SlotsIndexes,
			Validator: validators.SlotValidator,
		},
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"ClosedPeriods": {
			Indexes:   ClosuresIndexes,
			Validator: validators.ClosureValidator,
		},
		"Activities": {
			Indexes:   ActivitiesIndexes,
			Validator: validators.ActivityValidator,
		},
		"Settings": {
			Validator: validators.SettingsValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if len(def.Indexes) > 0 {
			if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
				return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
			}
		}
	}

	if err := seedSettings(ctx, db, startOfDay, endOfDay); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	fmt.Printf("Collection %s already exists, updating validator\n", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}

// seedSettings inserts the global settings document if missing: weekdays
// enabled with the configured default window, weekend disabled, version
// zero. Idempotent.
func seedSettings(ctx context.Context, db *mongo.Database, startOfDay, endOfDay string) error {
	coll := db.Collection("Settings")

	count, err := coll.CountDocuments(ctx, bson.M{"_id": model.SettingsID})
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("Settings document already present, skipping seed")
		return nil
	}

	weekday := model.WorkingHours{Enabled: true, Start: startOfDay, End: endOfDay}
	hours := map[string]model.WorkingHours{
		"0": {Enabled: false},
		"1": weekday,
		"2": weekday,
		"3": weekday,
		"4": weekday,
		"5": weekday,
		"6": {Enabled: false},
	}

	settings := model.Settings{
		ID:          model.SettingsID,
		DataVersion: 0,
		Hours:       hours,
	}

	if _, err := coll.InsertOne(ctx, settings); err != nil {
		return err
	}

	fmt.Println("Seeded default settings document")
	return nil
}
