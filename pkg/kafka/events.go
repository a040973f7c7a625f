package kafka

import (
	"context"

	"courtly/pkg/logger"
)

const (
	EventTypeSlotsPublished = "slots.published"
	EventTypeBookingCreated = "booking.created"
)

// SlotsPublishedEvent announces a bulk publication. Consumers can use it as a
// push alternative to polling the sync endpoint; the data version carried here
// is the one committed with the publication.
type SlotsPublishedEvent struct {
	Published         int   `json:"published"`
	PublishedClosures int   `json:"published_closures"`
	Deleted           int   `json:"deleted"`
	DataVersion       int64 `json:"data_version"`
}

// BookingCreatedEvent mirrors the booking snapshot for downstream consumers
// (notification workers, reporting).
type BookingCreatedEvent struct {
	BookingID    string  `json:"booking_id"`
	SlotID       string  `json:"slot_id"`
	ActivityID   string  `json:"activity_id"`
	ActivityName string  `json:"activity_name"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	People       int     `json:"people"`
	TotalPrice   float64 `json:"total_price"`
	DataVersion  int64   `json:"data_version"`
}

// Emitter publishes domain events, logging and swallowing failures: event
// delivery is best-effort and never rolls back a committed mutation.
type Emitter struct {
	producer *Producer
	source   string
	log      *logger.Logger
}

func NewEmitter(producer *Producer, source string, log *logger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (e *Emitter) Emit(ctx context.Context, key, eventType string, payload any) {
	if e == nil || e.producer == nil {
		return
	}

	msg := NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(e.source).
		Build()

	if err := e.producer.Publish(ctx, msg); err != nil {
		e.log.Warn("Failed to publish event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}
