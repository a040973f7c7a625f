package middleware

import (
	"context"
	"time"

	"courtly/pkg/kafka"
	"courtly/pkg/logger"
)

// ProducerLogging logs every publish with its outcome and latency.
func ProducerLogging(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		if err != nil {
			log.Error("Kafka publish failed",
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"key", msg.Key,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Debug("Kafka publish succeeded",
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"key", msg.Key,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}
