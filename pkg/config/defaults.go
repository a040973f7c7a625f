package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "courtly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Transaction budgets: exceeding either surfaces as a retryable
	// persistence failure, never a silent one.
	DefaultTxnWaitBudget = 5 * time.Second
	DefaultTxnExecBudget = 10 * time.Second

	DefaultSlotDurationMin = 60
	DefaultSlotCapacity    = 4
	DefaultSlotPrice       = 0

	DefaultStartOfDay = "09:00"
	DefaultEndOfDay   = "18:00"

	DefaultPaginationLimit = 100
)
