package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvTxnWaitBudget = "TXN_WAIT_BUDGET"
	EnvTxnExecBudget = "TXN_EXEC_BUDGET"

	EnvDefaultSlotDurationMin = "DEFAULT_SLOT_DURATION_MIN"
	EnvDefaultSlotCapacity    = "DEFAULT_SLOT_CAPACITY"
	EnvDefaultSlotPrice       = "DEFAULT_SLOT_PRICE"
	EnvDefaultStartOfDay      = "DEFAULT_START_OF_DAY"
	EnvDefaultEndOfDay        = "DEFAULT_END_OF_DAY"

	EnvKafkaEnabled = "KAFKA_ENABLED"
)
