package main

import (
	"courtly/internal/scheduling/handler"
	"courtly/internal/scheduling/repository"
	"courtly/internal/scheduling/service"
	"courtly/internal/scheduling/validator"
	"courtly/pkg/app"
	"courtly/pkg/config"
	"courtly/pkg/kafka"
	kafkaconfig "courtly/pkg/kafka/config"
	kafkamiddleware "courtly/pkg/kafka/middleware"
)

const ServiceName = "scheduling"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Scheduling service")

	producer := initProducer(cfg)
	defer closeProducer(cfg, producer)

	schedulingHandler := initServices(cfg, producer)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(schedulingHandler)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, events will not be published")
		return nil
	}

	producer, err := kafka.NewProducer(kafkaconfig.Load(), kafka.TopicSlotsPublished, kafka.TopicSlotsPublished+".dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.ProducerLogging(cfg.Log))
	return producer
}

func closeProducer(cfg *config.Config, producer *kafka.Producer) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		cfg.Log.Warn("Failed to close Kafka producer", "error", err)
	}
}

func initServices(cfg *config.Config, producer *kafka.Producer) *handler.SchedulingHandler {
	scheduleValidator := validator.NewScheduleValidator(cfg.Log)

	slotRepo := repository.NewMongoSlotRepository(cfg)
	closureRepo := repository.NewMongoClosureRepository(cfg)
	activityRepo := repository.NewMongoActivityRepository(cfg)
	settingsRepo := repository.NewMongoSettingsRepository(cfg)

	emitter := kafka.NewEmitter(producer, ServiceName, cfg.Log)

	slotService := service.NewSlotService(cfg, slotRepo, closureRepo, activityRepo, settingsRepo, scheduleValidator)
	publicationService := service.NewPublicationService(cfg, slotRepo, closureRepo, settingsRepo, emitter)
	closureService := service.NewClosureService(cfg, closureRepo, settingsRepo, scheduleValidator)
	activityService := service.NewActivityService(cfg, activityRepo, settingsRepo, scheduleValidator)
	settingsService := service.NewSettingsService(cfg, settingsRepo, scheduleValidator)

	cfg.Log.Info("Scheduling services initialized", "database", cfg.MongoDatabaseName)

	return handler.NewSchedulingHandler(
		handler.NewSlotHandler(slotService, cfg.Log),
		handler.NewPublicationHandler(publicationService, cfg.Log),
		handler.NewClosureHandler(closureService, cfg.Log),
		handler.NewActivityHandler(activityService, cfg.Log),
		handler.NewSettingsHandler(settingsService, cfg.Log),
	)
}
