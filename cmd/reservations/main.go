package main

import (
	"courtly/internal/reservations/handler"
	"courtly/internal/reservations/repository"
	"courtly/internal/reservations/service"
	"courtly/internal/reservations/validator"
	"courtly/pkg/app"
	"courtly/pkg/config"
	"courtly/pkg/kafka"
	kafkaconfig "courtly/pkg/kafka/config"
	kafkamiddleware "courtly/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")

	producer := initProducer(cfg)
	defer closeProducer(cfg, producer)

	reservationsHandler := initServices(cfg, producer)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(reservationsHandler)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, events will not be published")
		return nil
	}

	producer, err := kafka.NewProducer(kafkaconfig.Load(), kafka.TopicBookingCreated, kafka.TopicBookingCreated+".dlq")
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

func initServices(cfg *config.Config, producer *kafka.Producer) *handler.ReservationsHandler {
	reservationValidator := validator.NewReservationValidator(cfg.Log)

	reservationRepo := repository.NewMongoReservationRepository(cfg)
	syncRepo := repository.NewMongoSyncRepository(cfg)

	emitter := kafka.NewEmitter(producer, ServiceName, cfg.Log)

	reservationService := service.NewReservationService(cfg, reservationRepo, reservationValidator, emitter)
	syncService := service.NewSyncService(cfg, syncRepo)

	cfg.Log.Info("Reservation services initialized", "database", cfg.MongoDatabaseName)

	return handler.NewReservationsHandler(
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewSyncHandler(syncService, cfg.Log),
	)
}
