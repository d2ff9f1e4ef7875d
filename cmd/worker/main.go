package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/adapters/event"
	"github.com/gayathrinuthana/portfolio-api/adapters/persistence"
	portfolioUC "github.com/gayathrinuthana/portfolio-api/internal/application/usecase/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/config"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
	"github.com/gayathrinuthana/portfolio-api/pkg/tracing"
)

func main() {
	fmt.Println("Starting Portfolio Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Tracing
	if cfg.Jaeger.Enabled {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-worker")
		if err != nil {
			appLogger.Fatal("cannot init tracer provider", err)
		}
		defer tracing.Shutdown(tp, appLogger)
	}

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)

	// Worker Use Case
	processEventUC := portfolioUC.NewProcessEventUseCase(portfolioRepo, appLogger)

	// Kafka Consumer
	portfolioConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  "portfolio-writer-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer portfolioConsumer.Close()

	appLogger.Info("worker listening", zap.String("topic", event.TopicPortfolioEvents))

	ctx := context.Background()
	for {
		msg, err := portfolioConsumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("failed to read message from Kafka", err)
			continue
		}

		var payload event.PortfolioEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("failed to unmarshal event, skipping", err, zap.String("key", string(msg.Key)))
			commitMessage(portfolioConsumer, msg, appLogger)
			continue
		}

		if err := processEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("failed to process event", err, zap.String("owner_id", payload.OwnerID))
			continue
		}

		commitMessage(portfolioConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("failed to commit message", err)
	}
}
