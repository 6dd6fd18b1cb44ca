package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/adapters/event"
	"github.com/khoahotran/portfolio-page/adapters/persistence"
	pageviewUC "github.com/khoahotran/portfolio-page/internal/application/usecase/pageview"
	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	log.Info("Starting page view worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("Cannot start worker", errors.New("config Kafka brokers not found"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis
	redisClient, err := persistence.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Worker Use Case
	processViewUC := pageviewUC.NewProcessViewUseCase(persistence.NewRedisViewCounter(redisClient), log)

	// Kafka Consumer
	viewConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicViewEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer viewConsumer.Close()

	log.Info("Worker listening", zap.String("topic", event.TopicViewEvents), zap.String("group_id", cfg.Kafka.GroupID))

	for {
		msg, err := viewConsumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Worker stopped")
				return
			}
			log.Error("Failed to read message from Kafka", err)
			continue
		}

		l := log.With(zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

		view, err := event.DecodeView(msg)
		if err != nil {
			l.Error("Failed to decode view event, skipping", err)
			commitMessage(viewConsumer, msg, l)
			continue
		}

		// Committing a later offset would implicitly commit this one, so the
		// loop does not move on until the view is counted. On shutdown the
		// message stays uncommitted and is fetched again on restart.
		if err := processViewUC.ExecuteUntilCounted(ctx, view); err != nil {
			l.Info("Worker stopped before view was counted", zap.String("view_id", view.ID.String()))
			return
		}

		commitMessage(viewConsumer, msg, l)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
