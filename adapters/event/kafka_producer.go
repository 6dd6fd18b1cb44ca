package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/internal/domain/pageview"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

const TopicViewEvents = "view.events"

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaViewPublisher struct {
	writer messageWriter
	logger logger.Logger
}

func NewKafkaViewPublisher(cfg config.Config, log logger.Logger) (*KafkaViewPublisher, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicViewEvents,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.Kafka.WriteTimeout,
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				log.Error("Failed to deliver view events", err, zap.Int("count", len(msgs)))
			}
		},
	}

	log.Info("Initialize Kafka view producer successfully.", zap.Strings("brokers", brokers))
	return newKafkaViewPublisher(writer, log), nil
}

func newKafkaViewPublisher(w messageWriter, log logger.Logger) *KafkaViewPublisher {
	return &KafkaViewPublisher{writer: w, logger: log}
}

func (p *KafkaViewPublisher) Publish(ctx context.Context, v pageview.View) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal view event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(v.Path),
		Value: payload,
		Time:  v.ViewedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish view event: %w", err)
	}
	return nil
}

func (p *KafkaViewPublisher) Close() {
	if p.writer != nil {
		if err := p.writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka view producer", err)
		}
	}
	p.logger.Info("Closed Kafka view producer")
}

// DecodeView parses a message written by Publish.
func DecodeView(msg kafka.Message) (pageview.View, error) {
	var v pageview.View
	if err := json.Unmarshal(msg.Value, &v); err != nil {
		return v, fmt.Errorf("unmarshal view event: %w", err)
	}
	if v.ViewedAt.IsZero() {
		v.ViewedAt = msg.Time
	}
	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now().UTC()
	}
	return v, nil
}
