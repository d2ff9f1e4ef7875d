package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/gayathrinuthana/portfolio-api/internal/config"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
)

const (
	TopicPortfolioEvents = "portfolio.events"
	TopicMediaEvents     = "media.events"
)

const (
	PortfolioEventTypeUpdated = "updated"
	PortfolioEventTypeSynced  = "synced"
	PortfolioEventTypeAvatar  = "avatar-updated"
)

// PortfolioEventPayload carries a committed mirror write to the worker, which
// write-behinds the post-merge document into the durable store.
type PortfolioEventPayload struct {
	EventType string              `json:"event_type"`
	OwnerID   string              `json:"owner_id"`
	Document  *portfolio.Document `json:"document"`
	EmittedAt time.Time           `json:"emitted_at"`
}

// MediaEventPayload records an upload for downstream processing.
type MediaEventPayload struct {
	OwnerID  string `json:"owner_id"`
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
	MediaEventsWriter     *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	portfolioWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	mediaWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicMediaEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		PortfolioEventsWriter: portfolioWriter,
		MediaEventsWriter:     mediaWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error {
	if payload.EmittedAt.IsZero() {
		payload.EmittedAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal portfolio event: %w", err)
	}

	return c.PortfolioEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal media event: %w", err)
	}

	return c.MediaEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.OwnerID),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
	if c.MediaEventsWriter != nil {
		c.MediaEventsWriter.Close()
	}
}
