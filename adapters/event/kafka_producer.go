package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/growth-tracker/internal/application/service"
	"github.com/khoahotran/growth-tracker/internal/config"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

const TopicGrowthEvents = "growth.events"

type KafkaProducerClient struct {
	GrowthEventsWriter *kafka.Writer
	logger             logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// Keyed by user id so one user's events stay ordered on a partition.
	growthWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicGrowthEvents,
		Balancer: &kafka.Hash{},
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		GrowthEventsWriter: growthWriter,
		logger:             log,
	}, nil
}

func (c *KafkaProducerClient) PublishGrowthEvent(ctx context.Context, ev service.GrowthEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal growth event: %w", err)
	}
	return c.GrowthEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.GrowthEventsWriter != nil {
		if err := c.GrowthEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
