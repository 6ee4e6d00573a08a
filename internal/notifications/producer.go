package notifications

import (
	"context"
	"fmt"
	"time"

	"nexusems/pkg/logger"
	"nexusems/pkg/metrics"

	"github.com/IBM/sarama"
)

// KafkaProducerConfig contains configuration for the seats-released producer
type KafkaProducerConfig struct {
	Brokers  []string
	Topic    string
	RetryMax int
	Timeout  time.Duration
}

// KafkaReleasePublisher publishes SeatsReleased keyed by event id, so one event's
// releases stay ordered on a single partition.
type KafkaReleasePublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaReleasePublisher(config KafkaProducerConfig, log *logger.Logger) (*KafkaReleasePublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaReleasePublisherWithProducer(producer, config.Topic, log), nil
}

// NewKafkaReleasePublisherWithProducer wraps an existing producer
func NewKafkaReleasePublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *KafkaReleasePublisher {
	return &KafkaReleasePublisher{producer: producer, topic: topic, log: log.WithComponent("release-producer")}
}

func (p *KafkaReleasePublisher) PublishSeatsReleased(ctx context.Context, eventID, bookingID string, ticketIDs []string) (err error) {
	defer func() { metrics.RecordRelease("kafka", err) }()

	msg := NewSeatsReleased(eventID, bookingID, ticketIDs)
	value, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal seats-released message: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(eventID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("message_id"), Value: []byte(msg.MessageID)},
			{Key: []byte("booking_id"), Value: []byte(bookingID)},
		},
		Timestamp: msg.ReleasedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to send seats-released message: %w", err)
	}

	p.log.DebugContext(ctx, "Seats released published",
		"event_id", eventID, "booking_id", bookingID, "partition", partition, "offset", offset)
	return nil
}

func (p *KafkaReleasePublisher) Close() error {
	return p.producer.Close()
}
