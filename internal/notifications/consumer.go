package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"nexusems/pkg/logger"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

// ReleaseConsumer feeds seats-released messages from a consumer group to a handler.
// Messages are marked before handling, so delivery is at most once.
type ReleaseConsumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler ReleaseHandler
	log     *logger.Logger
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewReleaseConsumer(config ConsumerConfig, handler ReleaseHandler, log *logger.Logger) (*ReleaseConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &ReleaseConsumer{
		group:   group,
		topics:  []string{config.Topic},
		handler: handler,
		log:     log.WithComponent("release-consumer"),
	}, nil
}

// Start consumes until ctx is cancelled or Stop is called
func (c *ReleaseConsumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	handler := &releaseGroupHandler{handler: c.handler, log: c.log}

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		for err := range c.group.Errors() {
			c.log.ErrorContext(ctx, "Consumer group error", "error", err)
		}
	}()
	go func() {
		defer c.wg.Done()
		for {
			if err := c.group.Consume(ctx, c.topics, handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				c.log.ErrorContext(ctx, "Error consuming seats-released", "error", err)
				time.Sleep(time.Second)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.log.InfoContext(ctx, "Seats-released consumer started", "topics", c.topics)
}

func (c *ReleaseConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.group.Close()
	c.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type releaseGroupHandler struct {
	handler ReleaseHandler
	log     *logger.Logger
}

func (h *releaseGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *releaseGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *releaseGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			session.MarkMessage(message, "")
			h.process(session.Context(), message)

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *releaseGroupHandler) process(ctx context.Context, message *sarama.ConsumerMessage) {
	msg, err := ParseSeatsReleased(message.Value)
	if err != nil {
		h.log.WarnContext(ctx, "Dropping malformed seats-released message",
			"partition", message.Partition, "offset", message.Offset, "error", err)
		return
	}

	if err := h.handler.HandleSeatsReleased(ctx, msg); err != nil {
		h.log.ErrorContext(ctx, "Seats-released handler failed",
			"event_id", msg.EventID, "booking_id", msg.BookingID, "error", err)
	}
}
