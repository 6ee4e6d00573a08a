package notifications

import (
	"context"
	"errors"
	"testing"

	"nexusems/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSeatsReleased(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		msg, err := ParseSeatsReleased(val)
		if err != nil {
			return err
		}
		if msg.EventID != "E-001" || msg.BookingID != "BK-1760000000123" || len(msg.TicketIDs) != 2 {
			return errors.New("unexpected payload")
		}
		if msg.MessageID == "" {
			return errors.New("missing message id")
		}
		return nil
	})

	publisher := NewKafkaReleasePublisherWithProducer(producer, "seats-released", logger.Discard())
	err := publisher.PublishSeatsReleased(context.Background(), "E-001", "BK-1760000000123", []string{"T-1", "T-2"})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublishSeatsReleasedFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaReleasePublisherWithProducer(producer, "seats-released", logger.Discard())
	err := publisher.PublishSeatsReleased(context.Background(), "E-001", "BK-1", []string{"T-1"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestParseSeatsReleased(t *testing.T) {
	_, err := ParseSeatsReleased([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseSeatsReleased([]byte(`{"booking_id":"BK-1"}`))
	assert.Error(t, err)

	msg, err := ParseSeatsReleased([]byte(`{"event_id":"E-002","booking_id":"BK-1","ticket_ids":["T-9"]}`))
	require.NoError(t, err)
	assert.Equal(t, "E-002", msg.EventID)
	assert.Equal(t, []string{"T-9"}, msg.TicketIDs)
}
