package notifications

import (
	"context"
	"testing"
	"time"

	"nexusems/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncDispatcherDelivers(t *testing.T) {
	received := make(chan SeatsReleased, 1)
	d := NewAsyncDispatcher(ReleaseHandlerFunc(func(ctx context.Context, msg SeatsReleased) error {
		received <- msg
		return nil
	}), 4, logger.Discard())

	d.Start(context.Background())
	defer d.Stop()

	require.NoError(t, d.PublishSeatsReleased(context.Background(), "E-001", "BK-1", []string{"T-1", "T-2"}))

	select {
	case msg := <-received:
		assert.Equal(t, "E-001", msg.EventID)
		assert.Equal(t, "BK-1", msg.BookingID)
		assert.Equal(t, []string{"T-1", "T-2"}, msg.TicketIDs)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}
}

func TestAsyncDispatcherDropsWhenFull(t *testing.T) {
	d := NewAsyncDispatcher(ReleaseHandlerFunc(func(context.Context, SeatsReleased) error { return nil }), 1, logger.Discard())

	require.NoError(t, d.PublishSeatsReleased(context.Background(), "E-001", "BK-1", nil))
	assert.ErrorIs(t, d.PublishSeatsReleased(context.Background(), "E-001", "BK-2", nil), ErrQueueFull)
}

func TestAsyncDispatcherRejectsAfterStop(t *testing.T) {
	d := NewAsyncDispatcher(ReleaseHandlerFunc(func(context.Context, SeatsReleased) error { return nil }), 1, logger.Discard())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	assert.ErrorIs(t, d.PublishSeatsReleased(context.Background(), "E-001", "BK-1", nil), ErrDispatcherStopped)
}
