package notifications

import (
	"context"
	"errors"
	"sync"

	"nexusems/pkg/logger"
	"nexusems/pkg/metrics"
)

var (
	ErrQueueFull         = errors.New("release queue is full")
	ErrDispatcherStopped = errors.New("release dispatcher is stopped")
)

// AsyncDispatcher is the in-process stand-in for Kafka: a bounded queue drained
// by one worker. A full queue drops the message.
type AsyncDispatcher struct {
	handler ReleaseHandler
	queue   chan SeatsReleased
	log     *logger.Logger

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewAsyncDispatcher(handler ReleaseHandler, size int, log *logger.Logger) *AsyncDispatcher {
	if size <= 0 {
		size = 1
	}
	return &AsyncDispatcher{
		handler: handler,
		queue:   make(chan SeatsReleased, size),
		log:     log.WithComponent("release-dispatcher"),
		done:    make(chan struct{}),
	}
}

// Start launches the worker. Handlers run with ctx.
func (d *AsyncDispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case msg := <-d.queue:
				d.handle(ctx, msg)
			case <-d.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the worker. Queued messages that were not picked up are dropped.
func (d *AsyncDispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
	d.wg.Wait()
}

func (d *AsyncDispatcher) PublishSeatsReleased(ctx context.Context, eventID, bookingID string, ticketIDs []string) (err error) {
	defer func() { metrics.RecordRelease("inprocess", err) }()

	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}

	select {
	case d.queue <- NewSeatsReleased(eventID, bookingID, ticketIDs):
		return nil
	default:
		d.log.WarnContext(ctx, "Dropping seats-released message", "event_id", eventID, "booking_id", bookingID)
		return ErrQueueFull
	}
}

func (d *AsyncDispatcher) handle(ctx context.Context, msg SeatsReleased) {
	if err := d.handler.HandleSeatsReleased(ctx, msg); err != nil {
		d.log.ErrorContext(ctx, "Seats-released handler failed",
			"event_id", msg.EventID, "booking_id", msg.BookingID, "error", err)
	}
}
