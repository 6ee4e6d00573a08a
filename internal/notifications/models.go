package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeatsReleased is emitted after a cancellation commits
type SeatsReleased struct {
	MessageID  string    `json:"message_id"`
	EventID    string    `json:"event_id"`
	BookingID  string    `json:"booking_id"`
	TicketIDs  []string  `json:"ticket_ids"`
	ReleasedAt time.Time `json:"released_at"`
}

func NewSeatsReleased(eventID, bookingID string, ticketIDs []string) SeatsReleased {
	return SeatsReleased{
		MessageID:  uuid.NewString(),
		EventID:    eventID,
		BookingID:  bookingID,
		TicketIDs:  ticketIDs,
		ReleasedAt: time.Now().UTC(),
	}
}

func (m SeatsReleased) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ParseSeatsReleased decodes a message and checks it names an event
func ParseSeatsReleased(data []byte) (SeatsReleased, error) {
	var m SeatsReleased
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("failed to unmarshal seats-released message: %w", err)
	}
	if m.EventID == "" {
		return m, errors.New("seats-released message without event_id")
	}
	return m, nil
}

// ReleaseHandler reacts to freed seats, normally by running the waitlist notifier
type ReleaseHandler interface {
	HandleSeatsReleased(ctx context.Context, msg SeatsReleased) error
}

type ReleaseHandlerFunc func(ctx context.Context, msg SeatsReleased) error

func (f ReleaseHandlerFunc) HandleSeatsReleased(ctx context.Context, msg SeatsReleased) error {
	return f(ctx, msg)
}
