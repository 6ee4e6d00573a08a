package tickets

import (
	"context"
	"fmt"
	"strings"

	"nexusems/pkg/apperrors"
	"nexusems/pkg/logger"
)

// EventDirectory resolves events without importing the events package
type EventDirectory interface {
	EventName(ctx context.Context, id string) (string, error)
}

type Service interface {
	CreateLayout(ctx context.Context, eventID string, req CreateLayoutRequest) ([]Ticket, error)
	ListByEvent(ctx context.Context, eventID string, status Status) ([]Ticket, error)
}

type service struct {
	repo   Repository
	events EventDirectory
	log    *logger.Logger
}

func NewService(repo Repository, events EventDirectory, log *logger.Logger) Service {
	return &service{repo: repo, events: events, log: log.WithComponent("tickets")}
}

func (s *service) CreateLayout(ctx context.Context, eventID string, req CreateLayoutRequest) ([]Ticket, error) {
	if _, err := s.events.EventName(ctx, eventID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.Seats))
	tickets := make([]Ticket, 0, len(req.Seats))
	for i, seat := range req.Seats {
		if seat.Price.IsNegative() {
			return nil, apperrors.FieldValidation(fmt.Sprintf("seats[%d].price", i), "price must not be negative")
		}
		key := fmt.Sprintf("%s|%s|%d", strings.ToUpper(seat.Layout), strings.ToUpper(seat.Row), seat.SeatNo)
		if _, dup := seen[key]; dup {
			return nil, apperrors.Validation("seat %s-%s%d appears more than once", seat.Layout, seat.Row, seat.SeatNo)
		}
		seen[key] = struct{}{}

		tickets = append(tickets, Ticket{
			EventID:    eventID,
			Layout:     strings.TrimSpace(seat.Layout),
			Row:        strings.TrimSpace(seat.Row),
			SeatNo:     seat.SeatNo,
			TicketType: strings.TrimSpace(seat.TicketType),
			Price:      seat.Price.Round(2),
		})
	}

	if err := s.repo.CreateBatch(ctx, tickets); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Seat layout finalized", "event_id", eventID, "tickets", len(tickets))
	return tickets, nil
}

func (s *service) ListByEvent(ctx context.Context, eventID string, status Status) ([]Ticket, error) {
	if status != "" && !status.IsValid() {
		return nil, apperrors.FieldValidation("status", "status must be available or booked")
	}
	return s.repo.ListByEvent(ctx, eventID, status)
}
