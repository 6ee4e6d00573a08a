package events

import (
	"context"
	"strings"

	"nexusems/pkg/apperrors"
	"nexusems/pkg/logger"
)

type Service interface {
	CreateEvent(ctx context.Context, organizerID string, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListOrganizerEvents(ctx context.Context, organizerID string) ([]Event, error)

	// EventIDsForOrganizer scopes organizer booking queries
	EventIDsForOrganizer(ctx context.Context, organizerID string) ([]string, error)
	// EventName returns the display name, or NotFound for unknown ids
	EventName(ctx context.Context, id string) (string, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log.WithComponent("events")}
}

func (s *service) CreateEvent(ctx context.Context, organizerID string, req CreateEventRequest) (*Event, error) {
	organizerID = strings.TrimSpace(organizerID)
	if organizerID == "" {
		return nil, apperrors.FieldValidation("organizer_id", "organizer_id is required")
	}

	event := &Event{
		OrganizerID: organizerID,
		Name:        strings.TrimSpace(req.Name),
		Venue:       strings.TrimSpace(req.Venue),
		StartsAt:    req.StartsAt.UTC(),
	}
	if event.Name == "" {
		return nil, apperrors.FieldValidation("name", "name is required")
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Event Created", "event_id", event.EventID, "organizer_id", organizerID)
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id string) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrganizerEvents(ctx context.Context, organizerID string) ([]Event, error) {
	return s.repo.ListByOrganizer(ctx, organizerID)
}

func (s *service) EventIDsForOrganizer(ctx context.Context, organizerID string) ([]string, error) {
	return s.repo.ListIDsByOrganizer(ctx, organizerID)
}

func (s *service) EventName(ctx context.Context, id string) (string, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return event.Name, nil
}
