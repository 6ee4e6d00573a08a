package waitlist

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"nexusems/internal/shared/idgen"
	"nexusems/pkg/apperrors"
	"nexusems/pkg/cache"
	"nexusems/pkg/logger"
	"nexusems/pkg/metrics"
)

// EventDirectory resolves event names for joins and notices
type EventDirectory interface {
	EventName(ctx context.Context, id string) (string, error)
}

// Mailer delivers the seat-available notice
type Mailer interface {
	SendSeatAvailable(ctx context.Context, email, name, eventID, eventName string) error
}

type Service interface {
	Join(ctx context.Context, req JoinRequest) (*Entry, error)
	GetEntry(ctx context.Context, id string) (*Entry, error)
	ListEntries(ctx context.Context, eventID, status string) ([]Entry, error)
	UpdateStatus(ctx context.Context, id, status string) (*Entry, error)
	Remove(ctx context.Context, id string) error

	// NotifyEvent emails every waiting entry of the event and marks it notified.
	// A failed entry is recorded in the result and stays waiting.
	NotifyEvent(ctx context.Context, eventID string) (*NotifyResult, error)
}

// ServiceConfig contains configuration for the waitlist service
type ServiceConfig struct {
	SweepLockTTL time.Duration
	Now          func() time.Time
	RandSuffix   func() int
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		SweepLockTTL: 2 * time.Minute,
		Now:          time.Now,
		RandSuffix:   func() int { return rand.IntN(1000) },
	}
}

type service struct {
	repo   Repository
	events EventDirectory
	mailer Mailer
	locker cache.Locker
	config ServiceConfig
	log    *logger.Logger
}

// NewService creates a new waitlist service. A nil locker disables sweep locking.
func NewService(repo Repository, events EventDirectory, mailer Mailer, locker cache.Locker, config ServiceConfig, log *logger.Logger) Service {
	defaults := DefaultServiceConfig()
	if config.SweepLockTTL <= 0 {
		config.SweepLockTTL = defaults.SweepLockTTL
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}
	if config.RandSuffix == nil {
		config.RandSuffix = defaults.RandSuffix
	}
	if locker == nil {
		locker = cache.NoopLocker()
	}

	return &service{
		repo:   repo,
		events: events,
		mailer: mailer,
		locker: locker,
		config: config,
		log:    log.WithComponent("waitlist"),
	}
}

func (s *service) Join(ctx context.Context, req JoinRequest) (*Entry, error) {
	eventID := strings.TrimSpace(req.EventID)
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, apperrors.FieldValidation("name", "name is required")
	}
	if email == "" {
		return nil, apperrors.FieldValidation("email", "email is required")
	}

	if _, err := s.events.EventName(ctx, eventID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEventEmail(ctx, eventID, email)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.Conflict("%s is already on the waitlist for event %s", email, eventID)
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	entry := &Entry{
		WaitlistID: idgen.Waitlist(s.config.Now(), s.config.RandSuffix()),
		EventID:    eventID,
		Name:       name,
		Email:      email,
		Contact:    strings.TrimSpace(req.Contact),
		Status:     StatusWaiting,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Joined waitlist", "waitlist_id", entry.WaitlistID, "event_id", eventID)
	return entry, nil
}

func (s *service) GetEntry(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListEntries(ctx context.Context, eventID, status string) ([]Entry, error) {
	filter := Status(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && !filter.IsValid() {
		return nil, apperrors.FieldValidation("status", "status must be one of waiting, notified, registered")
	}
	return s.repo.ListByEvent(ctx, eventID, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*Entry, error) {
	next := Status(strings.ToLower(strings.TrimSpace(status)))
	if !next.IsValid() {
		return nil, apperrors.FieldValidation("status", "status must be one of waiting, notified, registered")
	}
	return s.repo.UpdateStatus(ctx, id, next)
}

func (s *service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) NotifyEvent(ctx context.Context, eventID string) (*NotifyResult, error) {
	eventName, err := s.events.EventName(ctx, eventID)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, "waitlist:sweep:"+eventID, s.config.SweepLockTTL)
	if err != nil {
		if errors.Is(err, cache.ErrLocked) {
			return nil, apperrors.Conflict("a waitlist notification for event %s is already running", eventID)
		}
		return nil, apperrors.Internal("failed to lock waitlist sweep", err)
	}
	defer release()

	entries, err := s.repo.ListByEvent(ctx, eventID, StatusWaiting)
	if err != nil {
		return nil, err
	}

	result := &NotifyResult{
		EventID:     eventID,
		NotifiedIDs: []string{},
		Failures:    []NotifyFailure{},
	}
	for _, entry := range entries {
		result.Attempted++
		if err := s.notifyOne(ctx, entry, eventName); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, NotifyFailure{
				WaitlistID: entry.WaitlistID,
				Email:      entry.Email,
				Error:      err.Error(),
			})
			continue
		}
		result.Succeeded++
		result.NotifiedIDs = append(result.NotifiedIDs, entry.WaitlistID)
	}

	metrics.RecordWaitlistNotifications(result.Succeeded, result.Failed)
	s.log.LogWaitlistSweep(ctx, eventID, result.Attempted, result.Succeeded)
	return result, nil
}

func (s *service) notifyOne(ctx context.Context, entry Entry, eventName string) error {
	if err := s.mailer.SendSeatAvailable(ctx, entry.Email, entry.Name, entry.EventID, eventName); err != nil {
		s.log.WarnContext(ctx, "Waitlist notice failed", "waitlist_id", entry.WaitlistID, "error", err)
		return err
	}
	return s.repo.MarkNotified(ctx, entry.WaitlistID, s.config.Now())
}
