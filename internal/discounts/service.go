package discounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"nexusems/pkg/apperrors"
	"nexusems/pkg/cache"
	"nexusems/pkg/logger"
)

const listCacheKey = "discounts:all"

type Service interface {
	// Save upserts by discount id. created is false when an existing discount was replaced.
	Save(ctx context.Context, req SaveDiscountRequest) (d *Discount, created bool, err error)
	List(ctx context.Context) ([]Discount, error)
	Get(ctx context.Context, id string) (*Discount, error)
	Delete(ctx context.Context, id string) error

	// Quote resolves code against the current discounts for a seat selection
	Quote(ctx context.Context, code, eventID string, seats []SeatRef) (*Quote, error)
}

type ServiceConfig struct {
	CacheTTL time.Duration
	Now      func() time.Time
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{CacheTTL: 10 * time.Minute, Now: time.Now}
}

type service struct {
	repo  Repository
	cache cache.Service
	cfg   ServiceConfig
	log   *logger.Logger
}

// NewService builds the discount service. cacheSvc may be nil.
func NewService(repo Repository, cacheSvc cache.Service, cfg ServiceConfig, log *logger.Logger) Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{repo: repo, cache: cacheSvc, cfg: cfg, log: log.WithComponent("discounts")}
}

func (s *service) Save(ctx context.Context, req SaveDiscountRequest) (*Discount, bool, error) {
	d, err := s.fromRequest(req)
	if err != nil {
		return nil, false, err
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, false, err
	}
	if clash := findNameClash(all, d); clash != nil {
		return nil, false, apperrors.Conflict("promo code %s is already used by %s", d.Name, clash.DiscountID)
	}

	created := true
	if d.DiscountID != "" {
		if _, err := s.repo.GetByID(ctx, d.DiscountID); err == nil {
			created = false
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, err
		}
	}

	if created {
		err = s.repo.Create(ctx, d)
	} else {
		err = s.repo.Update(ctx, d)
	}
	if err != nil {
		return nil, false, err
	}

	s.invalidate(ctx)
	s.log.InfoContext(ctx, "Discount saved", "discount_id", d.DiscountID, "created", created)
	return d, created, nil
}

func (s *service) fromRequest(req SaveDiscountRequest) (*Discount, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.FieldValidation("name", "name is required")
	}
	if req.Percentage.IsNegative() || req.Percentage.GreaterThan(hundred) {
		return nil, apperrors.FieldValidation("percentage", "percentage must be between 0 and 100")
	}
	if req.ExpiryDate.IsZero() {
		return nil, apperrors.FieldValidation("expiry_date", "expiry_date is required")
	}

	types := make(StringList, 0, len(req.TicketTypeIDs))
	for _, t := range req.TicketTypeIDs {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}

	var eventID *string
	if req.EventID != nil && strings.TrimSpace(*req.EventID) != "" {
		id := strings.TrimSpace(*req.EventID)
		eventID = &id
	}

	return &Discount{
		DiscountID:    strings.TrimSpace(req.DiscountID),
		Name:          name,
		Percentage:    req.Percentage.Round(2),
		TicketTypeIDs: types,
		ExpiryDate:    req.ExpiryDate.UTC(),
		EventID:       eventID,
	}, nil
}

// findNameClash returns another discount whose code would shadow d for some event
func findNameClash(all []Discount, d *Discount) *Discount {
	for i := range all {
		other := &all[i]
		if other.DiscountID == d.DiscountID || !strings.EqualFold(other.Name, d.Name) {
			continue
		}
		if other.EventID == nil || d.EventID == nil || *other.EventID == *d.EventID {
			return other
		}
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]Discount, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}

	var list []Discount
	err := s.cache.GetOrSet(ctx, listCacheKey, s.cfg.CacheTTL, func() (interface{}, error) {
		return s.repo.List(ctx)
	}, &list)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id string) (*Discount, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.InfoContext(ctx, "Discount deleted", "discount_id", id)
	return nil
}

func (s *service) Quote(ctx context.Context, code, eventID string, seats []SeatRef) (*Quote, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(code, eventID, seats, all, s.cfg.Now())
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate discount cache", "error", err)
	}
}

