package events

import (
	"context"

	"nexusems/internal/shared/idgen"
	"nexusems/pkg/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]Event, error)
	ListIDsByOrganizer(ctx context.Context, organizerID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create assigns the next E-### id from the ids present inside the same transaction
func (r *repository) Create(ctx context.Context, event *Event) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&Event{}).Pluck("event_id", &ids).Error; err != nil {
			return err
		}
		event.EventID = idgen.Event(ids)
		return tx.Create(event).Error
	})
	return apperrors.FromDB(err, "event", event.EventID)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Event, error) {
	var event Event
	if err := r.db.WithContext(ctx).Where("event_id = ?", id).First(&event).Error; err != nil {
		return nil, apperrors.FromDB(err, "event", id)
	}
	return &event, nil
}

func (r *repository) ListByOrganizer(ctx context.Context, organizerID string) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("starts_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "event", organizerID)
	}
	return events, nil
}

func (r *repository) ListIDsByOrganizer(ctx context.Context, organizerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&Event{}).
		Where("organizer_id = ?", organizerID).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "event", organizerID)
	}
	return ids, nil
}
