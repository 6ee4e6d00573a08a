package waitlist

import (
	"context"
	"time"

	"nexusems/pkg/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	// FindByEventEmail returns NotFound when the pair has no entry
	FindByEventEmail(ctx context.Context, eventID, email string) (*Entry, error)
	// ListByEvent returns entries oldest first. An empty status matches all.
	ListByEvent(ctx context.Context, eventID string, status Status) ([]Entry, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Entry, error)
	// MarkNotified moves a waiting entry to notified
	MarkNotified(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	return apperrors.FromDB(err, "waitlist entry", entry.WaitlistID)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Entry, error) {
	var entry Entry
	if err := r.db.WithContext(ctx).Where("waitlist_id = ?", id).First(&entry).Error; err != nil {
		return nil, apperrors.FromDB(err, "waitlist entry", id)
	}
	return &entry, nil
}

func (r *repository) FindByEventEmail(ctx context.Context, eventID, email string) (*Entry, error) {
	var entry Entry
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		First(&entry).Error
	if err != nil {
		return nil, apperrors.FromDB(err, "waitlist entry", eventID+"/"+email)
	}
	return &entry, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID string, status Status) ([]Entry, error) {
	entries := []Entry{}
	query := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, apperrors.FromDB(err, "waitlist entry", "")
	}
	return entries, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Entry, error) {
	updates := map[string]interface{}{"status": status, "updated_at": time.Now()}
	if status == StatusNotified {
		updates["notified_at"] = time.Now()
	}

	res := r.db.WithContext(ctx).Model(&Entry{}).Where("waitlist_id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, apperrors.FromDB(res.Error, "waitlist entry", id)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("waitlist entry", id)
	}
	return r.GetByID(ctx, id)
}

func (r *repository) MarkNotified(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&Entry{}).
		Where("waitlist_id = ? AND status = ?", id, StatusWaiting).
		Updates(map[string]interface{}{"status": StatusNotified, "notified_at": at, "updated_at": at})
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "waitlist entry", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("waitlist entry %s is no longer waiting", id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("waitlist_id = ?", id).Delete(&Entry{})
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "waitlist entry", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("waitlist entry", id)
	}
	return nil
}
