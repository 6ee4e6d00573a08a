package discounts

import (
	"context"

	"nexusems/internal/shared/idgen"
	"nexusems/pkg/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	// Create inserts d, assigning the next D-### id when DiscountID is empty
	Create(ctx context.Context, d *Discount) error
	Update(ctx context.Context, d *Discount) error
	GetByID(ctx context.Context, id string) (*Discount, error)
	List(ctx context.Context) ([]Discount, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Discount) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.DiscountID == "" {
			// Scan every id rather than counting rows; deletions leave gaps.
			var ids []string
			if err := tx.Model(&Discount{}).Pluck("discount_id", &ids).Error; err != nil {
				return err
			}
			d.DiscountID = idgen.Discount(ids)
		}
		return tx.Create(d).Error
	})
	return apperrors.FromDB(err, "discount", d.DiscountID)
}

func (r *repository) Update(ctx context.Context, d *Discount) error {
	res := r.db.WithContext(ctx).Model(&Discount{}).
		Where("discount_id = ?", d.DiscountID).
		Updates(map[string]interface{}{
			"name":            d.Name,
			"percentage":      d.Percentage,
			"ticket_type_ids": d.TicketTypeIDs,
			"expiry_date":     d.ExpiryDate,
			"event_id":        d.EventID,
		})
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "discount", d.DiscountID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("discount", d.DiscountID)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Discount, error) {
	var d Discount
	if err := r.db.WithContext(ctx).Where("discount_id = ?", id).First(&d).Error; err != nil {
		return nil, apperrors.FromDB(err, "discount", id)
	}
	return &d, nil
}

func (r *repository) List(ctx context.Context) ([]Discount, error) {
	var list []Discount
	if err := r.db.WithContext(ctx).Order("discount_id ASC").Find(&list).Error; err != nil {
		return nil, apperrors.FromDB(err, "discount", "")
	}
	return list, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("discount_id = ?", id).Delete(&Discount{})
	if res.Error != nil {
		return apperrors.FromDB(res.Error, "discount", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("discount", id)
	}
	return nil
}
