package tickets

import (
	"context"

	"nexusems/internal/shared/idgen"
	"nexusems/pkg/apperrors"

	"gorm.io/gorm"
)

const insertBatchSize = 200

type Repository interface {
	// CreateBatch allocates a contiguous T-### range and inserts tickets in one transaction
	CreateBatch(ctx context.Context, tickets []Ticket) error
	ListByEvent(ctx context.Context, eventID string, status Status) ([]Ticket, error)
	GetByIDs(ctx context.Context, ids []string) ([]Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(ctx context.Context, tickets []Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&Ticket{}).Pluck("ticket_id", &existing).Error; err != nil {
			return err
		}
		ids := idgen.TicketBatch(existing, len(tickets))
		for i := range tickets {
			tickets[i].TicketID = ids[i]
			tickets[i].Status = StatusAvailable
			tickets[i].BookingID = nil
		}
		return tx.CreateInBatches(tickets, insertBatchSize).Error
	})
	return apperrors.FromDB(err, "ticket", tickets[0].EventID)
}

func (r *repository) ListByEvent(ctx context.Context, eventID string, status Status) ([]Ticket, error) {
	query := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tickets []Ticket
	if err := query.Order(`layout ASC, "row" ASC, seat_no ASC`).Find(&tickets).Error; err != nil {
		return nil, apperrors.FromDB(err, "ticket", eventID)
	}
	return tickets, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]Ticket, error) {
	var tickets []Ticket
	if len(ids) == 0 {
		return tickets, nil
	}
	if err := r.db.WithContext(ctx).Where("ticket_id IN ?", ids).Find(&tickets).Error; err != nil {
		return nil, apperrors.FromDB(err, "ticket", "")
	}
	return tickets, nil
}

// Reserve flips the listed tickets from available to booked for bookingID inside tx.
// Tickets already booked are left alone; callers compare the returned count with
// len(ticketIDs) to detect a lost race.
func Reserve(tx *gorm.DB, bookingID string, ticketIDs []string) (int64, error) {
	if len(ticketIDs) == 0 {
		return 0, nil
	}
	res := tx.Model(&Ticket{}).
		Where("ticket_id IN ? AND status = ?", ticketIDs, StatusAvailable).
		Updates(map[string]interface{}{"status": StatusBooked, "booking_id": bookingID})
	return res.RowsAffected, res.Error
}

// Release returns the listed tickets held by bookingID to available inside tx
func Release(tx *gorm.DB, bookingID string, ticketIDs []string) (int64, error) {
	if len(ticketIDs) == 0 {
		return 0, nil
	}
	res := tx.Model(&Ticket{}).
		Where("ticket_id IN ? AND booking_id = ?", ticketIDs, bookingID).
		Updates(map[string]interface{}{"status": StatusAvailable, "booking_id": nil})
	return res.RowsAffected, res.Error
}
