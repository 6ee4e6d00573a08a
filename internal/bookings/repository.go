package bookings

import (
	"context"
	"time"

	"nexusems/internal/tickets"
	"nexusems/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MsgSeatsUnavailable is returned when payment loses the race for a seat
const MsgSeatsUnavailable = "one or more seats are no longer available"

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context) ([]Booking, error)

	// ListByEvents returns bookings for any of eventIDs, newest first. An empty
	// status matches every status.
	ListByEvents(ctx context.Context, eventIDs []string, status Status) ([]Booking, error)

	UpdateCustomer(ctx context.Context, id, name, email string) (*Booking, error)

	// MarkPaid reserves every referenced ticket and marks the booking paid in one
	// transaction. Fails with Conflict when the booking is already paid or a
	// ticket is held elsewhere.
	MarkPaid(ctx context.Context, id, method, paymentID string) (*Booking, error)

	// DeleteAndRelease removes the booking and frees the tickets it holds in one
	// transaction. It returns the deleted booking and the number of released tickets.
	DeleteAndRelease(ctx context.Context, id string) (*Booking, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Create(booking).Error
	return apperrors.FromDB(err, "booking", booking.BookingID)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	booking, err := findBooking(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, apperrors.FromDB(err, "booking", id)
	}
	return booking, nil
}

func (r *repository) List(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	db := r.db.WithContext(ctx)
	if err := db.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, apperrors.FromDB(err, "booking", "")
	}
	if err := attachSeats(db, bookings); err != nil {
		return nil, apperrors.FromDB(err, "booking", "")
	}
	return bookings, nil
}

func (r *repository) ListByEvents(ctx context.Context, eventIDs []string, status Status) ([]Booking, error) {
	bookings := []Booking{}
	if len(eventIDs) == 0 {
		return bookings, nil
	}

	db := r.db.WithContext(ctx)
	query := db.Where("event_id IN ?", eventIDs)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, apperrors.FromDB(err, "booking", "")
	}
	if err := attachSeats(db, bookings); err != nil {
		return nil, apperrors.FromDB(err, "booking", "")
	}
	return bookings, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, id, name, email string) (*Booking, error) {
	res := r.db.WithContext(ctx).Model(&Booking{}).
		Where("booking_id = ?", id).
		Updates(map[string]interface{}{
			"customer_name":  name,
			"customer_email": email,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, apperrors.FromDB(res.Error, "booking", id)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("booking", id)
	}
	return r.GetByID(ctx, id)
}

func (r *repository) MarkPaid(ctx context.Context, id, method, paymentID string) (*Booking, error) {
	var booking *Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := findBooking(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}
		if !b.Status.CanBePaid() {
			return apperrors.Conflict("booking %s is already paid", id)
		}

		ids := b.TicketIDs()
		reserved, err := tickets.Reserve(tx, b.BookingID, ids)
		if err != nil {
			return err
		}
		if reserved != int64(len(ids)) {
			return apperrors.Conflict(MsgSeatsUnavailable)
		}

		now := time.Now()
		err = tx.Model(&Booking{}).
			Where("booking_id = ?", id).
			Updates(map[string]interface{}{
				"status":         StatusPaid,
				"payment_method": method,
				"payment_id":     paymentID,
				"updated_at":     now,
			}).Error
		if err != nil {
			return err
		}

		b.Status = StatusPaid
		b.PaymentMethod = method
		b.PaymentID = paymentID
		b.UpdatedAt = now
		booking = b
		return nil
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "booking", id)
	}
	return booking, nil
}

func (r *repository) DeleteAndRelease(ctx context.Context, id string) (*Booking, int64, error) {
	var (
		booking  *Booking
		released int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := findBooking(tx, id)
		if err != nil {
			return err
		}

		released, err = tickets.Release(tx, b.BookingID, b.TicketIDs())
		if err != nil {
			return err
		}

		if err := tx.Where("booking_id = ?", id).Delete(&Seat{}).Error; err != nil {
			return err
		}
		res := tx.Where("booking_id = ?", id).Delete(&Booking{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, 0, apperrors.FromDB(err, "booking", id)
	}
	return booking, released, nil
}

// findBooking loads a booking and its seats in position order
func findBooking(db *gorm.DB, id string) (*Booking, error) {
	var b Booking
	if err := db.Where("booking_id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{NewDB: true}).
		Where("booking_id = ?", id).
		Order("position ASC").
		Find(&b.Seats).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// attachSeats loads seats for a page of bookings with one query
func attachSeats(db *gorm.DB, bookings []Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, len(bookings))
	index := make(map[string]int, len(bookings))
	for i := range bookings {
		ids[i] = bookings[i].BookingID
		index[bookings[i].BookingID] = i
	}

	var seats []Seat
	if err := db.Where("booking_id IN ?", ids).Order("booking_id, position ASC").Find(&seats).Error; err != nil {
		return err
	}
	for _, s := range seats {
		if i, ok := index[s.BookingID]; ok {
			bookings[i].Seats = append(bookings[i].Seats, s)
		}
	}
	return nil
}
