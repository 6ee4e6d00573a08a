package bookings

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanBePaid reports whether payment may still be attached. paid never goes back to pending.
func (s Status) CanBePaid() bool {
	return s == StatusPending
}

// Booking is a customer's seat selection for one event. Cancelled bookings are
// deleted, never kept with a status.
type Booking struct {
	BookingID     string          `gorm:"column:booking_id;primaryKey;size:32" json:"booking_id"`
	EventID       string          `gorm:"size:16;not null;index" json:"event_id"`
	EventName     string          `gorm:"size:255" json:"event_name"`
	CustomerName  string          `gorm:"size:255" json:"customer_name"`
	CustomerEmail string          `gorm:"size:255" json:"customer_email"`
	Seats         []Seat          `gorm:"foreignKey:BookingID;references:BookingID;constraint:OnDelete:CASCADE" json:"seats"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	PromoCode     *string         `gorm:"size:64" json:"promo_code"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	PaymentID     string          `gorm:"size:255" json:"payment_id"`
	Status        Status          `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Seat is one entry of a booking's ordered seat list
type Seat struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	BookingID  string          `gorm:"size:32;not null;index:idx_booking_seats_position,priority:1" json:"-"`
	Position   int             `gorm:"not null;index:idx_booking_seats_position,priority:2" json:"-"`
	TicketID   string          `gorm:"size:16;not null;index" json:"ticket_id"`
	Section    string          `gorm:"size:100" json:"section"`
	Row        string          `gorm:"size:20" json:"row"`
	SeatNo     int             `json:"seat_no"`
	TicketType string          `gorm:"size:100" json:"ticket_type"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (Seat) TableName() string {
	return "booking_seats"
}

// TicketIDs lists the referenced tickets in seat order
func (b *Booking) TicketIDs() []string {
	ids := make([]string, len(b.Seats))
	for i, s := range b.Seats {
		ids[i] = s.TicketID
	}
	return ids
}
