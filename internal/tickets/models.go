package tickets

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

func (s Status) IsValid() bool {
	return s == StatusAvailable || s == StatusBooked
}

// Ticket is one purchasable seat. BookingID is set while a paid booking holds it,
// so Status is booked exactly when BookingID is non-nil.
type Ticket struct {
	TicketID   string          `gorm:"column:ticket_id;primaryKey;size:16" json:"ticket_id"`
	EventID    string          `gorm:"size:16;not null;index:idx_tickets_event_status,priority:1" json:"event_id"`
	Layout     string          `gorm:"size:100;not null" json:"layout"`
	Row        string          `gorm:"size:20;not null" json:"row"`
	SeatNo     int             `gorm:"not null" json:"seat_no"`
	TicketType string          `gorm:"size:100;not null" json:"ticket_type"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Status     Status          `gorm:"type:varchar(16);not null;default:'available';index:idx_tickets_event_status,priority:2" json:"status"`
	BookingID  *string         `gorm:"size:32;index" json:"booking_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}
