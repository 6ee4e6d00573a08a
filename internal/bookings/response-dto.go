package bookings

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id"`
}

type BookingResponse struct {
	Success bool     `json:"success"`
	Booking *Booking `json:"booking"`
}

// AttendeeResponse is one row of an event's attendee listing
type AttendeeResponse struct {
	BookingID     string          `json:"booking_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	SeatCount     int             `json:"seat_count"`
	Seats         string          `json:"seats"`
	Total         decimal.Decimal `json:"total"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
