package bookings

import "github.com/shopspring/decimal"

// SeatSelection is one selected seat. Only TicketID is required; the rest is
// filled from the ticket store, and a non-zero Price must match it.
type SeatSelection struct {
	TicketID   string          `json:"ticket_id" binding:"required"`
	Section    string          `json:"section"`
	Row        string          `json:"row"`
	SeatNo     int             `json:"seat_no"`
	TicketType string          `json:"ticket_type"`
	Price      decimal.Decimal `json:"price"`
}

// CreateBookingRequest carries the client's figures so they can be checked
// against the recomputed ones.
type CreateBookingRequest struct {
	BookingID     string           `json:"booking_id"`
	EventID       string           `json:"event_id" binding:"required"`
	EventName     string           `json:"event_name"`
	CustomerName  string           `json:"customer_name" binding:"max=255"`
	CustomerEmail string           `json:"customer_email" binding:"omitempty,email"`
	Seats         []SeatSelection  `json:"seats" binding:"required,min=1,dive"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	Discount      *decimal.Decimal `json:"discount"`
	Total         *decimal.Decimal `json:"total"`
	PromoCode     *string          `json:"promo_code"`
}

type CustomerRequest struct {
	CustomerName  string `json:"customer_name" binding:"required,max=255"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

type PaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,max=50"`
	PaymentID     string `json:"payment_id" binding:"required,max=255"`
}

type ListQuery struct {
	Status string `form:"status"`
}
