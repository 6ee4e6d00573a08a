package discounts

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveDiscountRequest creates a discount, or replaces it when DiscountID exists
type SaveDiscountRequest struct {
	DiscountID    string          `json:"discount_id"`
	Name          string          `json:"name" binding:"required,max=64"`
	Percentage    decimal.Decimal `json:"percentage"`
	TicketTypeIDs []string        `json:"ticketTypeIds"`
	ExpiryDate    time.Time       `json:"expiry_date" binding:"required"`
	EventID       *string         `json:"event_id"`
}

// SeatRef is the part of a seat selection the resolver looks at
type SeatRef struct {
	TicketID   string          `json:"ticket_id" binding:"required"`
	TicketType string          `json:"ticket_type"`
	Price      decimal.Decimal `json:"price"`
}

type ApplyRequest struct {
	Code    string    `json:"code" binding:"required"`
	EventID string    `json:"event_id"`
	Seats   []SeatRef `json:"seats" binding:"required,min=1,dive"`
}
