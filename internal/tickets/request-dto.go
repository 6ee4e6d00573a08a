package tickets

import "github.com/shopspring/decimal"

// CreateLayoutRequest finalizes an event's seat layout
type CreateLayoutRequest struct {
	Seats []SeatSpec `json:"seats" binding:"required,min=1,dive"`
}

type SeatSpec struct {
	Layout     string          `json:"layout" binding:"required"`
	Row        string          `json:"row" binding:"required"`
	SeatNo     int             `json:"seat_no" binding:"required,min=1"`
	TicketType string          `json:"ticket_type" binding:"required"`
	Price      decimal.Decimal `json:"price"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=available booked"`
}
