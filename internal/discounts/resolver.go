package discounts

import (
	"slices"
	"strings"
	"time"

	"nexusems/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	MsgInvalidCode   = "invalid promo code"
	MsgExpired       = "promo code has expired"
	MsgNotApplicable = "promo code does not apply to selected seats"
	MsgNoSeats       = "no seats selected"
)

var hundred = decimal.NewFromInt(100)

// Quote is the priced outcome of applying one promo code
type Quote struct {
	DiscountID string          `json:"discount_id"`
	Code       string          `json:"code"`
	Percentage decimal.Decimal `json:"percentage"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
}

// Subtotal sums seat prices
func Subtotal(seats []SeatRef) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range seats {
		sum = sum.Add(s.Price)
	}
	return sum.Round(2)
}

// Resolve applies code to seats. The code is matched upper-cased and exactly
// against the discount names usable for eventID; the first match wins and replaces
// any earlier discount, codes never stack.
//
// A ticket-type scoped discount applies when any seat's ticket type or ticket id
// is listed in TicketTypeIDs.
func Resolve(code, eventID string, seats []SeatRef, candidates []Discount, now time.Time) (*Quote, error) {
	if len(seats) == 0 {
		return nil, apperrors.FieldValidation("seats", MsgNoSeats)
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, apperrors.FieldValidation("promo_code", MsgInvalidCode)
	}

	var match *Discount
	for i := range candidates {
		d := &candidates[i]
		if strings.ToUpper(strings.TrimSpace(d.Name)) == normalized && d.appliesToEvent(eventID) {
			match = d
			break
		}
	}
	if match == nil {
		return nil, apperrors.FieldValidation("promo_code", MsgInvalidCode)
	}

	if match.Expired(now) {
		return nil, apperrors.FieldValidation("promo_code", MsgExpired)
	}

	if len(match.TicketTypeIDs) > 0 && !anySeatMatches(seats, match.TicketTypeIDs) {
		return nil, apperrors.FieldValidation("promo_code", MsgNotApplicable)
	}

	subtotal := Subtotal(seats)
	discount := subtotal.Mul(match.Percentage).Div(hundred).Round(2)

	return &Quote{
		DiscountID: match.DiscountID,
		Code:       normalized,
		Percentage: match.Percentage,
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      subtotal.Sub(discount),
	}, nil
}

func anySeatMatches(seats []SeatRef, allowed []string) bool {
	for _, s := range seats {
		if slices.Contains(allowed, s.TicketType) || slices.Contains(allowed, s.TicketID) {
			return true
		}
	}
	return false
}
