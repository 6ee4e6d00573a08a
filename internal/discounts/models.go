package discounts

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StringList is stored as a jsonb array
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// Discount is a percentage promo code. An empty TicketTypeIDs applies to every seat;
// a nil EventID applies to every event.
type Discount struct {
	DiscountID    string          `gorm:"column:discount_id;primaryKey;size:16" json:"discount_id"`
	Name          string          `gorm:"size:64;not null;index" json:"name"`
	Percentage    decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"percentage"`
	TicketTypeIDs StringList      `gorm:"column:ticket_type_ids;type:jsonb;not null;default:'[]'" json:"ticketTypeIds"`
	ExpiryDate    time.Time       `gorm:"not null" json:"expiry_date"`
	EventID       *string         `gorm:"size:16;index" json:"event_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Discount) TableName() string {
	return "discounts"
}

// Expired reports whether the code can no longer be used at now
func (d *Discount) Expired(now time.Time) bool {
	return d.ExpiryDate.Before(now)
}

func (d *Discount) appliesToEvent(eventID string) bool {
	return d.EventID == nil || *d.EventID == "" || eventID == "" || *d.EventID == eventID
}
