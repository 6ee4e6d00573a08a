package events

import "time"

// Event is the minimal event record the booking flow depends on: who owns it
// and what to call it in notifications.
type Event struct {
	EventID     string    `gorm:"column:event_id;primaryKey;size:16" json:"event_id"`
	OrganizerID string    `gorm:"size:16;not null;index" json:"organizer_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Venue       string    `gorm:"size:200" json:"venue"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}
