package waitlist

import "time"

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusNotified   Status = "notified"
	StatusRegistered Status = "registered"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusNotified, StatusRegistered:
		return true
	}
	return false
}

// Entry asks to be told when an event frees a seat. Email is stored lower-cased,
// so the unique index makes (event, email) case-insensitive.
type Entry struct {
	WaitlistID string     `gorm:"column:waitlist_id;primaryKey;size:24" json:"waitlist_id"`
	EventID    string     `gorm:"size:16;not null;uniqueIndex:idx_waitlist_event_email,priority:1;index:idx_waitlist_event_status,priority:1" json:"event_id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Email      string     `gorm:"size:255;not null;uniqueIndex:idx_waitlist_event_email,priority:2" json:"email"`
	Contact    string     `gorm:"size:50" json:"contact"`
	Status     Status     `gorm:"type:varchar(16);not null;default:'waiting';index:idx_waitlist_event_status,priority:2" json:"status"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Entry) TableName() string {
	return "waitlist_entries"
}
