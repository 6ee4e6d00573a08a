package events

import "time"

type CreateEventRequest struct {
	Name     string    `json:"name" binding:"required,max=200"`
	Venue    string    `json:"venue" binding:"max=200"`
	StartsAt time.Time `json:"starts_at" binding:"required"`

	// OrganizerID lets an admin create an event on behalf of an organizer.
	// Ignored for organizer callers.
	OrganizerID string `json:"organizer_id"`
}
