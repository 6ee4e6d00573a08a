package database

import (
	"nexusems/internal/bookings"
	"nexusems/internal/discounts"
	"nexusems/internal/events"
	"nexusems/internal/tickets"
	"nexusems/internal/waitlist"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&events.Event{},
		&tickets.Ticket{},
		&bookings.Booking{},
		&bookings.Seat{},
		&discounts.Discount{},
		&waitlist.Entry{},
	)
}
