package database

import (
	"fmt"

	"gorm.io/gorm"
)

type checkConstraint struct {
	table string
	name  string
	expr  string
}

var checkConstraints = []checkConstraint{
	{"tickets", "chk_tickets_status", "status IN ('available', 'booked')"},
	{"tickets", "chk_tickets_holder",
		"(status = 'available' AND booking_id IS NULL) OR (status = 'booked' AND booking_id IS NOT NULL)"},
	{"tickets", "chk_tickets_price", "price >= 0"},
	{"bookings", "chk_bookings_status", "status IN ('pending', 'paid')"},
	{"bookings", "chk_bookings_total", "total >= 0 AND discount >= 0 AND discount <= subtotal"},
	{"discounts", "chk_discounts_percentage", "percentage >= 0 AND percentage <= 100"},
	{"waitlist_entries", "chk_waitlist_status", "status IN ('waiting', 'notified', 'registered')"},
}

// MigrateConstraints adds the CHECK constraints AutoMigrate cannot express.
// The ticket holder check backs the seat reservation guard: a booked ticket
// always names its booking.
func MigrateConstraints(db *gorm.DB) error {
	for _, c := range checkConstraints {
		if err := db.Exec(addCheckSQL(c)).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func addCheckSQL(c checkConstraint) string {
	return fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, c.name, c.table, c.name, c.expr)
}
