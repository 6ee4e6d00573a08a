// Package idgen builds the human-readable identifiers used across NexusEMS.
//
// Sequential schemes (events, tickets, discounts, organizers) are pure functions
// over a snapshot of the identifiers that already exist: the next id is the
// largest numeric suffix plus one, so gaps left by deletions are never reused.
// Time based schemes (bookings, waitlist entries) take the clock and random
// input as arguments.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	EventPrefix     = "E-"
	TicketPrefix    = "T-"
	DiscountPrefix  = "D-"
	BookingPrefix   = "BK-"
	WaitlistPrefix  = "W-"
	OrganizerPrefix = "E"

	sequenceWidth  = 3
	organizerWidth = 5
)

// Next returns prefix + (max suffix + 1), zero padded to width.
// Identifiers that do not carry the prefix followed only by digits are ignored.
func Next(prefix string, width int, existing []string) string {
	return format(prefix, width, maxSuffix(prefix, existing)+1)
}

// NextRange pre-allocates n contiguous identifiers after the current maximum.
func NextRange(prefix string, width int, existing []string, n int) []string {
	if n <= 0 {
		return nil
	}
	start := maxSuffix(prefix, existing) + 1
	ids := make([]string, n)
	for i := range ids {
		ids[i] = format(prefix, width, start+i)
	}
	return ids
}

func Event(existing []string) string {
	return Next(EventPrefix, sequenceWidth, existing)
}

func Ticket(existing []string) string {
	return Next(TicketPrefix, sequenceWidth, existing)
}

// TicketBatch allocates n ticket ids for a bulk insert.
func TicketBatch(existing []string, n int) []string {
	return NextRange(TicketPrefix, sequenceWidth, existing, n)
}

func Discount(existing []string) string {
	return Next(DiscountPrefix, sequenceWidth, existing)
}

// Organizer uses max+1 like the other sequential schemes, so a deleted
// organizer never frees an id for reuse.
func Organizer(existing []string) string {
	return Next(OrganizerPrefix, organizerWidth, existing)
}

// Booking returns BK-<epoch ms>. Two bookings created in the same millisecond collide;
// the primary key rejects the second insert.
func Booking(now time.Time) string {
	return BookingPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// Waitlist returns W-<last 6 digits of epoch ms><r>, with r expected in [0, 999].
func Waitlist(now time.Time, r int) string {
	return fmt.Sprintf("%s%06d%d", WaitlistPrefix, now.UnixMilli()%1_000_000, r)
}

func format(prefix string, width, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

func maxSuffix(prefix string, existing []string) int {
	highest := 0
	for _, id := range existing {
		n, ok := suffix(prefix, id)
		if ok && n > highest {
			highest = n
		}
	}
	return highest
}

func suffix(prefix, id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
