package bookings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"nexusems/internal/discounts"
	"nexusems/internal/shared/idgen"
	"nexusems/internal/tickets"
	"nexusems/pkg/apperrors"
	"nexusems/pkg/logger"
	"nexusems/pkg/metrics"

	"github.com/shopspring/decimal"
)

// EventDirectory resolves events for booking creation and organizer scoping
type EventDirectory interface {
	EventName(ctx context.Context, id string) (string, error)
	EventIDsForOrganizer(ctx context.Context, organizerID string) ([]string, error)
}

// TicketCatalog looks up the tickets a seat selection refers to
type TicketCatalog interface {
	GetByIDs(ctx context.Context, ids []string) ([]tickets.Ticket, error)
}

// PromoResolver prices a seat selection with a promo code
type PromoResolver interface {
	Quote(ctx context.Context, code, eventID string, seats []discounts.SeatRef) (*discounts.Quote, error)
}

// ReleasePublisher announces tickets freed by a cancellation. It runs after the
// cancellation has committed and its errors never fail the cancellation.
type ReleasePublisher interface {
	PublishSeatsReleased(ctx context.Context, eventID, bookingID string, ticketIDs []string) error
}

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context) ([]Booking, error)
	AttachCustomer(ctx context.Context, id string, req CustomerRequest) (*Booking, error)
	AttachPayment(ctx context.Context, id string, req PaymentRequest) (*Booking, error)
	CancelBooking(ctx context.Context, id string) error

	// ListAttendees lists an event's bookings. A non-empty organizerID must own the event.
	ListAttendees(ctx context.Context, organizerID, eventID string) ([]AttendeeResponse, error)

	// ListOrganizerBookings lists bookings across the organizer's events.
	// status may be empty or "paid".
	ListOrganizerBookings(ctx context.Context, organizerID, status string) ([]Booking, error)
}

type service struct {
	repo     Repository
	events   EventDirectory
	tickets  TicketCatalog
	promos   PromoResolver
	releases ReleasePublisher
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, events EventDirectory, catalog TicketCatalog, promos PromoResolver, releases ReleasePublisher, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		events:   events,
		tickets:  catalog,
		promos:   promos,
		releases: releases,
		log:      log.WithComponent("bookings"),
		now:      time.Now,
	}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (booking *Booking, err error) {
	defer func() { metrics.RecordBooking("create", err) }()

	eventID := strings.TrimSpace(req.EventID)
	eventName, err := s.events.EventName(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.EventName); name != "" {
		eventName = name
	}

	seats, err := s.resolveSeats(ctx, eventID, req.Seats)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, seat := range seats {
		subtotal = subtotal.Add(seat.Price)
	}
	subtotal = subtotal.Round(2)
	discount := decimal.Zero

	var promo *string
	if req.PromoCode != nil && strings.TrimSpace(*req.PromoCode) != "" {
		quote, err := s.promos.Quote(ctx, *req.PromoCode, eventID, seatRefs(seats))
		if err != nil {
			return nil, err
		}
		discount = quote.Discount
		promo = &quote.Code
	}
	total := subtotal.Sub(discount)

	if err := checkFigure("subtotal", req.Subtotal, subtotal); err != nil {
		return nil, err
	}
	if err := checkFigure("discount", req.Discount, discount); err != nil {
		return nil, err
	}
	if err := checkFigure("total", req.Total, total); err != nil {
		return nil, err
	}

	bookingID := strings.TrimSpace(req.BookingID)
	if bookingID == "" {
		bookingID = idgen.Booking(s.now())
	}

	booking = &Booking{
		BookingID:     bookingID,
		EventID:       eventID,
		EventName:     eventName,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		Seats:         seats,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		PromoCode:     promo,
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.BookingID, booking.EventID, len(seats))
	return booking, nil
}

// resolveSeats fills each selection from the ticket store, keeping request order
func (s *service) resolveSeats(ctx context.Context, eventID string, selections []SeatSelection) ([]Seat, error) {
	if len(selections) == 0 {
		return nil, apperrors.FieldValidation("seats", discounts.MsgNoSeats)
	}

	ids := make([]string, 0, len(selections))
	seen := make(map[string]bool, len(selections))
	for _, sel := range selections {
		id := strings.TrimSpace(sel.TicketID)
		if seen[id] {
			return nil, apperrors.FieldValidation("seats", fmt.Sprintf("ticket %s selected twice", id))
		}
		seen[id] = true
		ids = append(ids, id)
	}

	found, err := s.tickets.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]tickets.Ticket, len(found))
	for _, t := range found {
		byID[t.TicketID] = t
	}

	seats := make([]Seat, len(ids))
	for i, id := range ids {
		t, ok := byID[id]
		if !ok || t.EventID != eventID {
			return nil, apperrors.FieldValidation("seats", fmt.Sprintf("ticket %s does not belong to event %s", id, eventID))
		}
		if p := selections[i].Price; !p.IsZero() && !p.Round(2).Equal(t.Price.Round(2)) {
			return nil, apperrors.FieldValidation("seats", fmt.Sprintf("price for ticket %s is %s", id, t.Price.StringFixed(2)))
		}
		seats[i] = Seat{
			Position:   i,
			TicketID:   t.TicketID,
			Section:    t.Layout,
			Row:        t.Row,
			SeatNo:     t.SeatNo,
			TicketType: t.TicketType,
			Price:      t.Price.Round(2),
		}
	}
	return seats, nil
}

func seatRefs(seats []Seat) []discounts.SeatRef {
	refs := make([]discounts.SeatRef, len(seats))
	for i, s := range seats {
		refs[i] = discounts.SeatRef{TicketID: s.TicketID, TicketType: s.TicketType, Price: s.Price}
	}
	return refs
}

func checkFigure(field string, got *decimal.Decimal, want decimal.Decimal) error {
	if got == nil || got.Round(2).Equal(want) {
		return nil
	}
	return apperrors.FieldValidation(field, fmt.Sprintf("%s should be %s", field, want.StringFixed(2)))
}

func (s *service) GetBooking(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBookings(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

func (s *service) AttachCustomer(ctx context.Context, id string, req CustomerRequest) (booking *Booking, err error) {
	defer func() { metrics.RecordBooking("customer", err) }()

	name := strings.TrimSpace(req.CustomerName)
	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if name == "" {
		return nil, apperrors.FieldValidation("customer_name", "customer_name is required")
	}
	if email == "" {
		return nil, apperrors.FieldValidation("customer_email", "customer_email is required")
	}

	return s.repo.UpdateCustomer(ctx, id, name, email)
}

func (s *service) AttachPayment(ctx context.Context, id string, req PaymentRequest) (booking *Booking, err error) {
	defer func() { metrics.RecordBooking("payment", err) }()

	method := strings.TrimSpace(req.PaymentMethod)
	paymentID := strings.TrimSpace(req.PaymentID)
	if method == "" {
		return nil, apperrors.FieldValidation("payment_method", "payment_method is required")
	}
	if paymentID == "" {
		return nil, apperrors.FieldValidation("payment_id", "payment_id is required")
	}

	booking, err = s.repo.MarkPaid(ctx, id, method, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.log.WarnContext(ctx, "Payment rejected", "booking_id", id, "reason", apperrors.Message(err))
		}
		return nil, err
	}

	metrics.RecordTickets(string(tickets.StatusBooked), len(booking.Seats))
	s.log.LogBookingPaid(ctx, booking.BookingID, booking.EventID, paymentID)
	return booking, nil
}

func (s *service) CancelBooking(ctx context.Context, id string) (err error) {
	defer func() { metrics.RecordBooking("cancel", err) }()

	booking, released, err := s.repo.DeleteAndRelease(ctx, id)
	if err != nil {
		return err
	}

	metrics.RecordTickets(string(tickets.StatusAvailable), int(released))
	s.log.LogBookingCancelled(ctx, booking.BookingID, booking.EventID, int(released))

	if s.releases != nil {
		if perr := s.releases.PublishSeatsReleased(ctx, booking.EventID, booking.BookingID, booking.TicketIDs()); perr != nil {
			s.log.ErrorWithContext(ctx, "Failed to publish seat release", perr, map[string]interface{}{
				"booking_id": booking.BookingID,
				"event_id":   booking.EventID,
			})
		}
	}
	return nil
}

func (s *service) ListAttendees(ctx context.Context, organizerID, eventID string) ([]AttendeeResponse, error) {
	if organizerID != "" {
		owned, err := s.events.EventIDsForOrganizer(ctx, organizerID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(owned, eventID) {
			return nil, apperrors.NotFound("event", eventID)
		}
	} else if _, err := s.events.EventName(ctx, eventID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListByEvents(ctx, []string{eventID}, "")
	if err != nil {
		return nil, err
	}

	attendees := make([]AttendeeResponse, len(list))
	for i, b := range list {
		attendees[i] = AttendeeResponse{
			BookingID:     b.BookingID,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			SeatCount:     len(b.Seats),
			Seats:         seatSummary(b.Seats),
			Total:         b.Total,
			Status:        b.Status,
			CreatedAt:     b.CreatedAt,
		}
	}
	return attendees, nil
}

func (s *service) ListOrganizerBookings(ctx context.Context, organizerID, status string) ([]Booking, error) {
	filter := Status(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && filter != StatusPaid {
		return nil, apperrors.FieldValidation("status", "status filter must be empty or paid")
	}

	owned, err := s.events.EventIDsForOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEvents(ctx, owned, filter)
}

// seatSummary renders seats as "A-1, A-2"
func seatSummary(seats []Seat) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = fmt.Sprintf("%s-%d", s.Row, s.SeatNo)
	}
	return strings.Join(parts, ", ")
}
