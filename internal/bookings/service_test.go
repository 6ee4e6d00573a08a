package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexusems/internal/discounts"
	"nexusems/internal/tickets"
	"nexusems/pkg/apperrors"
	"nexusems/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, booking *Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *mockRepository) ListByEvents(ctx context.Context, eventIDs []string, status Status) ([]Booking, error) {
	args := m.Called(ctx, eventIDs, status)
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *mockRepository) UpdateCustomer(ctx context.Context, id, name, email string) (*Booking, error) {
	args := m.Called(ctx, id, name, email)
	if b, ok := args.Get(0).(*Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) MarkPaid(ctx context.Context, id, method, paymentID string) (*Booking, error) {
	args := m.Called(ctx, id, method, paymentID)
	if b, ok := args.Get(0).(*Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) DeleteAndRelease(ctx context.Context, id string) (*Booking, int64, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*Booking); ok {
		return b, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishSeatsReleased(ctx context.Context, eventID, bookingID string, ticketIDs []string) error {
	return m.Called(ctx, eventID, bookingID, ticketIDs).Error(0)
}

type fakeEvents struct {
	names map[string]string
	owned map[string][]string
}

func (f fakeEvents) EventName(_ context.Context, id string) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", apperrors.NotFound("event", id)
	}
	return name, nil
}

func (f fakeEvents) EventIDsForOrganizer(_ context.Context, organizerID string) ([]string, error) {
	return f.owned[organizerID], nil
}

type fakeCatalog []tickets.Ticket

func (f fakeCatalog) GetByIDs(_ context.Context, ids []string) ([]tickets.Ticket, error) {
	var out []tickets.Ticket
	for _, t := range f {
		for _, id := range ids {
			if t.TicketID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// promoTable resolves codes against a fixed discount list
type promoTable []discounts.Discount

func (p promoTable) Quote(_ context.Context, code, eventID string, seats []discounts.SeatRef) (*discounts.Quote, error) {
	return discounts.Resolve(code, eventID, seats, p, time.Now())
}

var (
	testEvents = fakeEvents{
		names: map[string]string{"E-001": "Winter Gala", "E-002": "Spring Fair"},
		owned: map[string][]string{"E00001": {"E-001", "E-002"}, "E00009": {}},
	}
	testCatalog = fakeCatalog{
		{TicketID: "T-010", EventID: "E-001", Layout: "Orchestra", Row: "A", SeatNo: 1, TicketType: "VIP", Price: decimal.NewFromInt(150)},
		{TicketID: "T-011", EventID: "E-001", Layout: "Orchestra", Row: "A", SeatNo: 2, TicketType: "GA", Price: decimal.NewFromInt(100)},
		{TicketID: "T-020", EventID: "E-002", Layout: "Floor", Row: "C", SeatNo: 7, TicketType: "GA", Price: decimal.NewFromInt(40)},
	}
	testPromos = promoTable{
		{DiscountID: "D-001", Name: "NEXUS10", Percentage: decimal.NewFromInt(10), ExpiryDate: time.Now().Add(24 * time.Hour)},
		{DiscountID: "D-002", Name: "OLD", Percentage: decimal.NewFromInt(50), ExpiryDate: time.Now().Add(-24 * time.Hour)},
	}
)

func newTestService(repo Repository, pub ReleasePublisher) *service {
	svc := NewService(repo, testEvents, testCatalog, testPromos, pub, logger.Discard()).(*service)
	svc.now = func() time.Time { return time.UnixMilli(1760000000123) }
	return svc
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func twoSeatRequest() CreateBookingRequest {
	return CreateBookingRequest{
		EventID: "E-001",
		Seats:   []SeatSelection{{TicketID: "T-010"}, {TicketID: "T-011", Price: decimal.NewFromInt(100)}},
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("pending without touching tickets", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*bookings.Booking")).Return(nil)

		b, err := svc.CreateBooking(ctx, twoSeatRequest())
		require.NoError(t, err)
		assert.Equal(t, "BK-1760000000123", b.BookingID)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "Winter Gala", b.EventName)
		assert.Equal(t, "250", b.Subtotal.String())
		assert.True(t, b.Discount.IsZero())
		assert.True(t, b.Total.Equal(b.Subtotal.Sub(b.Discount)))
		assert.Equal(t, "VIP", b.Seats[0].TicketType)
		assert.Equal(t, 1, b.Seats[1].Position)
		repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("promo code is resolved server side", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*bookings.Booking")).Return(nil)

		req := twoSeatRequest()
		req.PromoCode = strPtr("nexus10")
		req.Subtotal, req.Discount, req.Total = dec("250"), dec("25"), dec("225.00")

		b, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "25", b.Discount.String())
		assert.Equal(t, "225", b.Total.String())
		assert.Equal(t, "NEXUS10", *b.PromoCode)
	})

	t.Run("keeps supplied id", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		req := twoSeatRequest()
		req.BookingID = "BK-42"
		b, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "BK-42", b.BookingID)
	})
}

func TestCreateBookingRejects(t *testing.T) {
	ctx := context.Background()

	withFigures := twoSeatRequest()
	withFigures.Total = dec("200")

	expired := twoSeatRequest()
	expired.PromoCode = strPtr("OLD")

	duplicate := twoSeatRequest()
	duplicate.Seats = append(duplicate.Seats, SeatSelection{TicketID: "T-010"})

	foreign := twoSeatRequest()
	foreign.Seats = []SeatSelection{{TicketID: "T-020"}}

	wrongPrice := twoSeatRequest()
	wrongPrice.Seats[0].Price = decimal.NewFromInt(1)

	unknownEvent := twoSeatRequest()
	unknownEvent.EventID = "E-404"

	tests := []struct {
		name string
		req  CreateBookingRequest
		want error
	}{
		{"total mismatch", withFigures, apperrors.ErrValidation},
		{"expired promo", expired, apperrors.ErrValidation},
		{"duplicate seat", duplicate, apperrors.ErrValidation},
		{"ticket of another event", foreign, apperrors.ErrValidation},
		{"price mismatch", wrongPrice, apperrors.ErrValidation},
		{"unknown event", unknownEvent, apperrors.ErrNotFound},
		{"no seats", CreateBookingRequest{EventID: "E-001"}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			svc := newTestService(repo, nil)

			_, err := svc.CreateBooking(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAttachCustomer(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("UpdateCustomer", ctx, "BK-1", "Ada Lovelace", "ada@example.com").
		Return(&Booking{BookingID: "BK-1", CustomerName: "Ada Lovelace"}, nil)
	repo.On("UpdateCustomer", ctx, "BK-404", "Ada", "ada@example.com").
		Return(nil, apperrors.NotFound("booking", "BK-404"))

	b, err := svc.AttachCustomer(ctx, "BK-1", CustomerRequest{CustomerName: " Ada Lovelace ", CustomerEmail: "Ada@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", b.CustomerName)

	_, err = svc.AttachCustomer(ctx, "BK-404", CustomerRequest{CustomerName: "Ada", CustomerEmail: "ada@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AttachCustomer(ctx, "BK-1", CustomerRequest{CustomerName: "  ", CustomerEmail: "ada@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func paidBooking() *Booking {
	return &Booking{
		BookingID: "BK-1",
		EventID:   "E-001",
		Status:    StatusPaid,
		Seats:     []Seat{{TicketID: "T-010"}, {TicketID: "T-011", Position: 1}},
	}
}

func TestPaymentThenCancel(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	pub := new(mockPublisher)
	svc := newTestService(repo, pub)

	repo.On("MarkPaid", ctx, "BK-1", "card", "pi_123").Return(paidBooking(), nil)
	repo.On("DeleteAndRelease", ctx, "BK-1").Return(paidBooking(), int64(2), nil)
	repo.On("GetByID", ctx, "BK-1").Return(nil, apperrors.NotFound("booking", "BK-1"))
	pub.On("PublishSeatsReleased", ctx, "E-001", "BK-1", []string{"T-010", "T-011"}).Return(nil).Once()

	b, err := svc.AttachPayment(ctx, "BK-1", PaymentRequest{PaymentMethod: "card", PaymentID: "pi_123"})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, b.Status)

	require.NoError(t, svc.CancelBooking(ctx, "BK-1"))

	_, err = svc.GetBooking(ctx, "BK-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	pub.AssertNumberOfCalls(t, "PublishSeatsReleased", 1)
}

func TestAttachPaymentValidation(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	_, err := svc.AttachPayment(context.Background(), "BK-1", PaymentRequest{PaymentMethod: "card"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("publish failure does not fail cancellation", func(t *testing.T) {
		repo := new(mockRepository)
		pub := new(mockPublisher)
		svc := newTestService(repo, pub)

		repo.On("DeleteAndRelease", ctx, "BK-1").Return(paidBooking(), int64(2), nil)
		pub.On("PublishSeatsReleased", ctx, "E-001", "BK-1", mock.Anything).Return(errors.New("broker down"))

		assert.NoError(t, svc.CancelBooking(ctx, "BK-1"))
		pub.AssertExpectations(t)
	})

	t.Run("unknown booking publishes nothing", func(t *testing.T) {
		repo := new(mockRepository)
		pub := new(mockPublisher)
		svc := newTestService(repo, pub)

		repo.On("DeleteAndRelease", ctx, "BK-404").Return(nil, int64(0), apperrors.NotFound("booking", "BK-404"))

		assert.ErrorIs(t, svc.CancelBooking(ctx, "BK-404"), apperrors.ErrNotFound)
		pub.AssertNotCalled(t, "PublishSeatsReleased", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)

		repo.On("DeleteAndRelease", ctx, "BK-1").Return(nil, int64(0), apperrors.Internal("failed to access booking store", errors.New("timeout")))

		assert.ErrorIs(t, svc.CancelBooking(ctx, "BK-1"), apperrors.ErrInternal)
	})
}

func TestListOrganizerBookings(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("ListByEvents", ctx, []string{"E-001", "E-002"}, StatusPaid).Return([]Booking{*paidBooking()}, nil)

	list, err := svc.ListOrganizerBookings(ctx, "E00001", "paid")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListOrganizerBookings(ctx, "E00001", "pending")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListAttendees(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	b := paidBooking()
	b.CustomerName = "Ada"
	b.Seats[0].Row, b.Seats[0].SeatNo = "A", 1
	b.Seats[1].Row, b.Seats[1].SeatNo = "A", 2
	repo.On("ListByEvents", ctx, []string{"E-001"}, Status("")).Return([]Booking{*b}, nil)

	rows, err := svc.ListAttendees(ctx, "E00001", "E-001")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A-1, A-2", rows[0].Seats)
	assert.Equal(t, 2, rows[0].SeatCount)

	_, err = svc.ListAttendees(ctx, "E00009", "E-001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
