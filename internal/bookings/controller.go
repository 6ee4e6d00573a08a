package bookings

import (
	"net/http"

	"nexusems/internal/shared/middleware"
	"nexusems/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreateBooking(c *gin.Context)
	GetBooking(c *gin.Context)
	ListBookings(c *gin.Context)
	AttachCustomer(c *gin.Context)
	AttachPayment(c *gin.Context)
	CancelBooking(c *gin.Context)
	ListAttendees(c *gin.Context)
	ListOrganizerBookings(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateBooking godoc
// @Summary  Create a pending booking
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body body CreateBookingRequest true "Booking"
// @Success  201 {object} CreateBookingResponse
// @Failure  400 {object} response.StandardApiResponse
// @Router   /bookings [post]
func (ctrl *controller) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	booking, err := ctrl.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{Success: true, BookingID: booking.BookingID})
}

// GetBooking godoc
// @Summary  Get a booking with its seats
// @Tags     bookings
// @Produce  json
// @Param    id path string true "Booking ID"
// @Success  200 {object} BookingResponse
// @Failure  404 {object} response.StandardApiResponse
// @Router   /bookings/{id} [get]
func (ctrl *controller) GetBooking(c *gin.Context) {
	booking, err := ctrl.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingResponse{Success: true, Booking: booking})
}

func (ctrl *controller) ListBookings(c *gin.Context) {
	list, err := ctrl.service.ListBookings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", list)
}

func (ctrl *controller) AttachCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	booking, err := ctrl.service.AttachCustomer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingResponse{Success: true, Booking: booking})
}

// AttachPayment godoc
// @Summary  Confirm payment and reserve the booking's tickets
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    id   path string         true "Booking ID"
// @Param    body body PaymentRequest true "Payment"
// @Success  200 {object} BookingResponse
// @Failure  409 {object} response.StandardApiResponse
// @Router   /bookings/{id}/payment [put]
func (ctrl *controller) AttachPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	booking, err := ctrl.service.AttachPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingResponse{Success: true, Booking: booking})
}

// CancelBooking godoc
// @Summary  Cancel a booking and release its tickets
// @Tags     bookings
// @Produce  json
// @Param    id path string true "Booking ID"
// @Success  200 {object} response.StandardApiResponse
// @Failure  404 {object} response.StandardApiResponse
// @Router   /bookings/{id} [delete]
func (ctrl *controller) CancelBooking(c *gin.Context) {
	if err := ctrl.service.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "booking cancelled", nil)
}

func (ctrl *controller) ListAttendees(c *gin.Context) {
	organizerID := middleware.UserID(c)
	if middleware.IsAdmin(c) {
		organizerID = ""
	}

	attendees, err := ctrl.service.ListAttendees(c.Request.Context(), organizerID, c.Param("eventId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", attendees)
}

func (ctrl *controller) ListOrganizerBookings(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	list, err := ctrl.service.ListOrganizerBookings(c.Request.Context(), middleware.UserID(c), q.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", list)
}
