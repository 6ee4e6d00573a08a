package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes. organizer guards the
// listing endpoints.
func SetupBookingRoutes(rg *gin.RouterGroup, controller Controller, organizer ...gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", controller.CreateBooking)              // POST /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)              // GET /api/v1/bookings/:id
		bookings.PUT("/:id/customer", controller.AttachCustomer) // PUT /api/v1/bookings/:id/customer
		bookings.PUT("/:id/payment", controller.AttachPayment)   // PUT /api/v1/bookings/:id/payment
		bookings.DELETE("/:id", controller.CancelBooking)        // DELETE /api/v1/bookings/:id
	}

	protected := rg.Group("")
	protected.Use(organizer...)
	{
		protected.GET("/bookings", controller.ListBookings)                    // GET /api/v1/bookings
		protected.GET("/events/:eventId/attendees", controller.ListAttendees)  // GET /api/v1/events/:eventId/attendees
		protected.GET("/organizer/bookings", controller.ListOrganizerBookings) // GET /api/v1/organizer/bookings?status=paid
	}
}

// Booking flow:
// 1. POST /bookings with the selected seats (and optional promo_code) creates a pending booking
// 2. PUT /bookings/:id/customer attaches the customer's name and email
// 3. PUT /bookings/:id/payment confirms payment; the tickets become booked
// 4. DELETE /bookings/:id cancels, frees the tickets and wakes the event's waitlist
