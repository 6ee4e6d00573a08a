package waitlist

import (
	"github.com/gin-gonic/gin"
)

// SetupWaitlistRoutes configures waitlist routes. organizer guards management and
// manual notification.
func SetupWaitlistRoutes(rg *gin.RouterGroup, controller Controller, organizer ...gin.HandlerFunc) {
	waitlist := rg.Group("/waitlist")
	{
		waitlist.POST("", controller.Join)        // POST /api/v1/waitlist
		waitlist.GET("/:id", controller.GetEntry) // GET /api/v1/waitlist/:id
	}

	admin := rg.Group("")
	admin.Use(organizer...)
	{
		admin.PATCH("/waitlist/:id", controller.UpdateStatus)          // PATCH /api/v1/waitlist/:id
		admin.DELETE("/waitlist/:id", controller.Remove)               // DELETE /api/v1/waitlist/:id
		admin.POST("/waitlist/notify/:eventId", controller.Notify)     // POST /api/v1/waitlist/notify/:eventId
		admin.GET("/events/:eventId/waitlist", controller.ListEntries) // GET /api/v1/events/:eventId/waitlist
	}
}
