package events

import (
	"github.com/gin-gonic/gin"
)

// SetupEventRoutes mounts event routes. organizer must authenticate and
// authorize the caller.
func SetupEventRoutes(router *gin.RouterGroup, controller Controller, organizer ...gin.HandlerFunc) {
	router.GET("/events/:eventId", controller.GetEvent) // GET /api/v1/events/:eventId

	protected := router.Group("")
	protected.Use(organizer...)
	{
		protected.POST("/events", controller.CreateEvent)                // POST /api/v1/events
		protected.GET("/organizer/events", controller.ListOrganizerEvents) // GET /api/v1/organizer/events
	}
}
