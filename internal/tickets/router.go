package tickets

import "github.com/gin-gonic/gin"

func SetupTicketRoutes(router *gin.RouterGroup, controller Controller, organizer ...gin.HandlerFunc) {
	router.GET("/events/:eventId/tickets", controller.ListByEvent) // GET /api/v1/events/:eventId/tickets?status=available

	protected := router.Group("")
	protected.Use(organizer...)
	protected.POST("/events/:eventId/tickets", controller.CreateLayout) // POST /api/v1/events/:eventId/tickets
}
