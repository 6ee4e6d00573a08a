package discounts

import (
	"github.com/gin-gonic/gin"
)

func SetupDiscountRoutes(router *gin.RouterGroup, controller Controller, organizer ...gin.HandlerFunc) {
	discounts := router.Group("/discounts")
	{
		discounts.GET("", controller.List)         // GET /api/v1/discounts
		discounts.GET("/:id", controller.Get)      // GET /api/v1/discounts/:id
		discounts.POST("/apply", controller.Apply) // POST /api/v1/discounts/apply
	}

	protected := discounts.Group("")
	protected.Use(organizer...)
	{
		protected.POST("", controller.Save)         // POST /api/v1/discounts
		protected.DELETE("/:id", controller.Delete) // DELETE /api/v1/discounts/:id
	}
}
