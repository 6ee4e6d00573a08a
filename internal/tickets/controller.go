package tickets

import (
	"net/http"

	"nexusems/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreateLayout(c *gin.Context)
	ListByEvent(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateLayout(c *gin.Context) {
	var req CreateLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	tickets, err := ctrl.service.CreateLayout(c.Request.Context(), c.Param("eventId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.RespondJSON(c, http.StatusCreated, "tickets created", tickets)
}

func (ctrl *controller) ListByEvent(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	tickets, err := ctrl.service.ListByEvent(c.Request.Context(), c.Param("eventId"), Status(q.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.RespondJSON(c, http.StatusOK, "", tickets)
}
