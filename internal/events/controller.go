package events

import (
	"net/http"

	"nexusems/internal/shared/middleware"
	"nexusems/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreateEvent(c *gin.Context)
	GetEvent(c *gin.Context)
	ListOrganizerEvents(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateEvent godoc
// @Summary  Create an event owned by the caller
// @Tags     events
// @Accept   json
// @Produce  json
// @Param    body body CreateEventRequest true "Event"
// @Success  201 {object} response.StandardApiResponse
// @Router   /events [post]
func (ctrl *controller) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	organizerID := middleware.UserID(c)
	if middleware.IsAdmin(c) && req.OrganizerID != "" {
		organizerID = req.OrganizerID
	}

	event, err := ctrl.service.CreateEvent(c.Request.Context(), organizerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.RespondJSON(c, http.StatusCreated, "event created", event)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	event, err := ctrl.service.GetEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", event)
}

func (ctrl *controller) ListOrganizerEvents(c *gin.Context) {
	events, err := ctrl.service.ListOrganizerEvents(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", events)
}
