package waitlist

import (
	"net/http"

	"nexusems/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Join(c *gin.Context)
	GetEntry(c *gin.Context)
	ListEntries(c *gin.Context)
	UpdateStatus(c *gin.Context)
	Remove(c *gin.Context)
	Notify(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Join godoc
// @Summary  Join an event's waitlist
// @Tags     waitlist
// @Accept   json
// @Produce  json
// @Param    body body JoinRequest true "Entry"
// @Success  201 {object} response.StandardApiResponse
// @Failure  404 {object} response.StandardApiResponse
// @Failure  409 {object} response.StandardApiResponse
// @Router   /waitlist [post]
func (ctrl *controller) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	entry, err := ctrl.service.Join(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusCreated, "added to waitlist", entry)
}

func (ctrl *controller) GetEntry(c *gin.Context) {
	entry, err := ctrl.service.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", entry)
}

func (ctrl *controller) ListEntries(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	entries, err := ctrl.service.ListEntries(c.Request.Context(), c.Param("eventId"), q.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", entries)
}

func (ctrl *controller) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	entry, err := ctrl.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "waitlist entry updated", entry)
}

func (ctrl *controller) Remove(c *gin.Context) {
	if err := ctrl.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "waitlist entry removed", nil)
}

// Notify godoc
// @Summary  Notify every waiting entry of an event
// @Tags     waitlist
// @Produce  json
// @Param    eventId path string true "Event ID"
// @Success  200 {object} response.StandardApiResponse
// @Failure  400 {object} response.StandardApiResponse "some notices failed; data carries the summary"
// @Router   /waitlist/notify/{eventId} [post]
func (ctrl *controller) Notify(c *gin.Context) {
	result, err := ctrl.service.NotifyEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Failed > 0 {
		response.RespondJSON(c, http.StatusBadRequest, "some waitlist notifications failed", result)
		return
	}
	response.RespondJSON(c, http.StatusOK, "waitlist notified", result)
}
