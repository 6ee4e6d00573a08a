package discounts

import (
	"net/http"

	"nexusems/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Save(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Delete(c *gin.Context)
	Apply(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Save godoc
// @Summary  Create a discount, or replace it when discount_id already exists
// @Tags     discounts
// @Accept   json
// @Produce  json
// @Param    body body SaveDiscountRequest true "Discount"
// @Success  200 {object} response.StandardApiResponse
// @Success  201 {object} response.StandardApiResponse
// @Router   /discounts [post]
func (ctrl *controller) Save(c *gin.Context) {
	var req SaveDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	discount, created, err := ctrl.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if created {
		response.RespondJSON(c, http.StatusCreated, "discount created", discount)
		return
	}
	response.RespondJSON(c, http.StatusOK, "discount updated", discount)
}

func (ctrl *controller) List(c *gin.Context) {
	list, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", list)
}

func (ctrl *controller) Get(c *gin.Context) {
	discount, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "", discount)
}

func (ctrl *controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "discount deleted", nil)
}

// Apply godoc
// @Summary  Price a seat selection with a promo code
// @Tags     discounts
// @Accept   json
// @Produce  json
// @Param    body body ApplyRequest true "Code and seats"
// @Success  200 {object} response.StandardApiResponse
// @Failure  400 {object} response.StandardApiResponse
// @Router   /discounts/apply [post]
func (ctrl *controller) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	quote, err := ctrl.service.Quote(c.Request.Context(), req.Code, req.EventID, req.Seats)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondJSON(c, http.StatusOK, "promo code applied", quote)
}
