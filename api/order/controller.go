// Package order Order workflow HTTP endpoints. Every route requires an
// authenticated principal.
package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/juanpineyrob/dscommerce/api/middleware"
	"github.com/juanpineyrob/dscommerce/api/response"
	orderapp "github.com/juanpineyrob/dscommerce/application/order"
	"github.com/juanpineyrob/dscommerce/infrastructure/security"
)

// Controller order controller.
type Controller struct {
	service *orderapp.Service
	tokens  *security.TokenManager
}

// NewController creates the order controller.
func NewController(service *orderapp.Service, tokens *security.TokenManager) *Controller {
	return &Controller{service: service, tokens: tokens}
}

// RegisterRoutes registers order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders", middleware.Auth(c.tokens))
	{
		orders.GET("/:id", c.FindByID)
		orders.POST("", c.Insert)
		orders.PUT("/:id/status", c.UpdateStatus)
	}
}

// FindByID returns an order; the service enforces self-or-admin access.
func (c *Controller) FindByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	o, err := c.service.FindByID(ctx.Request.Context(), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "Order retrieved successfully")
}

// Insert places an order for the authenticated client.
func (c *Controller) Insert(ctx *gin.Context) {
	var req orderapp.InsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.service.Insert(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, o, "Order placed successfully")
}

// UpdateStatus moves the order along its lifecycle; the service enforces
// the admin requirement and the legal transition graph.
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.service.UpdateStatus(ctx.Request.Context(), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "Order status updated successfully")
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.HandleError(ctx, err, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
