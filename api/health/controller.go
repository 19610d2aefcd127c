// Package health Liveness endpoint.
package health

import (
	"github.com/gin-gonic/gin"

	"github.com/juanpineyrob/dscommerce/api/response"
	"github.com/juanpineyrob/dscommerce/config"
)

// Controller health check controller.
type Controller struct {
	cfg *config.Config
}

// NewController creates the health controller.
func NewController(cfg *config.Config) *Controller {
	return &Controller{cfg: cfg}
}

// RegisterRoutes registers the health route.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.HealthCheck)
}

// HealthCheck reports service liveness.
func (c *Controller) HealthCheck(ctx *gin.Context) {
	response.HandleSuccess(ctx, gin.H{
		"status":  "healthy",
		"service": c.cfg.App.Name,
		"version": c.cfg.App.Version,
	}, "Service is healthy")
}
