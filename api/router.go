// Package api HTTP surface: route registration and the middleware chain.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/juanpineyrob/dscommerce/api/catalog"
	"github.com/juanpineyrob/dscommerce/api/health"
	"github.com/juanpineyrob/dscommerce/api/middleware"
	"github.com/juanpineyrob/dscommerce/api/order"
	"github.com/juanpineyrob/dscommerce/api/user"
	"github.com/juanpineyrob/dscommerce/config"
)

// Router route configuration.
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	healthController  *health.Controller
	catalogController *catalog.Controller
	orderController   *order.Controller
	userController    *user.Controller
}

// NewRouter creates the engine with the middleware chain applied.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	catalogController *catalog.Controller,
	orderController *order.Controller,
	userController *user.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before anything
	// logs, and recovery must wrap everything that can panic.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))

	return &Router{
		engine:            engine,
		config:            cfg,
		healthController:  healthController,
		catalogController: catalogController,
		orderController:   orderController,
		userController:    userController,
	}
}

// SetupRoutes registers every route under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.catalogController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.userController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
