// Package user Authentication and profile HTTP endpoints.
package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juanpineyrob/dscommerce/api/middleware"
	"github.com/juanpineyrob/dscommerce/api/response"
	authapp "github.com/juanpineyrob/dscommerce/application/auth"
	userapp "github.com/juanpineyrob/dscommerce/application/user"
	"github.com/juanpineyrob/dscommerce/infrastructure/security"
)

// Controller user controller.
type Controller struct {
	authService *authapp.Service
	userService *userapp.Service
	tokens      *security.TokenManager
}

// NewController creates the user controller.
func NewController(authService *authapp.Service, userService *userapp.Service, tokens *security.TokenManager) *Controller {
	return &Controller{authService: authService, userService: userService, tokens: tokens}
}

// RegisterRoutes registers auth and profile routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/login", c.Login)

	users := router.Group("/users", middleware.Auth(c.tokens))
	{
		users.GET("/me", c.GetMe)
	}
}

// Login exchanges credentials for an access token.
func (c *Controller) Login(ctx *gin.Context) {
	var req authapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	token, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, token, "Signed in successfully")
}

// GetMe returns the signed-in user's profile.
func (c *Controller) GetMe(ctx *gin.Context) {
	me, err := c.userService.GetMe(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, me, "Profile retrieved successfully")
}
