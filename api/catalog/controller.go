// Package catalog Product catalog HTTP endpoints.
package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/juanpineyrob/dscommerce/api/middleware"
	"github.com/juanpineyrob/dscommerce/api/response"
	catalogapp "github.com/juanpineyrob/dscommerce/application/catalog"
	"github.com/juanpineyrob/dscommerce/domain/catalog"
	"github.com/juanpineyrob/dscommerce/infrastructure/security"
)

// Controller catalog controller.
type Controller struct {
	service *catalogapp.Service
	tokens  *security.TokenManager
}

// NewController creates the catalog controller.
func NewController(service *catalogapp.Service, tokens *security.TokenManager) *Controller {
	return &Controller{service: service, tokens: tokens}
}

// RegisterRoutes registers catalog routes. Reads are public; writes
// require an admin token.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", c.FindAll)
		products.GET("/:id", c.FindByID)

		admin := products.Group("", middleware.Auth(c.tokens), middleware.RequireAdmin())
		{
			admin.POST("", c.Insert)
			admin.PUT("/:id", c.Update)
			admin.DELETE("/:id", c.Delete)
		}
	}

	router.GET("/categories", c.FindAllCategories)
}

// FindByID full product projection.
func (c *Controller) FindByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	product, err := c.service.FindByID(ctx.Request.Context(), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "Product retrieved successfully")
}

// FindAll paged listing, optionally filtered by name fragment.
func (c *Controller) FindAll(ctx *gin.Context) {
	page := catalog.PageRequest{
		Page: queryInt(ctx, "page", 0),
		Size: queryInt(ctx, "size", 12),
		Sort: ctx.Query("sort"),
	}

	result, err := c.service.FindAll(ctx.Request.Context(), ctx.Query("name"), page)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "Products retrieved successfully")
}

// Insert creates a product.
func (c *Controller) Insert(ctx *gin.Context) {
	var req catalogapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.service.Insert(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "Product created successfully")
}

// Update replaces a product.
func (c *Controller) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req catalogapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.service.Update(ctx.Request.Context(), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "Product updated successfully")
}

// Delete removes a product. Products referenced by order items cannot be
// removed; that surfaces as an integrity error.
func (c *Controller) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// FindAllCategories lists every category.
func (c *Controller) FindAllCategories(ctx *gin.Context) {
	categories, err := c.service.FindAllCategories(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, categories, "Categories retrieved successfully")
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.HandleError(ctx, err, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryInt(ctx *gin.Context, key string, fallback int) int {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
