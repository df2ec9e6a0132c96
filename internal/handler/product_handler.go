package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openflea/fleamarket-backend/internal/common"
	"github.com/openflea/fleamarket-backend/internal/domain"
	"github.com/openflea/fleamarket-backend/internal/middleware"
	"github.com/openflea/fleamarket-backend/internal/service"
)

// ProductHandler handles listing HTTP requests
type ProductHandler struct {
	service service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products
// @Summary List products, newest first
// @Tags products
// @Produce json
// @Param category query string false "category filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} common.APIResponse{data=[]domain.ProductResponse}
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit := 10
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	products, meta, err := h.service.List(c.Query("category"), page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list products", err)
		return
	}

	common.SuccessResponse(c, products, meta)
}

// Categories handles GET /products/categories
// @Summary Distinct categories in use
// @Tags products
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]string}
// @Router /products/categories [get]
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list categories", err)
		return
	}

	common.SuccessResponse(c, categories, nil)
}

// Get handles GET /products/:id
// @Summary Product detail
// @Tags products
// @Produce json
// @Param id path int true "product ID"
// @Success 200 {object} common.APIResponse{data=domain.ProductResponse}
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	product, err := h.service.Get(id)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, product, nil)
}

// Create handles POST /products
// @Summary Create a listing (seller only)
// @Tags products
// @Accept json
// @Produce json
// @Param request body domain.CreateProductRequest true "listing payload"
// @Success 201 {object} common.APIResponse{data=domain.ProductResponse}
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid listing payload", err)
		return
	}

	product, err := h.service.Create(userID, &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, product)
}

// Update handles PUT /products/:id
// @Summary Edit a listing (owner only)
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "product ID"
// @Param request body domain.UpdateProductRequest true "listing edits"
// @Success 200 {object} common.APIResponse{data=domain.ProductResponse}
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid listing payload", err)
		return
	}

	product, err := h.service.Update(userID, id, &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, product, nil)
}

// Delete handles DELETE /products/:id
// @Summary Delete a listing (owner only)
// @Tags products
// @Produce json
// @Param id path int true "product ID"
// @Success 204
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	if err := h.service.Delete(userID, id); err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
