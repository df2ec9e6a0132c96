package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openflea/fleamarket-backend/internal/common"
	"github.com/openflea/fleamarket-backend/internal/domain"
	"github.com/openflea/fleamarket-backend/internal/middleware"
	"github.com/openflea/fleamarket-backend/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "registration payload"
// @Success 201 {object} common.APIResponse{data=domain.UserResponse}
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid registration payload", err)
		return
	}

	user, err := h.service.Register(&req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, user)
}

// Login handles POST /auth/login
// @Summary Log in with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "credentials"
// @Success 200 {object} common.APIResponse{data=service.LoginResponse}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid login payload", err)
		return
	}

	result, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, result, nil)
}

// RefreshToken handles POST /auth/refresh
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} common.APIResponse{data=service.TokenPair}
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "refresh_token is required", err)
		return
	}

	pair, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, pair, nil)
}

// GetCurrentUser handles GET /auth/me
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	user, err := h.service.GetCurrentUser(userID)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

// UpdateProfile handles PUT /auth/me
// @Summary Edit current user profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.UpdateProfileRequest true "profile edits"
// @Success 200 {object} common.APIResponse{data=domain.UserResponse}
// @Router /auth/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid profile payload", err)
		return
	}

	user, err := h.service.UpdateProfile(userID, &req)
	if err != nil {
		common.ServiceErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, user, nil)
}
