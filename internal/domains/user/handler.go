package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contentstudio-backend/internal/shared/response"
)

// =====================================================
// HANDLER
// =====================================================

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

func mapAuthError(err error) (int, string) {
	switch err {
	case ErrUserNotFound:
		return http.StatusNotFound, ErrCodeUserNotFound
	case ErrEmailTaken:
		return http.StatusConflict, ErrCodeEmailTaken
	case ErrInvalidCredentials:
		return http.StatusUnauthorized, ErrCodeInvalidCredentials
	case ErrInactiveAccount:
		return http.StatusForbidden, ErrCodeInactiveAccount
	case ErrInvalidToken:
		return http.StatusUnauthorized, ErrCodeInvalidToken
	default:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}
}

// Register creates an account
// POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapAuthError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login verifies credentials
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapAuthError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Refresh exchanges a refresh token for a new pair
// POST /api/v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapAuthError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Logout ends the session. Tokens are stateless, so logging out is a
// client-side token drop; the endpoint exists so the dashboard has one
// place to hit and the event shows up in the request log.
// POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// GetProfile returns the current user's profile
// GET /api/v1/users/me
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		statusCode, errCode := mapAuthError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile applies partial profile changes
// PUT /api/v1/users/me
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := mapAuthError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// ChangePassword verifies the current password before setting a new one
// PUT /api/v1/users/me/password
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		statusCode, errCode := mapAuthError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"changed": true})
}
