package image

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contentstudio-backend/internal/generation"
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

// Generate generates an image and previews it
// POST /api/v1/images/generate
func (h *Handler) Generate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	preview, err := h.service.Generate(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, preview)
}

// Save promotes the current preview to the gallery
// POST /api/v1/images/save
func (h *Handler) Save(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Save(c.Request.Context(), userID, req.PreviewID)
	if err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusCreated, result, &response.Meta{
		RefreshCursor: result.RefreshCursor,
	})
}

// Discard drops the current preview and its uploaded binary
// POST /api/v1/images/discard
func (h *Handler) Discard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.service.Discard(c.Request.Context(), userID); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": generation.StateIdle})
}

// List lists the user's gallery newest first
// GET /api/v1/images?limit=20
func (h *Handler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	images, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	cursor, _ := h.service.Cursor(c.Request.Context(), userID)
	response.SuccessWithMeta(c, http.StatusOK, images, &response.Meta{
		Total:         len(images),
		RefreshCursor: cursor,
	})
}

// Delete removes one gallery image and its binary
// DELETE /api/v1/images/:id
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid image ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// State reports the user's current generation cycle state
// GET /api/v1/images/state
func (h *Handler) State(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	state := h.service.State(c.Request.Context(), userID)
	cursor, _ := h.service.Cursor(c.Request.Context(), userID)

	response.Success(c, http.StatusOK, gin.H{
		"state":          state,
		"refresh_cursor": cursor,
	})
}
