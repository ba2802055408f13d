package audit

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

// Run audits a site and previews the result
// POST /api/v1/audits/run
func (h *Handler) Run(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	preview, err := h.service.Run(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, preview)
}

// Save promotes the current preview to a saved audit
// POST /api/v1/audits/save
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

// Discard drops the current preview
// POST /api/v1/audits/discard
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

// List lists the user's saved audits newest first
// GET /api/v1/audits?limit=20
func (h *Handler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	audits, err := h.service.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	cursor, _ := h.service.Cursor(c.Request.Context(), userID)
	response.SuccessWithMeta(c, http.StatusOK, audits, &response.Meta{
		Total:         len(audits),
		RefreshCursor: cursor,
	})
}

// Get gets one saved audit
// GET /api/v1/audits/:id
func (h *Handler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid audit ID")
		return
	}

	audit, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		if err == ErrAuditNotFound {
			response.ErrorResponse(c, http.StatusNotFound, ErrCodeAuditNotFound, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, audit)
}

// Delete removes one saved audit
// DELETE /api/v1/audits/:id
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid audit ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// State reports the user's current audit cycle state
// GET /api/v1/audits/state
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
