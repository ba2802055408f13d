package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/seo/model"
	"contentstudio-backend/internal/domains/seo/service"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/shared/response"
)

// =====================================================
// SEO HANDLER
// =====================================================

type SEOHandler struct {
	seoService service.ServiceInterface
}

func NewSEOHandler(seoService service.ServiceInterface) *SEOHandler {
	return &SEOHandler{
		seoService: seoService,
	}
}

func getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// Analyze analyzes a page for a keyword and previews the report
// POST /api/v1/seo/analyze
func (h *SEOHandler) Analyze(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.AnalyzeSEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	preview, err := h.seoService.Analyze(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, preview)
}

// Save promotes the current preview to a saved report
// POST /api/v1/seo/save
func (h *SEOHandler) Save(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.SaveSEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.seoService.Save(c.Request.Context(), userID, req.PreviewID)
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
// POST /api/v1/seo/discard
func (h *SEOHandler) Discard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.seoService.Discard(c.Request.Context(), userID); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": generation.StateIdle})
}

// List lists the user's saved reports newest first
// GET /api/v1/seo?limit=20
func (h *SEOHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reports, err := h.seoService.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	cursor, _ := h.seoService.Cursor(c.Request.Context(), userID)
	response.SuccessWithMeta(c, http.StatusOK, reports, &response.Meta{
		Total:         len(reports),
		RefreshCursor: cursor,
	})
}

// Get gets one saved report
// GET /api/v1/seo/:id
func (h *SEOHandler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.seoService.Get(c.Request.Context(), userID, id)
	if err != nil {
		if err == model.ErrReportNotFound {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeReportNotFound, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, report)
}

// Delete removes one saved report
// DELETE /api/v1/seo/:id
func (h *SEOHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	if err := h.seoService.Delete(c.Request.Context(), userID, id); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// State reports the user's current analysis cycle state
// GET /api/v1/seo/state
func (h *SEOHandler) State(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	state := h.seoService.State(c.Request.Context(), userID)
	cursor, _ := h.seoService.Cursor(c.Request.Context(), userID)

	response.Success(c, http.StatusOK, gin.H{
		"state":          state,
		"refresh_cursor": cursor,
	})
}
