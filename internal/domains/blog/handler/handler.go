package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/blog/model"
	"contentstudio-backend/internal/domains/blog/service"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/shared/response"
)

// =====================================================
// BLOG HANDLER
// =====================================================

type BlogHandler struct {
	blogService service.ServiceInterface
}

func NewBlogHandler(blogService service.ServiceInterface) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
	}
}

// getUserID extracts user ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// Generate generates an article preview
// POST /api/v1/blog/generate
func (h *BlogHandler) Generate(c *gin.Context) {
	// Step 1: Get user ID from JWT
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Bind request body
	var req model.GenerateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Step 3: Run the generation cycle (validates before any provider call)
	preview, err := h.blogService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return the preview
	response.Success(c, http.StatusOK, preview)
}

// Save promotes the current preview to a saved post
// POST /api/v1/blog/save
func (h *BlogHandler) Save(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.SaveBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.blogService.Save(c.Request.Context(), userID, req.PreviewID)
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
// POST /api/v1/blog/discard
func (h *BlogHandler) Discard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.blogService.Discard(c.Request.Context(), userID); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": generation.StateIdle})
}

// List lists the user's saved posts newest first
// GET /api/v1/blog?limit=20
func (h *BlogHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, err := h.blogService.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	cursor, _ := h.blogService.Cursor(c.Request.Context(), userID)
	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Total:         len(posts),
		RefreshCursor: cursor,
	})
}

// Get gets one saved post
// GET /api/v1/blog/:id
func (h *BlogHandler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.blogService.Get(c.Request.Context(), userID, id)
	if err != nil {
		if err == model.ErrPostNotFound {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodePostNotFound, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, post)
}

// Delete removes one saved post
// DELETE /api/v1/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), userID, id); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// State reports the user's current generation cycle state
// GET /api/v1/blog/state
func (h *BlogHandler) State(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	state := h.blogService.State(c.Request.Context(), userID)
	cursor, _ := h.blogService.Cursor(c.Request.Context(), userID)

	response.Success(c, http.StatusOK, gin.H{
		"state":          state,
		"refresh_cursor": cursor,
	})
}
