package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/listing/model"
	"contentstudio-backend/internal/domains/listing/service"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/shared/response"
)

// =====================================================
// LISTING HANDLER
// =====================================================

type ListingHandler struct {
	listingService service.ServiceInterface
}

func NewListingHandler(listingService service.ServiceInterface) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
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

// Generate generates a listing preview for every selected marketplace
// POST /api/v1/listings/generate
func (h *ListingHandler) Generate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.GenerateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	preview, err := h.listingService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, preview)
}

// Save saves the previewed batch, one row per marketplace listing
// POST /api/v1/listings/save
func (h *ListingHandler) Save(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.listingService.Save(c.Request.Context(), userID, req.PreviewID)
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
// POST /api/v1/listings/discard
func (h *ListingHandler) Discard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.listingService.Discard(c.Request.Context(), userID); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": generation.StateIdle})
}

// List lists the user's saved listings newest first
// GET /api/v1/listings?limit=20
func (h *ListingHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	listings, err := h.listingService.List(c.Request.Context(), userID, limit)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	cursor, _ := h.listingService.Cursor(c.Request.Context(), userID)
	response.SuccessWithMeta(c, http.StatusOK, listings, &response.Meta{
		Total:         len(listings),
		RefreshCursor: cursor,
	})
}

// Delete removes one saved listing
// DELETE /api/v1/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.Delete(c.Request.Context(), userID, id); err != nil {
		statusCode, errCode := generation.HTTPError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// State reports the user's current generation cycle state
// GET /api/v1/listings/state
func (h *ListingHandler) State(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	state := h.listingService.State(c.Request.Context(), userID)
	cursor, _ := h.listingService.Cursor(c.Request.Context(), userID)

	response.Success(c, http.StatusOK, gin.H{
		"state":          state,
		"refresh_cursor": cursor,
	})
}
