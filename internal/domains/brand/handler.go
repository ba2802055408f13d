package brand

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"contentstudio-backend/internal/shared/response"
)

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

// Upsert replaces the caller's brand kit
// PUT /api/v1/brand
func (h *Handler) Upsert(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req UpsertKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	kit, err := h.service.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		if err == ErrKitNotFound {
			response.ErrorResponse(c, http.StatusNotFound, ErrCodeKitNotFound, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, kit)
}

// Get returns the caller's brand kit
// GET /api/v1/brand
func (h *Handler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	kit, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if err == ErrKitNotFound {
			response.ErrorResponse(c, http.StatusNotFound, ErrCodeKitNotFound, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, kit)
}

// UploadLogo stores a resized logo and thumbnail
// POST /api/v1/brand/logo  (multipart field "logo")
func (h *Handler) UploadLogo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		response.BadRequest(c, "logo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "cannot read uploaded file")
		return
	}

	kit, err := h.service.UploadLogo(c.Request.Context(), userID, data)
	if err != nil {
		if err == ErrKitNotFound {
			response.ErrorResponse(c, http.StatusNotFound, ErrCodeKitNotFound, err.Error())
			return
		}
		response.ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidLogo, err.Error())
		return
	}

	response.Success(c, http.StatusOK, kit)
}

// Delete removes the caller's brand kit and stored logo
// DELETE /api/v1/brand
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		if err == ErrKitNotFound {
			response.ErrorResponse(c, http.StatusNotFound, ErrCodeKitNotFound, err.Error())
			return
		}
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "brand kit deleted"})
}
