package activity

import (
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

// History returns the merged activity log
// GET /api/v1/activity
func (h *Handler) History(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	entries, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, entries)
}

// Export streams the activity log as an xlsx download
// GET /api/v1/activity/export
func (h *Handler) Export(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	buf, err := h.service.Export(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="activity.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
