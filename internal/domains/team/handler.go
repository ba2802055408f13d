package team

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

func mapTeamError(err error) (int, string) {
	switch err {
	case ErrTeamNotFound:
		return http.StatusNotFound, ErrCodeTeamNotFound
	case ErrInvitationNotFound:
		return http.StatusNotFound, ErrCodeInvitationNotFound
	case ErrNotMember:
		return http.StatusForbidden, ErrCodeNotMember
	case ErrNotAllowed:
		return http.StatusForbidden, ErrCodeNotAllowed
	case ErrAlreadyMember:
		return http.StatusConflict, ErrCodeAlreadyMember
	case ErrInvitationHandled:
		return http.StatusConflict, ErrCodeInvitationHandled
	default:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	}
}

// Create makes a team with the caller as owner
// POST /api/v1/teams
func (h *Handler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), userID, req)
	if err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, team)
}

// List returns the caller's teams
// GET /api/v1/teams
func (h *Handler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	teams, err := h.service.ListMyTeams(c.Request.Context(), userID)
	if err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, teams)
}

// Get returns one team with members
// GET /api/v1/teams/:id
func (h *Handler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team ID")
		return
	}

	team, err := h.service.GetTeam(c.Request.Context(), userID, teamID)
	if err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, team)
}

// Invite records a pending invitation
// POST /api/v1/teams/:id/invitations
func (h *Handler) Invite(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team ID")
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	inv, err := h.service.Invite(c.Request.Context(), userID, teamID, req)
	if err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, inv)
}

// RemoveMember takes a member out of a team
// DELETE /api/v1/teams/:id/members/:userId
func (h *Handler) RemoveMember(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team ID")
		return
	}

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "invalid member ID")
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), userID, teamID, memberID); err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "member removed"})
}

// ListInvitations returns the caller's pending invitations
// GET /api/v1/invitations
func (h *Handler) ListInvitations(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		response.Unauthorized(c, "authentication required")
		return
	}

	invitations, err := h.service.ListMyInvitations(c.Request.Context(), email)
	if err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, invitations)
}

// Accept joins the caller to the inviting team
// POST /api/v1/invitations/:id/accept
func (h *Handler) Accept(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid invitation ID")
		return
	}

	team, err := h.service.Accept(c.Request.Context(), userID, c.GetString("email"), invitationID)
	if err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, team)
}

// Reject declines an invitation
// POST /api/v1/invitations/:id/reject
func (h *Handler) Reject(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid invitation ID")
		return
	}

	if err := h.service.Reject(c.Request.Context(), c.GetString("email"), invitationID); err != nil {
		statusCode, errCode := mapTeamError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "invitation rejected"})
}
