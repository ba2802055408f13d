package team

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeTeamNotFound       = "TEM001"
	ErrCodeInvitationNotFound = "TEM002"
	ErrCodeNotMember          = "TEM003"
	ErrCodeNotAllowed         = "TEM004"
	ErrCodeAlreadyMember      = "TEM005"
	ErrCodeInvitationHandled  = "TEM006"
)

// Errors
var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrNotMember          = errors.New("not a member of this team")
	ErrNotAllowed         = errors.New("not allowed to manage this team")
	ErrAlreadyMember      = errors.New("already a member of this team")
	ErrInvitationHandled  = errors.New("invitation already handled")
)

// Member roles
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Invitation statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Team is a shared visibility scope. There is no conflict arbitration
// inside a team: concurrent writes are last write wins.
type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Membership struct {
	TeamID    uuid.UUID `json:"team_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Invitation struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	InvitedBy uuid.UUID `json:"invited_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// =====================================================
// REQUEST DTOs
// =====================================================

type CreateTeamRequest struct {
	Name string `json:"name"`
}

func (r CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
	)
}

type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r InviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Role, validation.Required, validation.In(RoleAdmin, RoleMember)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type TeamResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	OwnerID   uuid.UUID        `json:"owner_id"`
	Members   []MemberResponse `json:"members,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type MemberResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type InvitationResponse struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	TeamName  string    `json:"team_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
