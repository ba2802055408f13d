package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row; content rows reference it by user_id.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`

	PasswordHash string `json:"-"`

	FullName string  `json:"full_name"`
	Company  *string `json:"company,omitempty"`

	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
