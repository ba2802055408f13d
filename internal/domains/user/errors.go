package user

import "errors"

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailTaken         = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeInactiveAccount    = "USR004"
	ErrCodeInvalidToken       = "USR005"
)

// Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
