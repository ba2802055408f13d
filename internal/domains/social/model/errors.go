package model

import "errors"

// Error codes
const (
	ErrCodePostNotFound = "SOC001"
)

// Errors
var (
	ErrPostNotFound = errors.New("social post not found")
)
