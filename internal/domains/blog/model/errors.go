package model

import "errors"

// Error codes
const (
	ErrCodePostNotFound = "BLG001"
)

// Errors
var (
	ErrPostNotFound = errors.New("blog post not found")
)
