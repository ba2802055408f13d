package model

import "errors"

// Error codes
const (
	ErrCodeListingNotFound = "LST001"
)

// Errors
var (
	ErrListingNotFound = errors.New("product listing not found")
)
