package model

import "errors"

// Error codes
const (
	ErrCodeReportNotFound = "SEO001"
)

// Errors
var (
	ErrReportNotFound = errors.New("report not found")
)
