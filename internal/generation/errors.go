package generation

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidation       = "GEN001"
	ErrCodeProvider         = "GEN002"
	ErrCodePersistence      = "GEN003"
	ErrCodePreviewNotFound  = "GEN004"
	ErrCodePreviewMismatch  = "GEN005"
	ErrCodeRequestInFlight  = "GEN006"
	ErrCodeArtifactNotFound = "GEN007"
)

// Sentinel errors
var (
	ErrPreviewNotFound  = errors.New("no preview to act on")
	ErrRequestInFlight  = errors.New("a generation request is already in flight")
	ErrArtifactNotFound = errors.New("artifact not found")
)

// ValidationError: a required form field is missing or malformed. Caught
// before any network call is made.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(err error) *ValidationError {
	return &ValidationError{
		Message: err.Error(),
		Err:     err,
	}
}

// GenerationError: the provider returned a failure or was unreachable.
// The message carries the provider's wording verbatim; the attempt is
// abandoned, any prior preview is left untouched.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }
func (e *GenerationError) Unwrap() error { return e.Err }

func NewGenerationError(err error) *GenerationError {
	return &GenerationError{
		Message: err.Error(),
		Err:     err,
	}
}

// PersistenceError: a write or delete against the data store failed.
// The preview survives so the user can retry the save without
// regenerating.
type PersistenceError struct {
	Code    string
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(err error) *PersistenceError {
	return &PersistenceError{
		Code:    ErrCodePersistence,
		Message: "failed to persist artifact",
		Err:     err,
	}
}

func NewPreviewNotFoundError() *PersistenceError {
	return &PersistenceError{
		Code:    ErrCodePreviewNotFound,
		Message: "no preview to save",
		Err:     ErrPreviewNotFound,
	}
}

func NewPreviewMismatchError() *PersistenceError {
	return &PersistenceError{
		Code:    ErrCodePreviewMismatch,
		Message: "preview id does not match the current preview",
		Err:     ErrPreviewNotFound,
	}
}
