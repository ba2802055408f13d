package generation

import (
	"errors"
	"net/http"
)

// HTTPError maps a lifecycle error to an HTTP status and error code.
// Domain handlers layer their own errors on top of this mapping.
func HTTPError(err error) (int, string) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, ErrCodeValidation
	}

	if errors.Is(err, ErrRequestInFlight) {
		return http.StatusConflict, ErrCodeRequestInFlight
	}
	if errors.Is(err, ErrArtifactNotFound) {
		return http.StatusNotFound, ErrCodeArtifactNotFound
	}

	var gErr *GenerationError
	if errors.As(err, &gErr) {
		// The provider failed, not this service
		return http.StatusBadGateway, ErrCodeProvider
	}

	var pErr *PersistenceError
	if errors.As(err, &pErr) {
		switch pErr.Code {
		case ErrCodePreviewNotFound:
			return http.StatusNotFound, pErr.Code
		case ErrCodePreviewMismatch:
			return http.StatusConflict, pErr.Code
		default:
			return http.StatusInternalServerError, pErr.Code
		}
	}

	return http.StatusInternalServerError, ErrCodePersistence
}
