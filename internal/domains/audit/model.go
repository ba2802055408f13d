package audit

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeAuditNotFound = "AUD001"
)

var ErrAuditNotFound = errors.New("site audit not found")

// Scores groups the four audit categories, each 0-100.
type Scores struct {
	Performance   int `json:"performance"`
	SEO           int `json:"seo"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"best_practices"`
}

// SiteAudit is one saved audit run.
type SiteAudit struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	URL         string   `json:"url"`
	Scores      Scores   `json:"scores"`
	Suggestions []string `json:"suggestions"`

	CreatedAt time.Time `json:"created_at"`
}

// RunRequest is the audit form.
type RunRequest struct {
	URL string `json:"url"`
}

func (r RunRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.URL),
	)
}

// SaveRequest promotes the current preview to a saved audit.
type SaveRequest struct {
	PreviewID uuid.UUID `json:"preview_id"`
}

func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreviewID, validation.Required),
	)
}

// Artifact is the audit result held in the preview store.
type Artifact struct {
	URL         string   `json:"url"`
	Scores      Scores   `json:"scores"`
	Suggestions []string `json:"suggestions"`
}

type PreviewResponse struct {
	PreviewID uuid.UUID `json:"preview_id"`
	Artifact  Artifact  `json:"artifact"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditResponse struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Scores      Scores    `json:"scores"`
	Suggestions []string  `json:"suggestions"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAuditResponse(a *SiteAudit) *AuditResponse {
	return &AuditResponse{
		ID:          a.ID,
		URL:         a.URL,
		Scores:      a.Scores,
		Suggestions: a.Suggestions,
		CreatedAt:   a.CreatedAt,
	}
}
