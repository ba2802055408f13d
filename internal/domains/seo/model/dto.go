package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type AnalyzeSEORequest struct {
	URL     string `json:"url"`
	Keyword string `json:"keyword"`
}

func (r AnalyzeSEORequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required, is.URL),
		validation.Field(&r.Keyword, validation.Required, validation.Length(2, 100)),
	)
}

type SaveSEORequest struct {
	PreviewID uuid.UUID `json:"preview_id"`
}

func (r SaveSEORequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreviewID, validation.Required),
	)
}

// =====================================================
// ARTIFACT (preview payload)
// =====================================================

type SEOArtifact struct {
	URL         string   `json:"url"`
	Keyword     string   `json:"keyword"`
	Score       int      `json:"score"`
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type SEOPreviewResponse struct {
	PreviewID uuid.UUID   `json:"preview_id"`
	Artifact  SEOArtifact `json:"artifact"`
	CreatedAt time.Time   `json:"created_at"`
}

type SEOReportResponse struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Keyword     string    `json:"keyword"`
	Score       int       `json:"score"`
	Summary     string    `json:"summary"`
	Suggestions []string  `json:"suggestions"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToSEOReportResponse(r *SEOReport) *SEOReportResponse {
	return &SEOReportResponse{
		ID:          r.ID,
		URL:         r.URL,
		Keyword:     r.Keyword,
		Score:       r.Score,
		Summary:     r.Summary,
		Suggestions: r.Suggestions,
		CreatedAt:   r.CreatedAt,
	}
}
