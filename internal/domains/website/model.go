package website

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeProjectNotFound = "WEB001"
)

var ErrProjectNotFound = errors.New("website project not found")

// Styles accepted by the generation form
const (
	StyleModern    = "modern"
	StyleMinimal   = "minimal"
	StyleClassic   = "classic"
	StyleBold      = "bold"
	StylePlayful   = "playful"
	StyleCorporate = "corporate"
)

var Styles = []string{
	StyleModern,
	StyleMinimal,
	StyleClassic,
	StyleBold,
	StylePlayful,
	StyleCorporate,
}

// Project is one saved generated website.
type Project struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	Style        string `json:"style"`
	Palette      string `json:"palette"`
	Slug         string `json:"slug"`

	HTML string `json:"html"`
	CSS  string `json:"css"`

	CreatedAt time.Time `json:"created_at"`
}

// GenerateRequest is the generation form.
type GenerateRequest struct {
	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	Style        string `json:"style"`
	Palette      string `json:"palette"`
}

func (r GenerateRequest) Validate() error {
	styleValues := make([]interface{}, len(Styles))
	for i, s := range Styles {
		styleValues[i] = s
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.BusinessName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Industry, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Style, validation.Required, validation.In(styleValues...)),
		validation.Field(&r.Palette, validation.Length(0, 200)),
	)
}

// SaveRequest promotes the current preview to a saved project.
type SaveRequest struct {
	PreviewID uuid.UUID `json:"preview_id"`
}

func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreviewID, validation.Required),
	)
}

// Artifact is the generated site held in the preview store.
type Artifact struct {
	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	Style        string `json:"style"`
	Palette      string `json:"palette"`
	Slug         string `json:"slug"`
	HTML         string `json:"html"`
	CSS          string `json:"css"`
}

type PreviewResponse struct {
	PreviewID uuid.UUID `json:"preview_id"`
	Artifact  Artifact  `json:"artifact"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	Industry     string    `json:"industry"`
	Style        string    `json:"style"`
	Palette      string    `json:"palette"`
	Slug         string    `json:"slug"`
	HTML         string    `json:"html"`
	CSS          string    `json:"css"`
	CreatedAt    time.Time `json:"created_at"`
}

func toProjectResponse(p *Project) *ProjectResponse {
	return &ProjectResponse{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		Industry:     p.Industry,
		Style:        p.Style,
		Palette:      p.Palette,
		Slug:         p.Slug,
		HTML:         p.HTML,
		CSS:          p.CSS,
		CreatedAt:    p.CreatedAt,
	}
}

// ListItemResponse omits the page source, which can be large.
type ListItemResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	Industry     string    `json:"industry"`
	Style        string    `json:"style"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
}

func toListItemResponse(p *Project) *ListItemResponse {
	return &ListItemResponse{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		Industry:     p.Industry,
		Style:        p.Style,
		Slug:         p.Slug,
		CreatedAt:    p.CreatedAt,
	}
}
