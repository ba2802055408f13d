package image

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeImageNotFound = "IMG001"
)

var ErrImageNotFound = errors.New("generated image not found")

// Sizes the provider accepts
var Sizes = []string{"256x256", "512x512", "1024x1024"}

// GeneratedImage is one saved gallery image. The binary lives in
// object storage under ObjectKey; the row carries its public URL.
type GeneratedImage struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	Prompt    string `json:"prompt"`
	Size      string `json:"size"`
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`

	CreatedAt time.Time `json:"created_at"`
}

// GenerateRequest is the generation form.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

func (r GenerateRequest) Validate() error {
	sizeValues := make([]interface{}, len(Sizes))
	for i, s := range Sizes {
		sizeValues[i] = s
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Prompt, validation.Required, validation.Length(3, 1000)),
		validation.Field(&r.Size, validation.Required, validation.In(sizeValues...)),
	)
}

// SaveRequest promotes the current preview to the gallery.
type SaveRequest struct {
	PreviewID uuid.UUID `json:"preview_id"`
}

func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreviewID, validation.Required),
	)
}

// Artifact is the generated image held in the preview store. The
// binary is uploaded during generation; saving only records the row,
// discarding removes the object again.
type Artifact struct {
	Prompt    string `json:"prompt"`
	Size      string `json:"size"`
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
}

type PreviewResponse struct {
	PreviewID uuid.UUID `json:"preview_id"`
	Artifact  Artifact  `json:"artifact"`
	CreatedAt time.Time `json:"created_at"`
}

type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	Prompt    string    `json:"prompt"`
	Size      string    `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func toImageResponse(img *GeneratedImage) *ImageResponse {
	return &ImageResponse{
		ID:        img.ID,
		Prompt:    img.Prompt,
		Size:      img.Size,
		URL:       img.URL,
		CreatedAt: img.CreatedAt,
	}
}
