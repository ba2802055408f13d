package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Tones accepted by the generation form
const (
	ToneProfessional = "professional"
	ToneCasual       = "casual"
	ToneFriendly     = "friendly"
	ToneFormal       = "formal"
	ToneHumorous     = "humorous"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// GenerateBlogRequest is the generation form. Validation runs locally
// before any provider call.
type GenerateBlogRequest struct {
	Topic     string `json:"topic"`
	Tone      string `json:"tone"`
	WordCount int    `json:"word_count"`
	Language  string `json:"language"`
}

func (r GenerateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Topic, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Tone, validation.Required, validation.In(
			ToneProfessional,
			ToneCasual,
			ToneFriendly,
			ToneFormal,
			ToneHumorous,
		)),
		validation.Field(&r.WordCount, validation.Required, validation.Min(100), validation.Max(3000)),
		validation.Field(&r.Language, validation.Length(2, 32)),
	)
}

// SaveBlogRequest promotes the current preview to a saved post.
type SaveBlogRequest struct {
	PreviewID uuid.UUID `json:"preview_id"`
}

func (r SaveBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreviewID, validation.Required),
	)
}

// =====================================================
// ARTIFACT (preview payload)
// =====================================================

// BlogArtifact is the generated article held in the preview store.
// The persisted row carries exactly these fields, so what the user
// previewed is what the list shows after saving.
type BlogArtifact struct {
	Topic     string `json:"topic"`
	Tone      string `json:"tone"`
	WordCount int    `json:"word_count"`
	Language  string `json:"language"`
	Content   string `json:"content"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type BlogPreviewResponse struct {
	PreviewID uuid.UUID    `json:"preview_id"`
	Artifact  BlogArtifact `json:"artifact"`
	CreatedAt time.Time    `json:"created_at"`
}

type BlogPostResponse struct {
	ID        uuid.UUID `json:"id"`
	Topic     string    `json:"topic"`
	Tone      string    `json:"tone"`
	WordCount int       `json:"word_count"`
	Language  string    `json:"language"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func ToBlogPostResponse(p *BlogPost) *BlogPostResponse {
	return &BlogPostResponse{
		ID:        p.ID,
		Topic:     p.Topic,
		Tone:      p.Tone,
		WordCount: p.WordCount,
		Language:  p.Language,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}
