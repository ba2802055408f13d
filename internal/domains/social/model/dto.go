package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Platforms accepted by the generation form
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformTikTok    = "tiktok"
)

var Platforms = []string{
	PlatformInstagram,
	PlatformFacebook,
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformTikTok,
}

func platformRule() validation.Rule {
	values := make([]interface{}, len(Platforms))
	for i, p := range Platforms {
		values[i] = p
	}
	return validation.In(values...)
}

// =====================================================
// REQUEST DTOs
// =====================================================

// GenerateSocialRequest is the generation form. At least one platform
// must be selected; platform order is preserved through the batch.
type GenerateSocialRequest struct {
	Topic           string   `json:"topic"`
	Platforms       []string `json:"platforms"`
	Tone            string   `json:"tone"`
	IncludeHashtags bool     `json:"include_hashtags"`
}

func (r GenerateSocialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Topic, validation.Required, validation.Length(3, 200)),
		validation.Field(&r.Platforms,
			validation.Required.Error("at least one platform must be selected"),
			validation.Length(1, len(Platforms)),
			validation.Each(platformRule()),
		),
		validation.Field(&r.Tone, validation.Required, validation.Length(2, 32)),
	)
}

type SaveSocialRequest struct {
	PreviewID uuid.UUID `json:"preview_id"`
}

func (r SaveSocialRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreviewID, validation.Required),
	)
}

// =====================================================
// ARTIFACT (preview payload)
// =====================================================

// SocialPostArtifact is one generated platform post within a batch.
type SocialPostArtifact struct {
	Platform string   `json:"platform"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// SocialBatchArtifact holds the whole batch; Posts is ordered by the
// platforms' selection order.
type SocialBatchArtifact struct {
	Topic string               `json:"topic"`
	Tone  string               `json:"tone"`
	Posts []SocialPostArtifact `json:"posts"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type SocialPreviewResponse struct {
	PreviewID uuid.UUID           `json:"preview_id"`
	Artifact  SocialBatchArtifact `json:"artifact"`
	CreatedAt time.Time           `json:"created_at"`
}

type SocialPostResponse struct {
	ID        uuid.UUID `json:"id"`
	BatchID   uuid.UUID `json:"batch_id"`
	Topic     string    `json:"topic"`
	Platform  string    `json:"platform"`
	Tone      string    `json:"tone"`
	Content   string    `json:"content"`
	Hashtags  []string  `json:"hashtags"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSocialPostResponse(p *SocialPost) *SocialPostResponse {
	return &SocialPostResponse{
		ID:        p.ID,
		BatchID:   p.BatchID,
		Topic:     p.Topic,
		Platform:  p.Platform,
		Tone:      p.Tone,
		Content:   p.Content,
		Hashtags:  p.Hashtags,
		Position:  p.Position,
		CreatedAt: p.CreatedAt,
	}
}
