package model

import (
	"time"

	"github.com/google/uuid"
)

// SocialPost is one saved platform post. A multi-platform submission
// saves one row per platform, grouped by BatchID in selection order.
type SocialPost struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	BatchID uuid.UUID `json:"batch_id"`

	Topic    string   `json:"topic"`
	Platform string   `json:"platform"`
	Tone     string   `json:"tone"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`

	// Position preserves the order platforms were selected in
	Position int `json:"position"`

	CreatedAt time.Time `json:"created_at"`
}
