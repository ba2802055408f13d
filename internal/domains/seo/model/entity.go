package model

import (
	"time"

	"github.com/google/uuid"
)

// SEOReport is one saved keyword analysis.
type SEOReport struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	URL     string `json:"url"`
	Keyword string `json:"keyword"`

	// Score is 0-100
	Score       int      `json:"score"`
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`

	CreatedAt time.Time `json:"created_at"`
}
