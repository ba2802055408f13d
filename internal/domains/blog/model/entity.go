package model

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is a saved generated article. Posts are never edited in
// place: a new generation replaces nothing, it previews until saved.
type BlogPost struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	// Form fields the article was generated from
	Topic     string `json:"topic"`
	Tone      string `json:"tone"`
	WordCount int    `json:"word_count"`
	Language  string `json:"language"`

	// Generated content
	Content string `json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
