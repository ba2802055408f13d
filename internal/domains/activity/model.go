package activity

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one row of the dashboard activity log: a generated artifact
// reduced to its table, a display title and its creation time.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Table     string    `json:"table"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
