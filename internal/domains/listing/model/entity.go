package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductListing is one saved marketplace listing. A multi-platform
// submission saves one row per platform, grouped by BatchID.
type ProductListing struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	BatchID uuid.UUID `json:"batch_id"`

	ProductName string          `json:"product_name"`
	Features    string          `json:"features"`
	Price       decimal.Decimal `json:"price"`

	Platform    string `json:"platform"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
