package brand

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeKitNotFound = "BRD001"
	ErrCodeInvalidLogo = "BRD002"
)

// Errors
var (
	ErrKitNotFound = errors.New("brand kit not found")
)

// Kit is the per-user brand kit. One row per user; updates are a
// wholesale upsert, last write wins.
type Kit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	BrandName   string    `json:"brand_name"`
	Description string    `json:"description"`
	Colors      []string  `json:"colors"`
	Fonts       []string  `json:"fonts"`
	Hashtags    []string  `json:"hashtags"`
	LogoKey     string    `json:"-"`
	LogoURL     string    `json:"logo_url"`
	ThumbKey    string    `json:"-"`
	ThumbURL    string    `json:"thumb_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// =====================================================
// REQUEST DTOs
// =====================================================

// UpsertKitRequest replaces the full kit; omitted slices clear their
// fields. The logo is uploaded separately.
type UpsertKitRequest struct {
	BrandName   string   `json:"brand_name"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
	Fonts       []string `json:"fonts"`
	Hashtags    []string `json:"hashtags"`
}

func (r UpsertKitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BrandName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Colors, validation.Length(0, 12)),
		validation.Field(&r.Fonts, validation.Length(0, 6)),
		validation.Field(&r.Hashtags, validation.Length(0, 30)),
	)
}
