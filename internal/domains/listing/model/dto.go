package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Marketplaces accepted by the generation form
const (
	PlatformShopify   = "shopify"
	PlatformAmazon    = "amazon"
	PlatformEtsy      = "etsy"
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
)

var Platforms = []string{
	PlatformShopify,
	PlatformAmazon,
	PlatformEtsy,
	PlatformInstagram,
	PlatformFacebook,
}

// PlatformCategories maps each marketplace to its listing category
// taxonomy root. Included in the per-platform prompt and stored on the
// saved row.
var PlatformCategories = map[string]string{
	PlatformShopify:   "Online Store > Products",
	PlatformAmazon:    "Amazon Marketplace > General",
	PlatformEtsy:      "Etsy > Handmade & Vintage",
	PlatformInstagram: "Instagram Shopping > Catalog",
	PlatformFacebook:  "Facebook Marketplace > Goods",
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

type GenerateListingRequest struct {
	ProductName string          `json:"product_name"`
	Features    string          `json:"features"`
	Price       decimal.Decimal `json:"price"`
	Platforms   []string        `json:"platforms"`
}

func (r GenerateListingRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.ProductName, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Features, validation.Length(0, 2000)),
		validation.Field(&r.Platforms,
			validation.Required.Error("at least one platform must be selected"),
			validation.Length(1, len(Platforms)),
			validation.Each(platformRule()),
		),
	); err != nil {
		return err
	}
	if r.Price.IsNegative() {
		return validation.NewError("validation_price_negative", "price must not be negative")
	}
	return nil
}

type SaveListingRequest struct {
	PreviewID uuid.UUID `json:"preview_id"`
}

func (r SaveListingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PreviewID, validation.Required),
	)
}

// =====================================================
// ARTIFACT (preview payload)
// =====================================================

type ListingArtifact struct {
	Platform    string `json:"platform"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ListingBatchArtifact struct {
	ProductName string            `json:"product_name"`
	Features    string            `json:"features"`
	Price       decimal.Decimal   `json:"price"`
	Listings    []ListingArtifact `json:"listings"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type ListingPreviewResponse struct {
	PreviewID uuid.UUID            `json:"preview_id"`
	Artifact  ListingBatchArtifact `json:"artifact"`
	CreatedAt time.Time            `json:"created_at"`
}

type ListingResponse struct {
	ID          uuid.UUID       `json:"id"`
	BatchID     uuid.UUID       `json:"batch_id"`
	ProductName string          `json:"product_name"`
	Features    string          `json:"features"`
	Price       decimal.Decimal `json:"price"`
	Platform    string          `json:"platform"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Position    int             `json:"position"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToListingResponse(l *ProductListing) *ListingResponse {
	return &ListingResponse{
		ID:          l.ID,
		BatchID:     l.BatchID,
		ProductName: l.ProductName,
		Features:    l.Features,
		Price:       l.Price,
		Platform:    l.Platform,
		Category:    l.Category,
		Title:       l.Title,
		Description: l.Description,
		Position:    l.Position,
		CreatedAt:   l.CreatedAt,
	}
}
