package service

import (
	"context"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/listing/model"
	"contentstudio-backend/internal/generation"
)

type ServiceInterface interface {
	// Generate issues one provider call per selected marketplace,
	// sequentially, in selection order, each with its platform category
	Generate(ctx context.Context, userID uuid.UUID, req model.GenerateListingRequest) (*model.ListingPreviewResponse, error)

	// Save promotes the previewed batch; one row per marketplace listing
	Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error)

	// Discard drops the current preview
	Discard(ctx context.Context, userID uuid.UUID) error

	// List returns the owner's listings newest first
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.ListingResponse, error)

	// Delete removes one listing
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// State reports the user's current cycle state
	State(ctx context.Context, userID uuid.UUID) generation.State

	// Cursor returns the refresh counter for polling clients
	Cursor(ctx context.Context, userID uuid.UUID) (int64, error)
}
