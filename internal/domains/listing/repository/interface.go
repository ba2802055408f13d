package repository

import (
	"context"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/listing/model"
)

// =====================================================
// LISTING REPOSITORY INTERFACE
// =====================================================

type ListingRepository interface {
	// CreateBatch inserts all listings of one submission in one transaction
	CreateBatch(ctx context.Context, listings []*model.ProductListing) error

	// ListByUser lists the owner's listings newest first, batch order kept
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.ProductListing, error)

	// Delete removes one listing scoped to its owner
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
