package repository

import (
	"context"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/seo/model"
)

// =====================================================
// SEO REPOSITORY INTERFACE
// =====================================================

type SEORepository interface {
	// Create inserts a saved report
	Create(ctx context.Context, report *model.SEOReport) error

	// GetByID gets one report scoped to its owner
	GetByID(ctx context.Context, userID, id uuid.UUID) (*model.SEOReport, error)

	// ListByUser lists the owner's reports newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SEOReport, error)

	// Delete removes one report scoped to its owner
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
