package service

import (
	"context"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/seo/model"
	"contentstudio-backend/internal/generation"
)

type ServiceInterface interface {
	// Analyze runs one analysis cycle and returns the preview
	Analyze(ctx context.Context, userID uuid.UUID, req model.AnalyzeSEORequest) (*model.SEOPreviewResponse, error)

	// Save promotes the current preview to a saved report
	Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error)

	// Discard drops the current preview
	Discard(ctx context.Context, userID uuid.UUID) error

	// List returns the owner's reports newest first
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SEOReportResponse, error)

	// Get returns one report
	Get(ctx context.Context, userID, id uuid.UUID) (*model.SEOReportResponse, error)

	// Delete removes one report
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// State reports the user's current cycle state
	State(ctx context.Context, userID uuid.UUID) generation.State

	// Cursor returns the refresh counter for polling clients
	Cursor(ctx context.Context, userID uuid.UUID) (int64, error)
}
