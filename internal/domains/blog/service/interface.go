package service

import (
	"context"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/blog/model"
	"contentstudio-backend/internal/generation"
)

type ServiceInterface interface {
	// Generate runs one generation cycle and returns the preview
	Generate(ctx context.Context, userID uuid.UUID, req model.GenerateBlogRequest) (*model.BlogPreviewResponse, error)

	// Save promotes the current preview to a saved post
	Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error)

	// Discard drops the current preview
	Discard(ctx context.Context, userID uuid.UUID) error

	// List returns the owner's saved posts newest first
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.BlogPostResponse, error)

	// Get returns one saved post
	Get(ctx context.Context, userID, id uuid.UUID) (*model.BlogPostResponse, error)

	// Delete removes a saved post and signals a list refresh
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// State reports the user's current cycle state
	State(ctx context.Context, userID uuid.UUID) generation.State

	// Cursor returns the refresh counter for polling clients
	Cursor(ctx context.Context, userID uuid.UUID) (int64, error)
}
