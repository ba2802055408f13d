package repository

import (
	"context"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/blog/model"
)

// =====================================================
// BLOG REPOSITORY INTERFACE
// =====================================================

type BlogRepository interface {
	// Create inserts a saved post
	Create(ctx context.Context, post *model.BlogPost) error

	// GetByID gets one post scoped to its owner
	GetByID(ctx context.Context, userID, id uuid.UUID) (*model.BlogPost, error)

	// ListByUser lists the owner's posts newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.BlogPost, error)

	// Delete removes one post scoped to its owner
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
