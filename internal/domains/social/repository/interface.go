package repository

import (
	"context"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/social/model"
)

// =====================================================
// SOCIAL REPOSITORY INTERFACE
// =====================================================

type SocialRepository interface {
	// CreateBatch inserts all posts of one submission in one transaction
	CreateBatch(ctx context.Context, posts []*model.SocialPost) error

	// ListByUser lists the owner's posts newest first, batch order kept
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SocialPost, error)

	// Delete removes one post scoped to its owner
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
