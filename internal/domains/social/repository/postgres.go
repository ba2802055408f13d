package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"contentstudio-backend/internal/domains/social/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresSocialRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSocialRepository(pool *pgxpool.Pool) SocialRepository {
	return &postgresSocialRepository{pool: pool}
}

func (r *postgresSocialRepository) CreateBatch(ctx context.Context, posts []*model.SocialPost) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO social_posts (
			id, user_id, batch_id, topic, platform, tone, content, hashtags, position, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, post := range posts {
		if _, err := tx.Exec(ctx, query,
			post.ID,
			post.UserID,
			post.BatchID,
			post.Topic,
			post.Platform,
			post.Tone,
			post.Content,
			pq.Array(post.Hashtags),
			post.Position,
			post.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to create social post: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit social posts: %w", err)
	}
	return nil
}

func (r *postgresSocialRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SocialPost, error) {
	// Newest batch first; inside a batch, selection order
	query := `
		SELECT id, user_id, batch_id, topic, platform, tone, content, hashtags, position, created_at
		FROM social_posts
		WHERE user_id = $1
		ORDER BY created_at DESC, batch_id DESC, position ASC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list social posts: %w", err)
	}
	defer rows.Close()

	posts := []*model.SocialPost{}
	for rows.Next() {
		post := &model.SocialPost{}
		var hashtags []string
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.BatchID,
			&post.Topic,
			&post.Platform,
			&post.Tone,
			&post.Content,
			pq.Array(&hashtags),
			&post.Position,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan social post: %w", err)
		}
		post.Hashtags = hashtags
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (r *postgresSocialRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM social_posts WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete social post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}
