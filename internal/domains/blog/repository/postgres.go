package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contentstudio-backend/internal/domains/blog/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBlogRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &postgresBlogRepository{pool: pool}
}

func (r *postgresBlogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	query := `
		INSERT INTO blog_posts (
			id, user_id, topic, tone, word_count, language, content, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.UserID,
		post.Topic,
		post.Tone,
		post.WordCount,
		post.Language,
		post.Content,
		post.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}

	return nil
}

func (r *postgresBlogRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.BlogPost, error) {
	query := `
		SELECT id, user_id, topic, tone, word_count, language, content, created_at
		FROM blog_posts
		WHERE id = $1 AND user_id = $2
	`

	post := &model.BlogPost{}
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&post.ID,
		&post.UserID,
		&post.Topic,
		&post.Tone,
		&post.WordCount,
		&post.Language,
		&post.Content,
		&post.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}

	return post, nil
}

func (r *postgresBlogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.BlogPost, error) {
	// Deterministic order: id breaks created_at ties
	query := `
		SELECT id, user_id, topic, tone, word_count, language, content, created_at
		FROM blog_posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []*model.BlogPost{}
	for rows.Next() {
		post := &model.BlogPost{}
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Topic,
			&post.Tone,
			&post.WordCount,
			&post.Language,
			&post.Content,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (r *postgresBlogRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM blog_posts WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}
