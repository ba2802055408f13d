package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists gallery rows; binaries live in object storage.
type Repository interface {
	Create(ctx context.Context, img *GeneratedImage) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*GeneratedImage, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*GeneratedImage, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, img *GeneratedImage) error {
	query := `
		INSERT INTO generated_images (
			id, user_id, prompt, size, object_key, url, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		img.ID,
		img.UserID,
		img.Prompt,
		img.Size,
		img.ObjectKey,
		img.URL,
		img.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create generated image: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*GeneratedImage, error) {
	query := `
		SELECT id, user_id, prompt, size, object_key, url, created_at
		FROM generated_images
		WHERE id = $1 AND user_id = $2
	`

	img := &GeneratedImage{}
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&img.ID,
		&img.UserID,
		&img.Prompt,
		&img.Size,
		&img.ObjectKey,
		&img.URL,
		&img.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get generated image: %w", err)
	}

	return img, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*GeneratedImage, error) {
	query := `
		SELECT id, user_id, prompt, size, object_key, url, created_at
		FROM generated_images
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated images: %w", err)
	}
	defer rows.Close()

	images := []*GeneratedImage{}
	for rows.Next() {
		img := &GeneratedImage{}
		if err := rows.Scan(
			&img.ID,
			&img.UserID,
			&img.Prompt,
			&img.Size,
			&img.ObjectKey,
			&img.URL,
			&img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generated image: %w", err)
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM generated_images WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete generated image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrImageNotFound
	}

	return nil
}
