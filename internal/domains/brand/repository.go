package brand

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type Repository interface {
	Upsert(ctx context.Context, kit *Kit) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*Kit, error)
	UpdateLogo(ctx context.Context, userID uuid.UUID, logoKey, logoURL, thumbKey, thumbURL string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// Upsert replaces the kit fields wholesale, keeping the stored logo.
// One row per user, enforced by the unique index on user_id.
func (r *postgresRepository) Upsert(ctx context.Context, kit *Kit) error {
	query := `
		INSERT INTO brand_kits (
			id, user_id, brand_name, description, colors, fonts, hashtags, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			brand_name  = EXCLUDED.brand_name,
			description = EXCLUDED.description,
			colors      = EXCLUDED.colors,
			fonts       = EXCLUDED.fonts,
			hashtags    = EXCLUDED.hashtags,
			updated_at  = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		kit.ID, kit.UserID, kit.BrandName, kit.Description,
		pq.Array(kit.Colors), pq.Array(kit.Fonts), pq.Array(kit.Hashtags),
		kit.CreatedAt, kit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert brand kit: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*Kit, error) {
	query := `
		SELECT id, user_id, brand_name, description, colors, fonts, hashtags,
		       COALESCE(logo_key, ''), COALESCE(logo_url, ''),
		       COALESCE(thumb_key, ''), COALESCE(thumb_url, ''),
		       created_at, updated_at
		FROM brand_kits
		WHERE user_id = $1
	`

	kit := &Kit{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&kit.ID, &kit.UserID, &kit.BrandName, &kit.Description,
		pq.Array(&kit.Colors), pq.Array(&kit.Fonts), pq.Array(&kit.Hashtags),
		&kit.LogoKey, &kit.LogoURL, &kit.ThumbKey, &kit.ThumbURL,
		&kit.CreatedAt, &kit.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKitNotFound
		}
		return nil, fmt.Errorf("failed to get brand kit: %w", err)
	}
	return kit, nil
}

func (r *postgresRepository) UpdateLogo(ctx context.Context, userID uuid.UUID, logoKey, logoURL, thumbKey, thumbURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE brand_kits SET logo_key = $2, logo_url = $3, thumb_key = $4, thumb_url = $5, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, logoKey, logoURL, thumbKey, thumbURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update logo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrKitNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brand_kits WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete brand kit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrKitNotFound
	}
	return nil
}
