package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"contentstudio-backend/internal/domains/listing/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &postgresListingRepository{pool: pool}
}

func (r *postgresListingRepository) CreateBatch(ctx context.Context, listings []*model.ProductListing) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO product_listings (
			id, user_id, batch_id, product_name, features, price,
			platform, category, title, description, position, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, listing := range listings {
		if _, err := tx.Exec(ctx, query,
			listing.ID,
			listing.UserID,
			listing.BatchID,
			listing.ProductName,
			listing.Features,
			listing.Price,
			listing.Platform,
			listing.Category,
			listing.Title,
			listing.Description,
			listing.Position,
			listing.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to create product listing: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit product listings: %w", err)
	}
	return nil
}

func (r *postgresListingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.ProductListing, error) {
	query := `
		SELECT id, user_id, batch_id, product_name, features, price,
			platform, category, title, description, position, created_at
		FROM product_listings
		WHERE user_id = $1
		ORDER BY created_at DESC, batch_id DESC, position ASC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list product listings: %w", err)
	}
	defer rows.Close()

	listings := []*model.ProductListing{}
	for rows.Next() {
		listing := &model.ProductListing{}
		if err := rows.Scan(
			&listing.ID,
			&listing.UserID,
			&listing.BatchID,
			&listing.ProductName,
			&listing.Features,
			&listing.Price,
			&listing.Platform,
			&listing.Category,
			&listing.Title,
			&listing.Description,
			&listing.Position,
			&listing.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product listing: %w", err)
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

func (r *postgresListingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM product_listings WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete product listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrListingNotFound
	}

	return nil
}
