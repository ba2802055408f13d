package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// Repository persists audit runs.
type Repository interface {
	Create(ctx context.Context, audit *SiteAudit) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*SiteAudit, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*SiteAudit, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, audit *SiteAudit) error {
	query := `
		INSERT INTO site_audits (
			id, user_id, url,
			performance_score, seo_score, accessibility_score, best_practices_score,
			suggestions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		audit.ID,
		audit.UserID,
		audit.URL,
		audit.Scores.Performance,
		audit.Scores.SEO,
		audit.Scores.Accessibility,
		audit.Scores.BestPractices,
		pq.Array(audit.Suggestions),
		audit.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create site audit: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*SiteAudit, error) {
	query := `
		SELECT id, user_id, url,
			performance_score, seo_score, accessibility_score, best_practices_score,
			suggestions, created_at
		FROM site_audits
		WHERE id = $1 AND user_id = $2
	`

	audit := &SiteAudit{}
	var suggestions []string

	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&audit.ID,
		&audit.UserID,
		&audit.URL,
		&audit.Scores.Performance,
		&audit.Scores.SEO,
		&audit.Scores.Accessibility,
		&audit.Scores.BestPractices,
		pq.Array(&suggestions),
		&audit.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuditNotFound
		}
		return nil, fmt.Errorf("failed to get site audit: %w", err)
	}

	audit.Suggestions = suggestions
	return audit, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*SiteAudit, error) {
	query := `
		SELECT id, user_id, url,
			performance_score, seo_score, accessibility_score, best_practices_score,
			suggestions, created_at
		FROM site_audits
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list site audits: %w", err)
	}
	defer rows.Close()

	audits := []*SiteAudit{}
	for rows.Next() {
		audit := &SiteAudit{}
		var suggestions []string
		if err := rows.Scan(
			&audit.ID,
			&audit.UserID,
			&audit.URL,
			&audit.Scores.Performance,
			&audit.Scores.SEO,
			&audit.Scores.Accessibility,
			&audit.Scores.BestPractices,
			pq.Array(&suggestions),
			&audit.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan site audit: %w", err)
		}
		audit.Suggestions = suggestions
		audits = append(audits, audit)
	}

	return audits, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM site_audits WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete site audit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAuditNotFound
	}

	return nil
}
