package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"contentstudio-backend/internal/domains/seo/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresSEORepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSEORepository(pool *pgxpool.Pool) SEORepository {
	return &postgresSEORepository{pool: pool}
}

func (r *postgresSEORepository) Create(ctx context.Context, report *model.SEOReport) error {
	query := `
		INSERT INTO seo_reports (
			id, user_id, url, keyword, score, summary, suggestions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.URL,
		report.Keyword,
		report.Score,
		report.Summary,
		pq.Array(report.Suggestions),
		report.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create seo report: %w", err)
	}

	return nil
}

func (r *postgresSEORepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.SEOReport, error) {
	query := `
		SELECT id, user_id, url, keyword, score, summary, suggestions, created_at
		FROM seo_reports
		WHERE id = $1 AND user_id = $2
	`

	report := &model.SEOReport{}
	var suggestions []string

	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&report.ID,
		&report.UserID,
		&report.URL,
		&report.Keyword,
		&report.Score,
		&report.Summary,
		pq.Array(&suggestions),
		&report.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get seo report: %w", err)
	}

	report.Suggestions = suggestions
	return report, nil
}

func (r *postgresSEORepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SEOReport, error) {
	query := `
		SELECT id, user_id, url, keyword, score, summary, suggestions, created_at
		FROM seo_reports
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list seo reports: %w", err)
	}
	defer rows.Close()

	reports := []*model.SEOReport{}
	for rows.Next() {
		report := &model.SEOReport{}
		var suggestions []string
		if err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.URL,
			&report.Keyword,
			&report.Score,
			&report.Summary,
			pq.Array(&suggestions),
			&report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan seo report: %w", err)
		}
		report.Suggestions = suggestions
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

func (r *postgresSEORepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM seo_reports WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete seo report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReportNotFound
	}

	return nil
}
