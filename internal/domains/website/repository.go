package website

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists website projects.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Project, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO website_projects (
			id, user_id, business_name, industry, style, palette, slug, html, css, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		project.ID,
		project.UserID,
		project.BusinessName,
		project.Industry,
		project.Style,
		project.Palette,
		project.Slug,
		project.HTML,
		project.CSS,
		project.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create website project: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*Project, error) {
	query := `
		SELECT id, user_id, business_name, industry, style, palette, slug, html, css, created_at
		FROM website_projects
		WHERE id = $1 AND user_id = $2
	`

	project := &Project{}
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&project.ID,
		&project.UserID,
		&project.BusinessName,
		&project.Industry,
		&project.Style,
		&project.Palette,
		&project.Slug,
		&project.HTML,
		&project.CSS,
		&project.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get website project: %w", err)
	}

	return project, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Project, error) {
	query := `
		SELECT id, user_id, business_name, industry, style, palette, slug, html, css, created_at
		FROM website_projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list website projects: %w", err)
	}
	defer rows.Close()

	projects := []*Project{}
	for rows.Next() {
		project := &Project{}
		if err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.BusinessName,
			&project.Industry,
			&project.Style,
			&project.Palette,
			&project.Slug,
			&project.HTML,
			&project.CSS,
			&project.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan website project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM website_projects WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete website project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}
