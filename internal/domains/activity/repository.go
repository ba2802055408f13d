package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"contentstudio-backend/internal/shared"
)

type Repository interface {
	ListRecent(ctx context.Context, userID uuid.UUID, table string, limit int) ([]*Entry, error)
}

// titleColumns maps each content table to the expression used as the
// entry's display title.
var titleColumns = map[string]string{
	shared.TableBlogPosts:       "topic",
	shared.TableSocialPosts:     "topic || ' (' || platform || ')'",
	shared.TableProductListings: "title",
	shared.TableSEOReports:      "url",
	shared.TableWebsiteProjects: "business_name",
	shared.TableSiteAudits:      "url",
	shared.TableGeneratedImages: "prompt",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListRecent(ctx context.Context, userID uuid.UUID, table string, limit int) ([]*Entry, error) {
	titleExpr, ok := titleColumns[table]
	if !ok {
		return nil, fmt.Errorf("table %s is not part of the activity log", table)
	}

	// table and titleExpr come from the static map above, never from
	// the request.
	query := fmt.Sprintf(
		`SELECT id, %s, created_at FROM %s WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		titleExpr, table,
	)

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s activity: %w", table, err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		e := &Entry{Table: table}
		if err := rows.Scan(&e.ID, &e.Title, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s activity: %w", table, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
