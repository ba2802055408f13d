package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists teams, memberships and invitations.
type Repository interface {
	CreateTeam(ctx context.Context, t *Team, ownerMembership *Membership) error
	GetTeam(ctx context.Context, id uuid.UUID) (*Team, error)
	ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]*Team, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Membership, error)
	GetMembership(ctx context.Context, teamID, userID uuid.UUID) (*Membership, error)
	AddMember(ctx context.Context, m *Membership) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error

	CreateInvitation(ctx context.Context, inv *Invitation) error
	GetInvitation(ctx context.Context, id uuid.UUID) (*Invitation, error)
	ListInvitationsByEmail(ctx context.Context, email string) ([]*Invitation, error)
	UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status string) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// =====================================================
// TEAMS & MEMBERSHIPS
// =====================================================

func (r *postgresRepository) CreateTeam(ctx context.Context, t *Team, ownerMembership *Membership) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO teams (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.OwnerID, t.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id, role, created_at) VALUES ($1, $2, $3, $4)`,
		ownerMembership.TeamID, ownerMembership.UserID, ownerMembership.Role, ownerMembership.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	t := &Team{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) ListTeamsByUser(ctx context.Context, userID uuid.UUID) ([]*Team, error) {
	query := `
		SELECT t.id, t.name, t.owner_id, t.created_at
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []*Team{}
	for rows.Next() {
		t := &Team{}
		if err := rows.Scan(&t.ID, &t.Name, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

func (r *postgresRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Membership, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT team_id, user_id, role, created_at FROM team_members WHERE team_id = $1 ORDER BY created_at ASC`,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []*Membership{}
	for rows.Next() {
		m := &Membership{}
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (r *postgresRepository) GetMembership(ctx context.Context, teamID, userID uuid.UUID) (*Membership, error) {
	m := &Membership{}
	err := r.pool.QueryRow(ctx,
		`SELECT team_id, user_id, role, created_at FROM team_members WHERE team_id = $1 AND user_id = $2`,
		teamID, userID,
	).Scan(&m.TeamID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) AddMember(ctx context.Context, m *Membership) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id, role, created_at) VALUES ($1, $2, $3, $4)`,
		m.TeamID, m.UserID, m.Role, m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`,
		teamID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotMember
	}
	return nil
}

// =====================================================
// INVITATIONS
// =====================================================

func (r *postgresRepository) CreateInvitation(ctx context.Context, inv *Invitation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO team_invitations (id, team_id, email, role, status, invited_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inv.ID, inv.TeamID, inv.Email, inv.Role, inv.Status, inv.InvitedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetInvitation(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	inv := &Invitation{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, team_id, email, role, status, invited_by, created_at, updated_at
		 FROM team_invitations WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.TeamID, &inv.Email, &inv.Role, &inv.Status, &inv.InvitedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

func (r *postgresRepository) ListInvitationsByEmail(ctx context.Context, email string) ([]*Invitation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, team_id, email, role, status, invited_by, created_at, updated_at
		 FROM team_invitations
		 WHERE email = $1 AND status = $2
		 ORDER BY created_at DESC, id DESC`,
		email, StatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := []*Invitation{}
	for rows.Next() {
		inv := &Invitation{}
		if err := rows.Scan(&inv.ID, &inv.TeamID, &inv.Email, &inv.Role, &inv.Status, &inv.InvitedBy, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

func (r *postgresRepository) UpdateInvitationStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE team_invitations SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvitationNotFound
	}
	return nil
}
