package team

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/shared"
	"contentstudio-backend/pkg/logger"
)

// Publisher is the slice of the change feed team writes notify through.
type Publisher interface {
	Publish(ctx context.Context, table string) error
}

type Service struct {
	repo   Repository
	notify Publisher
}

func NewService(repo Repository, notify Publisher) *Service {
	return &Service{repo: repo, notify: notify}
}

// =====================================================
// TEAMS
// =====================================================

func (s *Service) CreateTeam(ctx context.Context, userID uuid.UUID, req CreateTeamRequest) (*TeamResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Team{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		OwnerID:   userID,
		CreatedAt: now,
	}
	owner := &Membership{
		TeamID:    t.ID,
		UserID:    userID,
		Role:      RoleOwner,
		CreatedAt: now,
	}

	if err := s.repo.CreateTeam(ctx, t, owner); err != nil {
		return nil, err
	}

	s.publish(ctx, shared.TableTeams)

	return &TeamResponse{
		ID:      t.ID,
		Name:    t.Name,
		OwnerID: t.OwnerID,
		Members: []MemberResponse{{
			UserID:    owner.UserID,
			Role:      owner.Role,
			CreatedAt: owner.CreatedAt,
		}},
		CreatedAt: t.CreatedAt,
	}, nil
}

func (s *Service) GetTeam(ctx context.Context, userID, teamID uuid.UUID) (*TeamResponse, error) {
	if _, err := s.repo.GetMembership(ctx, teamID, userID); err != nil {
		return nil, err
	}

	t, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return toTeamResponse(t, members), nil
}

func (s *Service) ListMyTeams(ctx context.Context, userID uuid.UUID) ([]*TeamResponse, error) {
	teams, err := s.repo.ListTeamsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t, nil))
	}
	return out, nil
}

// RemoveMember lets an owner or admin take a member out of the team.
// Members can remove themselves (leave); the owner cannot leave their
// own team.
func (s *Service) RemoveMember(ctx context.Context, actorID, teamID, memberID uuid.UUID) error {
	actor, err := s.repo.GetMembership(ctx, teamID, actorID)
	if err != nil {
		return err
	}

	target, err := s.repo.GetMembership(ctx, teamID, memberID)
	if err != nil {
		return err
	}
	if target.Role == RoleOwner {
		return ErrNotAllowed
	}

	if actorID != memberID && actor.Role != RoleOwner && actor.Role != RoleAdmin {
		return ErrNotAllowed
	}

	if err := s.repo.RemoveMember(ctx, teamID, memberID); err != nil {
		return err
	}

	s.publish(ctx, shared.TableTeams)
	return nil
}

// =====================================================
// INVITATIONS
// =====================================================

// Invite records a pending invitation addressed by email. The invitee
// resolves it against their own account email on accept.
func (s *Service) Invite(ctx context.Context, actorID, teamID uuid.UUID, req InviteRequest) (*InvitationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.repo.GetMembership(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != RoleOwner && actor.Role != RoleAdmin {
		return nil, ErrNotAllowed
	}

	t, err := s.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv := &Invitation{
		ID:        uuid.New(),
		TeamID:    teamID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      req.Role,
		Status:    StatusPending,
		InvitedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}

	s.publish(ctx, shared.TableTeamInvitations)

	return toInvitationResponse(inv, t.Name), nil
}

// ListMyInvitations returns the caller's pending invitations, matched
// by account email.
func (s *Service) ListMyInvitations(ctx context.Context, email string) ([]*InvitationResponse, error) {
	invitations, err := s.repo.ListInvitationsByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	out := make([]*InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		name := ""
		if t, err := s.repo.GetTeam(ctx, inv.TeamID); err == nil {
			name = t.Name
		}
		out = append(out, toInvitationResponse(inv, name))
	}
	return out, nil
}

// Accept turns a pending invitation into a membership. The invitation
// must be addressed to the caller's account email.
func (s *Service) Accept(ctx context.Context, userID uuid.UUID, email string, invitationID uuid.UUID) (*TeamResponse, error) {
	inv, err := s.authorizedInvitation(ctx, email, invitationID)
	if err != nil {
		return nil, err
	}

	m := &Membership{
		TeamID:    inv.TeamID,
		UserID:    userID,
		Role:      inv.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMember(ctx, m); err != nil && err != ErrAlreadyMember {
		return nil, err
	}

	if err := s.repo.UpdateInvitationStatus(ctx, inv.ID, StatusAccepted); err != nil {
		return nil, err
	}

	s.publish(ctx, shared.TableTeams)
	s.publish(ctx, shared.TableTeamInvitations)

	return s.GetTeam(ctx, userID, inv.TeamID)
}

func (s *Service) Reject(ctx context.Context, email string, invitationID uuid.UUID) error {
	inv, err := s.authorizedInvitation(ctx, email, invitationID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateInvitationStatus(ctx, inv.ID, StatusRejected); err != nil {
		return err
	}

	s.publish(ctx, shared.TableTeamInvitations)
	return nil
}

func (s *Service) authorizedInvitation(ctx context.Context, email string, invitationID uuid.UUID) (*Invitation, error) {
	inv, err := s.repo.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(inv.Email, email) {
		return nil, ErrInvitationNotFound
	}
	if inv.Status != StatusPending {
		return nil, ErrInvitationHandled
	}
	return inv, nil
}

// publish failures are logged, never surfaced: the write already
// landed and clients converge on the next poll.
func (s *Service) publish(ctx context.Context, table string) {
	if err := s.notify.Publish(ctx, table); err != nil {
		logger.Warn("failed to publish team change event", map[string]interface{}{
			"table": table,
			"error": err.Error(),
		})
	}
}

func toTeamResponse(t *Team, members []*Membership) *TeamResponse {
	resp := &TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		OwnerID:   t.OwnerID,
		CreatedAt: t.CreatedAt,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, MemberResponse{
			UserID:    m.UserID,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		})
	}
	return resp
}

func toInvitationResponse(inv *Invitation, teamName string) *InvitationResponse {
	return &InvitationResponse{
		ID:        inv.ID,
		TeamID:    inv.TeamID,
		TeamName:  teamName,
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    inv.Status,
		CreatedAt: inv.CreatedAt,
	}
}
