package team

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio-backend/internal/shared"
)

// =====================================================
// STUBS
// =====================================================

type stubRepository struct {
	teams       map[uuid.UUID]*Team
	members     map[uuid.UUID][]*Membership
	invitations map[uuid.UUID]*Invitation
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		teams:       map[uuid.UUID]*Team{},
		members:     map[uuid.UUID][]*Membership{},
		invitations: map[uuid.UUID]*Invitation{},
	}
}

func (r *stubRepository) CreateTeam(_ context.Context, t *Team, owner *Membership) error {
	r.teams[t.ID] = t
	r.members[t.ID] = []*Membership{owner}
	return nil
}

func (r *stubRepository) GetTeam(_ context.Context, id uuid.UUID) (*Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return t, nil
}

func (r *stubRepository) ListTeamsByUser(_ context.Context, userID uuid.UUID) ([]*Team, error) {
	out := []*Team{}
	for teamID, members := range r.members {
		for _, m := range members {
			if m.UserID == userID {
				out = append(out, r.teams[teamID])
			}
		}
	}
	return out, nil
}

func (r *stubRepository) ListMembers(_ context.Context, teamID uuid.UUID) ([]*Membership, error) {
	return r.members[teamID], nil
}

func (r *stubRepository) GetMembership(_ context.Context, teamID, userID uuid.UUID) (*Membership, error) {
	for _, m := range r.members[teamID] {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, ErrNotMember
}

func (r *stubRepository) AddMember(_ context.Context, m *Membership) error {
	for _, existing := range r.members[m.TeamID] {
		if existing.UserID == m.UserID {
			return ErrAlreadyMember
		}
	}
	r.members[m.TeamID] = append(r.members[m.TeamID], m)
	return nil
}

func (r *stubRepository) RemoveMember(_ context.Context, teamID, userID uuid.UUID) error {
	members := r.members[teamID]
	for i, m := range members {
		if m.UserID == userID {
			r.members[teamID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return ErrNotMember
}

func (r *stubRepository) CreateInvitation(_ context.Context, inv *Invitation) error {
	r.invitations[inv.ID] = inv
	return nil
}

func (r *stubRepository) GetInvitation(_ context.Context, id uuid.UUID) (*Invitation, error) {
	inv, ok := r.invitations[id]
	if !ok {
		return nil, ErrInvitationNotFound
	}
	return inv, nil
}

func (r *stubRepository) ListInvitationsByEmail(_ context.Context, email string) ([]*Invitation, error) {
	out := []*Invitation{}
	for _, inv := range r.invitations {
		if inv.Email == email && inv.Status == StatusPending {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *stubRepository) UpdateInvitationStatus(_ context.Context, id uuid.UUID, status string) error {
	inv, ok := r.invitations[id]
	if !ok {
		return ErrInvitationNotFound
	}
	inv.Status = status
	inv.UpdatedAt = time.Now().UTC()
	return nil
}

type recordingPublisher struct {
	tables []string
}

func (p *recordingPublisher) Publish(_ context.Context, table string) error {
	p.tables = append(p.tables, table)
	return nil
}

func (p *recordingPublisher) count(table string) int {
	n := 0
	for _, t := range p.tables {
		if t == table {
			n++
		}
	}
	return n
}

// =====================================================
// TESTS
// =====================================================

func TestCreateTeamMakesCallerOwner(t *testing.T) {
	repo := newStubRepository()
	pub := &recordingPublisher{}
	svc := NewService(repo, pub)
	owner := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Marketing"})
	require.NoError(t, err)

	assert.Equal(t, "Marketing", created.Name)
	assert.Equal(t, owner, created.OwnerID)
	require.Len(t, created.Members, 1)
	assert.Equal(t, RoleOwner, created.Members[0].Role)
	assert.Equal(t, 1, pub.count(shared.TableTeams))
}

func TestCreateTeamValidatesName(t *testing.T) {
	svc := NewService(newStubRepository(), &recordingPublisher{})

	_, err := svc.CreateTeam(context.Background(), uuid.New(), CreateTeamRequest{Name: "x"})
	assert.Error(t, err)
}

func TestGetTeamRequiresMembership(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, &recordingPublisher{})
	owner := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Design"})
	require.NoError(t, err)

	_, err = svc.GetTeam(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, ErrNotMember)

	got, err := svc.GetTeam(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestInviteRequiresOwnerOrAdmin(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, &recordingPublisher{})
	owner := uuid.New()
	member := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Content"})
	require.NoError(t, err)
	require.NoError(t, repo.AddMember(context.Background(), &Membership{
		TeamID: created.ID, UserID: member, Role: RoleMember, CreatedAt: time.Now().UTC(),
	}))

	_, err = svc.Invite(context.Background(), member, created.ID, InviteRequest{Email: "new@example.com", Role: RoleMember})
	assert.ErrorIs(t, err, ErrNotAllowed)

	inv, err := svc.Invite(context.Background(), owner, created.ID, InviteRequest{Email: "New@Example.com", Role: RoleMember})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", inv.Email)
	assert.Equal(t, StatusPending, inv.Status)
	assert.Equal(t, "Content", inv.TeamName)
}

func TestInviteEmailCheckedByFormatOnly(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, &recordingPublisher{})
	owner := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Content"})
	require.NoError(t, err)

	// Address syntax is all that matters; the domain need not resolve.
	inv, err := svc.Invite(context.Background(), owner, created.ID, InviteRequest{Email: "pat@team.internal", Role: RoleMember})
	require.NoError(t, err)
	assert.Equal(t, "pat@team.internal", inv.Email)

	_, err = svc.Invite(context.Background(), owner, created.ID, InviteRequest{Email: "not-an-address", Role: RoleMember})
	assert.Error(t, err)
}

func TestAcceptInvitationJoinsTeam(t *testing.T) {
	repo := newStubRepository()
	pub := &recordingPublisher{}
	svc := NewService(repo, pub)
	owner := uuid.New()
	invitee := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Growth"})
	require.NoError(t, err)
	inv, err := svc.Invite(context.Background(), owner, created.ID, InviteRequest{Email: "dana@example.com", Role: RoleAdmin})
	require.NoError(t, err)

	got, err := svc.Accept(context.Background(), invitee, "dana@example.com", inv.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 2)

	m, err := repo.GetMembership(context.Background(), created.ID, invitee)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, m.Role)

	stored, err := repo.GetInvitation(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, stored.Status)
	assert.GreaterOrEqual(t, pub.count(shared.TableTeamInvitations), 2)
}

func TestAcceptRejectsWrongEmail(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, &recordingPublisher{})
	owner := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Growth"})
	require.NoError(t, err)
	inv, err := svc.Invite(context.Background(), owner, created.ID, InviteRequest{Email: "dana@example.com", Role: RoleMember})
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), uuid.New(), "mallory@example.com", inv.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestAcceptHandledInvitationConflicts(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, &recordingPublisher{})
	owner := uuid.New()
	invitee := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Growth"})
	require.NoError(t, err)
	inv, err := svc.Invite(context.Background(), owner, created.ID, InviteRequest{Email: "dana@example.com", Role: RoleMember})
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), invitee, "dana@example.com", inv.ID)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), invitee, "dana@example.com", inv.ID)
	assert.ErrorIs(t, err, ErrInvitationHandled)
}

func TestRejectKeepsMembershipOut(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, &recordingPublisher{})
	owner := uuid.New()
	invitee := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Growth"})
	require.NoError(t, err)
	inv, err := svc.Invite(context.Background(), owner, created.ID, InviteRequest{Email: "dana@example.com", Role: RoleMember})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), "dana@example.com", inv.ID))

	_, err = repo.GetMembership(context.Background(), created.ID, invitee)
	assert.ErrorIs(t, err, ErrNotMember)

	stored, err := repo.GetInvitation(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, stored.Status)
}

func TestRemoveMemberPermissions(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, &recordingPublisher{})
	owner := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	created, err := svc.CreateTeam(context.Background(), owner, CreateTeamRequest{Name: "Growth"})
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, repo.AddMember(context.Background(), &Membership{TeamID: created.ID, UserID: alice, Role: RoleMember, CreatedAt: now}))
	require.NoError(t, repo.AddMember(context.Background(), &Membership{TeamID: created.ID, UserID: bob, Role: RoleMember, CreatedAt: now}))

	// plain members cannot remove others
	err = svc.RemoveMember(context.Background(), alice, created.ID, bob)
	assert.ErrorIs(t, err, ErrNotAllowed)

	// the owner cannot be removed
	err = svc.RemoveMember(context.Background(), owner, created.ID, owner)
	assert.ErrorIs(t, err, ErrNotAllowed)

	// members can leave on their own
	require.NoError(t, svc.RemoveMember(context.Background(), alice, created.ID, alice))
	_, err = repo.GetMembership(context.Background(), created.ID, alice)
	assert.ErrorIs(t, err, ErrNotMember)

	// owner removes remaining member
	require.NoError(t, svc.RemoveMember(context.Background(), owner, created.ID, bob))
	members, err := repo.ListMembers(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
