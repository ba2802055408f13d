package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio-backend/pkg/jwt"
)

type stubRepository struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		byID:    map[uuid.UUID]*User{},
		byEmail: map[string]*User{},
	}
}

func (r *stubRepository) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	copied := *u
	r.byID[u.ID] = &copied
	r.byEmail[u.Email] = &copied
	return nil
}

func (r *stubRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *stubRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *stubRepository) Update(_ context.Context, u *User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	*stored = *u
	return nil
}

func (r *stubRepository) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	return nil
}

func newTestService() (*Service, *stubRepository) {
	repo := newStubRepository()
	return NewService(repo, jwt.NewManager("test-secret", 15, 72)), repo
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	svc, repo := newTestService()

	auth, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dana@example.com",
		Password: "correct-horse",
		FullName: "Dana Smith",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, "dana@example.com", auth.User.Email)
	assert.Equal(t, RoleUser, auth.User.Role)

	// the stored hash is not the raw password
	stored := repo.byEmail["dana@example.com"]
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	req := RegisterRequest{Email: "dana@example.com", Password: "correct-horse", FullName: "Dana Smith"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterEmailCheckedByFormatOnly(t *testing.T) {
	svc, _ := newTestService()

	// Address syntax is all that matters; the domain need not resolve.
	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "pat@signup.internal",
		Password: "correct-horse",
		FullName: "Pat Jones",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Email:    "not-an-address",
		Password: "correct-horse",
		FullName: "Pat Jones",
	})
	assert.Error(t, err)
}

func TestRegisterValidatesPasswordLength(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dana@example.com",
		Password: "short",
		FullName: "Dana Smith",
	})
	assert.Error(t, err)
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dana@example.com",
		Password: "correct-horse",
		FullName: "Dana Smith",
	})
	require.NoError(t, err)

	auth, err := svc.Login(context.Background(), LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotNil(t, repo.byEmail["dana@example.com"].LastLoginAt)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "dana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dana@example.com",
		Password: "correct-horse",
		FullName: "Dana Smith",
	})
	require.NoError(t, err)
	repo.byEmail["dana@example.com"].IsActive = false

	_, err = svc.Login(context.Background(), LoginRequest{Email: "dana@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newTestService()

	auth, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dana@example.com",
		Password: "correct-horse",
		FullName: "Dana Smith",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: auth.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, auth.User.ID, refreshed.User.ID)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _ := newTestService()

	auth, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dana@example.com",
		Password: "correct-horse",
		FullName: "Dana Smith",
	})
	require.NoError(t, err)

	company := "Acme"
	profile, err := svc.UpdateProfile(context.Background(), auth.User.ID, UpdateProfileRequest{Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Dana Smith", profile.FullName)
	require.NotNil(t, profile.Company)
	assert.Equal(t, "Acme", *profile.Company)
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc, _ := newTestService()

	auth, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dana@example.com",
		Password: "correct-horse",
		FullName: "Dana Smith",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), auth.User.ID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery-staple",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), auth.User.ID, ChangePasswordRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "battery-staple",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "dana@example.com", Password: "battery-staple"})
	assert.NoError(t, err)
}
