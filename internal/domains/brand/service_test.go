package brand

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	kits map[uuid.UUID]*Kit
}

func newStubRepository() *stubRepository {
	return &stubRepository{kits: map[uuid.UUID]*Kit{}}
}

func (r *stubRepository) Upsert(_ context.Context, kit *Kit) error {
	if existing, ok := r.kits[kit.UserID]; ok {
		existing.BrandName = kit.BrandName
		existing.Description = kit.Description
		existing.Colors = kit.Colors
		existing.Fonts = kit.Fonts
		existing.Hashtags = kit.Hashtags
		existing.UpdatedAt = kit.UpdatedAt
		return nil
	}
	copied := *kit
	r.kits[kit.UserID] = &copied
	return nil
}

func (r *stubRepository) GetByUser(_ context.Context, userID uuid.UUID) (*Kit, error) {
	kit, ok := r.kits[userID]
	if !ok {
		return nil, ErrKitNotFound
	}
	return kit, nil
}

func (r *stubRepository) UpdateLogo(_ context.Context, userID uuid.UUID, logoKey, logoURL, thumbKey, thumbURL string) error {
	kit, ok := r.kits[userID]
	if !ok {
		return ErrKitNotFound
	}
	kit.LogoKey, kit.LogoURL = logoKey, logoURL
	kit.ThumbKey, kit.ThumbURL = thumbKey, thumbURL
	kit.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubRepository) Delete(_ context.Context, userID uuid.UUID) error {
	if _, ok := r.kits[userID]; !ok {
		return ErrKitNotFound
	}
	delete(r.kits, userID)
	return nil
}

type fakeStore struct {
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

type fakeProcessor struct {
	rejectAll bool
}

func (p *fakeProcessor) ValidateImage(_ []byte) error {
	if p.rejectAll {
		return fmt.Errorf("not an image")
	}
	return nil
}

func (p *fakeProcessor) ProcessLogo(data []byte) ([]byte, []byte, error) {
	return append([]byte("logo:"), data...), append([]byte("thumb:"), data...), nil
}

type noopPublisher struct {
	published int
}

func (p *noopPublisher) Publish(_ context.Context, _ string) error {
	p.published++
	return nil
}

func newTestService() (*Service, *stubRepository, *fakeStore, *noopPublisher) {
	repo := newStubRepository()
	store := newFakeStore()
	pub := &noopPublisher{}
	return NewService(repo, store, &fakeProcessor{}, pub), repo, store, pub
}

func TestUpsertCreatesThenReplaces(t *testing.T) {
	svc, repo, _, pub := newTestService()
	userID := uuid.New()

	first, err := svc.Upsert(context.Background(), userID, UpsertKitRequest{
		BrandName: "Acme",
		Colors:    []string{"#ff0000", "#00ff00"},
		Hashtags:  []string{"#acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.BrandName)

	// second upsert replaces fields wholesale, including clearing slices
	second, err := svc.Upsert(context.Background(), userID, UpsertKitRequest{
		BrandName: "Acme Studio",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Studio", second.BrandName)
	assert.Empty(t, second.Colors)
	assert.Empty(t, second.Hashtags)

	assert.Len(t, repo.kits, 1)
	assert.Equal(t, 2, pub.published)
}

func TestUpsertValidatesBrandName(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Upsert(context.Background(), uuid.New(), UpsertKitRequest{BrandName: ""})
	assert.Error(t, err)
}

func TestUploadLogoStoresBothVariants(t *testing.T) {
	svc, _, store, _ := newTestService()
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertKitRequest{BrandName: "Acme"})
	require.NoError(t, err)

	kit, err := svc.UploadLogo(context.Background(), userID, []byte("raw-bytes"))
	require.NoError(t, err)

	logoKey := fmt.Sprintf("brand/%s/logo.jpg", userID)
	thumbKey := fmt.Sprintf("brand/%s/thumb.jpg", userID)
	assert.Contains(t, store.objects, logoKey)
	assert.Contains(t, store.objects, thumbKey)
	assert.Equal(t, "https://cdn.test/"+logoKey, kit.LogoURL)
	assert.Equal(t, "https://cdn.test/"+thumbKey, kit.ThumbURL)
}

func TestUploadLogoRejectsInvalidImage(t *testing.T) {
	repo := newStubRepository()
	store := newFakeStore()
	svc := NewService(repo, store, &fakeProcessor{rejectAll: true}, &noopPublisher{})

	_, err := svc.UploadLogo(context.Background(), uuid.New(), []byte("nope"))
	assert.Error(t, err)
	assert.Empty(t, store.objects)
}

func TestUploadLogoWithoutKit(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UploadLogo(context.Background(), uuid.New(), []byte("raw"))
	assert.ErrorIs(t, err, ErrKitNotFound)
}

func TestDeleteRemovesStoredObjects(t *testing.T) {
	svc, repo, store, _ := newTestService()
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertKitRequest{BrandName: "Acme"})
	require.NoError(t, err)
	_, err = svc.UploadLogo(context.Background(), userID, []byte("raw"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID))

	assert.Empty(t, repo.kits)
	assert.Empty(t, store.objects)
	assert.Len(t, store.deleted, 2)
}
