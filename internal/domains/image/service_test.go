package image

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
)

type stubRepository struct {
	rows map[uuid.UUID]*GeneratedImage
}

func newStubRepository() *stubRepository {
	return &stubRepository{rows: map[uuid.UUID]*GeneratedImage{}}
}

func (r *stubRepository) Create(_ context.Context, img *GeneratedImage) error {
	r.rows[img.ID] = img
	return nil
}

func (r *stubRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*GeneratedImage, error) {
	img, ok := r.rows[id]
	if !ok || img.UserID != userID {
		return nil, ErrImageNotFound
	}
	return img, nil
}

func (r *stubRepository) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*GeneratedImage, error) {
	out := []*GeneratedImage{}
	for _, img := range r.rows {
		if img.UserID == userID {
			out = append(out, img)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	img, ok := r.rows[id]
	if !ok || img.UserID != userID {
		return ErrImageNotFound
	}
	delete(r.rows, id)
	return nil
}

type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

type fakeGenerator struct {
	calls int32
	fail  error
}

func (g *fakeGenerator) Complete(context.Context, ai.Prompt) (string, error) {
	return "", nil
}

func (g *fakeGenerator) CompleteJSON(context.Context, ai.Prompt, interface{}) error {
	return nil
}

func (g *fakeGenerator) GenerateImage(_ context.Context, prompt, _ string) (*ai.Image, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.fail != nil {
		return nil, g.fail
	}
	return &ai.Image{Data: []byte("png-bytes:" + prompt), ContentType: "image/png"}, nil
}

type noopNotifier struct {
	cursor int64
}

func (n *noopNotifier) Publish(context.Context, string) error { return nil }

func (n *noopNotifier) Bump(context.Context, uuid.UUID, string) (int64, error) {
	return atomic.AddInt64(&n.cursor, 1), nil
}

func newTestService() (*Service, *stubRepository, *fakeStore, *fakeGenerator) {
	repo := newStubRepository()
	store := newFakeStore()
	gen := &fakeGenerator{}
	svc := NewService(repo, store, gen,
		generation.NewMemoryPreviewStore(), generation.NewMemoryLocker(), &noopNotifier{}, 50)
	return svc, repo, store, gen
}

func TestGenerateUploadsBinaryForPreview(t *testing.T) {
	svc, repo, store, gen := newTestService()
	userID := uuid.New()

	preview, err := svc.Generate(context.Background(), userID, GenerateRequest{
		Prompt: "a red fox in the snow",
		Size:   "512x512",
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), gen.calls)
	assert.NotEmpty(t, preview.Artifact.ObjectKey)
	assert.Contains(t, store.objects, preview.Artifact.ObjectKey)
	assert.Equal(t, "https://cdn.test/"+preview.Artifact.ObjectKey, preview.Artifact.URL)

	// the binary exists but no gallery row does yet
	assert.Empty(t, repo.rows)
}

func TestGenerateValidatesSize(t *testing.T) {
	svc, _, store, gen := newTestService()

	_, err := svc.Generate(context.Background(), uuid.New(), GenerateRequest{
		Prompt: "a red fox",
		Size:   "640x480",
	})
	assert.Error(t, err)
	assert.Equal(t, int32(0), gen.calls)
	assert.Empty(t, store.objects)
}

func TestSavePersistsGalleryRow(t *testing.T) {
	svc, repo, store, _ := newTestService()
	userID := uuid.New()

	preview, err := svc.Generate(context.Background(), userID, GenerateRequest{
		Prompt: "a red fox",
		Size:   "512x512",
	})
	require.NoError(t, err)

	result, err := svc.Save(context.Background(), userID, preview.PreviewID)
	require.NoError(t, err)

	img, err := repo.GetByID(context.Background(), userID, result.ID)
	require.NoError(t, err)
	assert.Equal(t, preview.Artifact.ObjectKey, img.ObjectKey)
	assert.Contains(t, store.objects, img.ObjectKey)
}

func TestDiscardRemovesUploadedObject(t *testing.T) {
	svc, _, store, _ := newTestService()
	userID := uuid.New()

	preview, err := svc.Generate(context.Background(), userID, GenerateRequest{
		Prompt: "a red fox",
		Size:   "512x512",
	})
	require.NoError(t, err)
	require.Contains(t, store.objects, preview.Artifact.ObjectKey)

	require.NoError(t, svc.Discard(context.Background(), userID))
	assert.Empty(t, store.objects)

	// nothing left to save
	_, err = svc.Save(context.Background(), userID, preview.PreviewID)
	assert.Error(t, err)
}

func TestDeleteRemovesRowAndObject(t *testing.T) {
	svc, repo, store, _ := newTestService()
	userID := uuid.New()

	preview, err := svc.Generate(context.Background(), userID, GenerateRequest{
		Prompt: "a red fox",
		Size:   "512x512",
	})
	require.NoError(t, err)
	result, err := svc.Save(context.Background(), userID, preview.PreviewID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, result.ID))
	assert.Empty(t, repo.rows)
	assert.Empty(t, store.objects)

	err = svc.Delete(context.Background(), userID, result.ID)
	assert.ErrorIs(t, err, generation.ErrArtifactNotFound)
}

func TestProviderFailureUploadsNothing(t *testing.T) {
	svc, _, store, gen := newTestService()
	gen.fail = &ai.ProviderError{Message: "content policy violation"}

	_, err := svc.Generate(context.Background(), uuid.New(), GenerateRequest{
		Prompt: "a red fox",
		Size:   "512x512",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content policy violation")
	assert.Empty(t, store.objects)
}
