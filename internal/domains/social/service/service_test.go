package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio-backend/internal/domains/social/model"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
)

// =====================================================
// TEST DOUBLES
// =====================================================

// recordingGenerator records each prompt so call order is observable.
type recordingGenerator struct {
	prompts []string
	err     error
}

func (g *recordingGenerator) Complete(ctx context.Context, p ai.Prompt) (string, error) {
	g.prompts = append(g.prompts, p.User)
	return "post", g.err
}

func (g *recordingGenerator) CompleteJSON(ctx context.Context, p ai.Prompt, out interface{}) error {
	g.prompts = append(g.prompts, p.User)
	if g.err != nil {
		return g.err
	}
	body := fmt.Sprintf(`{"content":"post %d","hashtags":["#tag"]}`, len(g.prompts))
	return json.Unmarshal([]byte(body), out)
}

func (g *recordingGenerator) GenerateImage(ctx context.Context, prompt, size string) (*ai.Image, error) {
	g.prompts = append(g.prompts, prompt)
	return &ai.Image{Data: []byte("png"), ContentType: "image/png"}, g.err
}

type stubSocialRepository struct {
	posts map[uuid.UUID]*model.SocialPost
}

func newStubSocialRepository() *stubSocialRepository {
	return &stubSocialRepository{posts: make(map[uuid.UUID]*model.SocialPost)}
}

func (r *stubSocialRepository) CreateBatch(ctx context.Context, posts []*model.SocialPost) error {
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return nil
}

func (r *stubSocialRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SocialPost, error) {
	out := []*model.SocialPost{}
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Position < out[j].Position
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSocialRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	post, ok := r.posts[id]
	if !ok || post.UserID != userID {
		return model.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type noopNotifier struct {
	cursor int64
}

func (n *noopNotifier) Publish(ctx context.Context, table string) error { return nil }

func (n *noopNotifier) Bump(ctx context.Context, ownerID uuid.UUID, table string) (int64, error) {
	return atomic.AddInt64(&n.cursor, 1), nil
}

func newTestService(gen ai.Generator) (ServiceInterface, *stubSocialRepository) {
	repo := newStubSocialRepository()
	svc := NewSocialService(
		repo,
		gen,
		generation.NewMemoryPreviewStore(),
		generation.NewMemoryLocker(),
		&noopNotifier{},
		50,
	)
	return svc, repo
}

// =====================================================
// TESTS
// =====================================================

func TestGenerate_NoPlatformSelectedFailsLocally(t *testing.T) {
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), uuid.New(), model.GenerateSocialRequest{
		Topic:     "Product launch",
		Platforms: []string{},
		Tone:      "casual",
	})

	var vErr *generation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, gen.prompts)
}

func TestGenerate_OneCallPerPlatformInSelectionOrder(t *testing.T) {
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen)

	platforms := []string{model.PlatformTwitter, model.PlatformInstagram, model.PlatformFacebook}
	preview, err := svc.Generate(context.Background(), uuid.New(), model.GenerateSocialRequest{
		Topic:           "Product launch",
		Platforms:       platforms,
		Tone:            "casual",
		IncludeHashtags: true,
	})

	require.NoError(t, err)
	require.Len(t, gen.prompts, 3)
	require.Len(t, preview.Artifact.Posts, 3)
	for i, platform := range platforms {
		assert.Contains(t, gen.prompts[i], platform)
		assert.Equal(t, platform, preview.Artifact.Posts[i].Platform)
	}
}

func TestGenerate_FailedPlatformAbandonsBatch(t *testing.T) {
	gen := &recordingGenerator{err: &ai.ProviderError{StatusCode: 500, Message: "upstream unavailable"}}
	svc, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), uuid.New(), model.GenerateSocialRequest{
		Topic:     "Product launch",
		Platforms: []string{model.PlatformInstagram, model.PlatformFacebook},
		Tone:      "casual",
	})

	var gErr *generation.GenerationError
	require.ErrorAs(t, err, &gErr)
	assert.Contains(t, gErr.Message, "upstream unavailable")
	// Fails on the first platform, no further calls
	assert.Len(t, gen.prompts, 1)
}

func TestSave_OneRowPerPlatformPost(t *testing.T) {
	gen := &recordingGenerator{}
	svc, repo := newTestService(gen)
	userID := uuid.New()

	preview, err := svc.Generate(context.Background(), userID, model.GenerateSocialRequest{
		Topic:     "Product launch",
		Platforms: []string{model.PlatformInstagram, model.PlatformFacebook},
		Tone:      "casual",
	})
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), userID, preview.PreviewID)
	require.NoError(t, err)
	assert.Len(t, repo.posts, 2)

	posts, err := svc.List(context.Background(), userID, 20)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, model.PlatformInstagram, posts[0].Platform)
	assert.Equal(t, model.PlatformFacebook, posts[1].Platform)
	assert.Equal(t, posts[0].BatchID, posts[1].BatchID)
}

func TestGenerate_HashtagsOmittedWhenNotRequested(t *testing.T) {
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen)

	preview, err := svc.Generate(context.Background(), uuid.New(), model.GenerateSocialRequest{
		Topic:           "Product launch",
		Platforms:       []string{model.PlatformLinkedIn},
		Tone:            "professional",
		IncludeHashtags: false,
	})

	require.NoError(t, err)
	require.Len(t, preview.Artifact.Posts, 1)
	assert.Empty(t, preview.Artifact.Posts[0].Hashtags)
	assert.True(t, strings.Contains(gen.prompts[0], "Do not include hashtags"))
}
