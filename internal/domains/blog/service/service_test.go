package service

import (
	"context"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio-backend/internal/domains/blog/model"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
)

// =====================================================
// TEST DOUBLES
// =====================================================

type fakeGenerator struct {
	calls   int32
	content string
	err     error
}

func (g *fakeGenerator) Complete(ctx context.Context, p ai.Prompt) (string, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.err != nil {
		return "", g.err
	}
	return g.content, nil
}

func (g *fakeGenerator) CompleteJSON(ctx context.Context, p ai.Prompt, out interface{}) error {
	atomic.AddInt32(&g.calls, 1)
	return g.err
}

func (g *fakeGenerator) GenerateImage(ctx context.Context, prompt, size string) (*ai.Image, error) {
	atomic.AddInt32(&g.calls, 1)
	return &ai.Image{Data: []byte("png"), ContentType: "image/png"}, g.err
}

type stubBlogRepository struct {
	posts map[uuid.UUID]*model.BlogPost
}

func newStubBlogRepository() *stubBlogRepository {
	return &stubBlogRepository{posts: make(map[uuid.UUID]*model.BlogPost)}
}

func (r *stubBlogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	r.posts[post.ID] = post
	return nil
}

func (r *stubBlogRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.BlogPost, error) {
	post, ok := r.posts[id]
	if !ok || post.UserID != userID {
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

func (r *stubBlogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.BlogPost, error) {
	out := []*model.BlogPost{}
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubBlogRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
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

func newTestService(gen *fakeGenerator) (ServiceInterface, *stubBlogRepository) {
	repo := newStubBlogRepository()
	svc := NewBlogService(
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

func TestGenerate_EmptyTopicFailsWithoutProviderCall(t *testing.T) {
	gen := &fakeGenerator{content: "article"}
	svc, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), uuid.New(), model.GenerateBlogRequest{
		Topic:     "",
		Tone:      model.ToneProfessional,
		WordCount: 800,
	})

	var vErr *generation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, int32(0), atomic.LoadInt32(&gen.calls))
}

func TestGenerate_SaveList_RoundTrip(t *testing.T) {
	article := "Artificial intelligence is transforming healthcare delivery..."
	gen := &fakeGenerator{content: article}
	svc, _ := newTestService(gen)
	userID := uuid.New()

	// Generate: exactly one provider call, preview carries the text verbatim
	preview, err := svc.Generate(context.Background(), userID, model.GenerateBlogRequest{
		Topic:     "AI in Healthcare",
		Tone:      model.ToneProfessional,
		WordCount: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gen.calls))
	assert.Equal(t, article, preview.Artifact.Content)
	assert.Equal(t, "AI in Healthcare", preview.Artifact.Topic)
	assert.Equal(t, 800, preview.Artifact.WordCount)

	// Save: one new row owned by the user
	result, err := svc.Save(context.Background(), userID, preview.PreviewID)
	require.NoError(t, err)

	// List: the saved row shows exactly the previewed fields
	posts, err := svc.List(context.Background(), userID, 20)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, result.ID, posts[0].ID)
	assert.Equal(t, "AI in Healthcare", posts[0].Topic)
	assert.Equal(t, model.ToneProfessional, posts[0].Tone)
	assert.Equal(t, 800, posts[0].WordCount)
	assert.Equal(t, article, posts[0].Content)

	// Other users see nothing
	others, err := svc.List(context.Background(), uuid.New(), 20)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestDelete_RemovesExactlyThatRow(t *testing.T) {
	gen := &fakeGenerator{content: "first"}
	svc, _ := newTestService(gen)
	userID := uuid.New()

	ids := make([]uuid.UUID, 0, 2)
	for _, topic := range []string{"Topic One", "Topic Two"} {
		preview, err := svc.Generate(context.Background(), userID, model.GenerateBlogRequest{
			Topic:     topic,
			Tone:      model.ToneCasual,
			WordCount: 500,
		})
		require.NoError(t, err)
		result, err := svc.Save(context.Background(), userID, preview.PreviewID)
		require.NoError(t, err)
		ids = append(ids, result.ID)
	}

	require.NoError(t, svc.Delete(context.Background(), userID, ids[0]))

	posts, err := svc.List(context.Background(), userID, 20)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, ids[1], posts[0].ID)

	err = svc.Delete(context.Background(), userID, ids[0])
	assert.ErrorIs(t, err, generation.ErrArtifactNotFound)
}

func TestGenerate_ProviderFailureSurfacedVerbatim(t *testing.T) {
	gen := &fakeGenerator{err: &ai.ProviderError{StatusCode: 429, Message: "Rate limit reached for requests"}}
	svc, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), uuid.New(), model.GenerateBlogRequest{
		Topic:     "AI in Healthcare",
		Tone:      model.ToneProfessional,
		WordCount: 800,
	})

	var gErr *generation.GenerationError
	require.ErrorAs(t, err, &gErr)
	assert.Contains(t, gErr.Message, "Rate limit reached for requests")
}

func TestList_NewestFirstWithIDTieBreak(t *testing.T) {
	repo := newStubBlogRepository()
	userID := uuid.New()
	now := time.Now().UTC()

	// Two posts with identical timestamps
	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(context.Background(), &model.BlogPost{
			ID:        uuid.New(),
			UserID:    userID,
			Topic:     "same instant",
			Tone:      model.ToneCasual,
			WordCount: 300,
			Content:   "text",
			CreatedAt: now,
		}))
	}

	first, err := repo.ListByUser(context.Background(), userID, 20)
	require.NoError(t, err)
	second, err := repo.ListByUser(context.Background(), userID, 20)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
}
