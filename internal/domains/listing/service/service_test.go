package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentstudio-backend/internal/domains/listing/model"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
)

// =====================================================
// TEST DOUBLES
// =====================================================

type recordingGenerator struct {
	prompts []string
}

func (g *recordingGenerator) Complete(ctx context.Context, p ai.Prompt) (string, error) {
	g.prompts = append(g.prompts, p.User)
	return "text", nil
}

func (g *recordingGenerator) CompleteJSON(ctx context.Context, p ai.Prompt, out interface{}) error {
	g.prompts = append(g.prompts, p.User)
	body := `{"title":"Handcrafted Leather Bag","description":"Premium full-grain leather."}`
	return json.Unmarshal([]byte(body), out)
}

func (g *recordingGenerator) GenerateImage(ctx context.Context, prompt, size string) (*ai.Image, error) {
	return &ai.Image{Data: []byte("png"), ContentType: "image/png"}, nil
}

type stubListingRepository struct {
	listings map[uuid.UUID]*model.ProductListing
}

func newStubListingRepository() *stubListingRepository {
	return &stubListingRepository{listings: make(map[uuid.UUID]*model.ProductListing)}
}

func (r *stubListingRepository) CreateBatch(ctx context.Context, listings []*model.ProductListing) error {
	for _, l := range listings {
		r.listings[l.ID] = l
	}
	return nil
}

func (r *stubListingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.ProductListing, error) {
	out := []*model.ProductListing{}
	for _, l := range r.listings {
		if l.UserID == userID {
			out = append(out, l)
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

func (r *stubListingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	listing, ok := r.listings[id]
	if !ok || listing.UserID != userID {
		return model.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

type noopNotifier struct {
	cursor int64
}

func (n *noopNotifier) Publish(ctx context.Context, table string) error { return nil }

func (n *noopNotifier) Bump(ctx context.Context, ownerID uuid.UUID, table string) (int64, error) {
	return atomic.AddInt64(&n.cursor, 1), nil
}

func newTestService(gen ai.Generator) (ServiceInterface, *stubListingRepository) {
	repo := newStubListingRepository()
	svc := NewListingService(
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

func TestGenerate_TwoPlatformsTwoSequentialCallsWithCategories(t *testing.T) {
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen)

	preview, err := svc.Generate(context.Background(), uuid.New(), model.GenerateListingRequest{
		ProductName: "Leather Bag",
		Features:    "full-grain leather, brass hardware",
		Price:       decimal.NewFromFloat(129.99),
		Platforms:   []string{model.PlatformInstagram, model.PlatformFacebook},
	})

	require.NoError(t, err)
	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[0], model.PlatformCategories[model.PlatformInstagram])
	assert.Contains(t, gen.prompts[1], model.PlatformCategories[model.PlatformFacebook])

	require.Len(t, preview.Artifact.Listings, 2)
	assert.Equal(t, model.PlatformInstagram, preview.Artifact.Listings[0].Platform)
	assert.Equal(t, model.PlatformFacebook, preview.Artifact.Listings[1].Platform)
	assert.True(t, preview.Artifact.Price.Equal(decimal.NewFromFloat(129.99)))
}

func TestSave_RowsTaggedByPlatform(t *testing.T) {
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen)
	userID := uuid.New()

	preview, err := svc.Generate(context.Background(), userID, model.GenerateListingRequest{
		ProductName: "Leather Bag",
		Price:       decimal.NewFromInt(120),
		Platforms:   []string{model.PlatformInstagram, model.PlatformFacebook},
	})
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), userID, preview.PreviewID)
	require.NoError(t, err)

	listings, err := svc.List(context.Background(), userID, 20)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, model.PlatformInstagram, listings[0].Platform)
	assert.Equal(t, model.PlatformFacebook, listings[1].Platform)
	assert.True(t, listings[0].Price.Equal(decimal.NewFromInt(120)))
}

func TestGenerate_EmptyProductNameFailsLocally(t *testing.T) {
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), uuid.New(), model.GenerateListingRequest{
		ProductName: "",
		Platforms:   []string{model.PlatformShopify},
	})

	var vErr *generation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, gen.prompts)
}

func TestGenerate_NegativePriceRejected(t *testing.T) {
	gen := &recordingGenerator{}
	svc, _ := newTestService(gen)

	_, err := svc.Generate(context.Background(), uuid.New(), model.GenerateListingRequest{
		ProductName: "Leather Bag",
		Price:       decimal.NewFromInt(-1),
		Platforms:   []string{model.PlatformShopify},
	})

	var vErr *generation.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, gen.prompts)
}
