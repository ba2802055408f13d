package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/listing/model"
	"contentstudio-backend/internal/domains/listing/repository"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/shared"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type listingService struct {
	repo         repository.ListingRepository
	ctrl         *generation.Controller
	historyLimit int
}

func NewListingService(
	repo repository.ListingRepository,
	gen ai.Generator,
	previews generation.PreviewStore,
	locks generation.Locker,
	notify generation.Notifier,
	historyLimit int,
) ServiceInterface {
	s := &listingService{
		repo:         repo,
		historyLimit: historyLimit,
	}

	s.ctrl = generation.NewController(
		shared.TableProductListings,
		previews,
		locks,
		notify,
		s.invoke(gen),
		s.persist,
		s.remove,
	)

	return s
}

// =====================================================
// GENERATION CYCLE
// =====================================================

func (s *listingService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req model.GenerateListingRequest,
) (*model.ListingPreviewResponse, error) {
	preview, err := s.ctrl.Generate(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var artifact model.ListingBatchArtifact
	if err := json.Unmarshal(preview.Payload, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode preview payload: %w", err)
	}

	return &model.ListingPreviewResponse{
		PreviewID: preview.ID,
		Artifact:  artifact,
		CreatedAt: preview.CreatedAt,
	}, nil
}

func (s *listingService) Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error) {
	return s.ctrl.Save(ctx, userID, previewID)
}

func (s *listingService) Discard(ctx context.Context, userID uuid.UUID) error {
	return s.ctrl.Discard(ctx, userID)
}

func (s *listingService) State(ctx context.Context, userID uuid.UUID) generation.State {
	return s.ctrl.State(ctx, userID)
}

func (s *listingService) Cursor(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.ctrl.Cursor(ctx, userID)
}

// invoke issues one provider call per marketplace, one at a time, each
// prompt carrying the marketplace's category. Order follows selection
// order; a failure abandons the whole batch.
func (s *listingService) invoke(gen ai.Generator) generation.InvokeFunc {
	return func(ctx context.Context, ownerID uuid.UUID, req generation.Request) (json.RawMessage, error) {
		form := req.(model.GenerateListingRequest)

		artifact := model.ListingBatchArtifact{
			ProductName: form.ProductName,
			Features:    form.Features,
			Price:       form.Price,
			Listings:    make([]model.ListingArtifact, 0, len(form.Platforms)),
		}

		for _, platform := range form.Platforms {
			category := model.PlatformCategories[platform]

			prompt := ai.Prompt{
				System: "You are an e-commerce copywriter. Respond with a JSON object of the form {\"title\": string, \"description\": string}.",
				User: fmt.Sprintf(
					"Write a product listing for %q priced at %s.\nMarketplace: %s\nCategory: %s\nKey features: %s",
					form.ProductName, form.Price.StringFixed(2), platform, category, form.Features,
				),
				MaxTokens:   800,
				Temperature: 0.7,
			}

			var out struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			}
			if err := gen.CompleteJSON(ctx, prompt, &out); err != nil {
				return nil, err
			}

			artifact.Listings = append(artifact.Listings, model.ListingArtifact{
				Platform:    platform,
				Category:    category,
				Title:       out.Title,
				Description: out.Description,
			})
		}

		return json.Marshal(artifact)
	}
}

// persist saves one row per marketplace listing under a shared batch id.
func (s *listingService) persist(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var artifact model.ListingBatchArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	batchID := uuid.New()
	now := time.Now().UTC()

	listings := make([]*model.ProductListing, 0, len(artifact.Listings))
	for i, l := range artifact.Listings {
		listings = append(listings, &model.ProductListing{
			ID:          uuid.New(),
			UserID:      ownerID,
			BatchID:     batchID,
			ProductName: artifact.ProductName,
			Features:    artifact.Features,
			Price:       artifact.Price,
			Platform:    l.Platform,
			Category:    l.Category,
			Title:       l.Title,
			Description: l.Description,
			Position:    i,
			CreatedAt:   now,
		})
	}

	if err := s.repo.CreateBatch(ctx, listings); err != nil {
		return uuid.Nil, err
	}
	return batchID, nil
}

func (s *listingService) remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if err == model.ErrListingNotFound {
			return generation.ErrArtifactNotFound
		}
		return err
	}
	return nil
}

// =====================================================
// HISTORY / LIST
// =====================================================

func (s *listingService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.ListingResponse, error) {
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	listings, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ListingResponse, 0, len(listings))
	for _, l := range listings {
		responses = append(responses, model.ToListingResponse(l))
	}
	return responses, nil
}

func (s *listingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.ctrl.Delete(ctx, userID, id)
}
