package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/social/model"
	"contentstudio-backend/internal/domains/social/repository"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/shared"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type socialService struct {
	repo         repository.SocialRepository
	ctrl         *generation.Controller
	historyLimit int
}

func NewSocialService(
	repo repository.SocialRepository,
	gen ai.Generator,
	previews generation.PreviewStore,
	locks generation.Locker,
	notify generation.Notifier,
	historyLimit int,
) ServiceInterface {
	s := &socialService{
		repo:         repo,
		historyLimit: historyLimit,
	}

	s.ctrl = generation.NewController(
		shared.TableSocialPosts,
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

func (s *socialService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req model.GenerateSocialRequest,
) (*model.SocialPreviewResponse, error) {
	preview, err := s.ctrl.Generate(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var artifact model.SocialBatchArtifact
	if err := json.Unmarshal(preview.Payload, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode preview payload: %w", err)
	}

	return &model.SocialPreviewResponse{
		PreviewID: preview.ID,
		Artifact:  artifact,
		CreatedAt: preview.CreatedAt,
	}, nil
}

func (s *socialService) Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error) {
	return s.ctrl.Save(ctx, userID, previewID)
}

func (s *socialService) Discard(ctx context.Context, userID uuid.UUID) error {
	return s.ctrl.Discard(ctx, userID)
}

func (s *socialService) State(ctx context.Context, userID uuid.UUID) generation.State {
	return s.ctrl.State(ctx, userID)
}

func (s *socialService) Cursor(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.ctrl.Cursor(ctx, userID)
}

// invoke issues one provider call per platform, one at a time. Results
// accumulate in the same order the platforms were selected; a failure
// on any platform abandons the whole batch.
func (s *socialService) invoke(gen ai.Generator) generation.InvokeFunc {
	return func(ctx context.Context, ownerID uuid.UUID, req generation.Request) (json.RawMessage, error) {
		form := req.(model.GenerateSocialRequest)

		artifact := model.SocialBatchArtifact{
			Topic: form.Topic,
			Tone:  form.Tone,
			Posts: make([]model.SocialPostArtifact, 0, len(form.Platforms)),
		}

		for _, platform := range form.Platforms {
			hashtagLine := "Do not include hashtags."
			if form.IncludeHashtags {
				hashtagLine = "Include a short list of relevant hashtags."
			}

			prompt := ai.Prompt{
				System: "You are a social media copywriter. Respond with a JSON object of the form {\"content\": string, \"hashtags\": [string]}.",
				User: fmt.Sprintf(
					"Write a %s post about %q for %s, following the platform's usual length and style. %s",
					form.Tone, form.Topic, platform, hashtagLine,
				),
				MaxTokens:   600,
				Temperature: 0.8,
			}

			var out struct {
				Content  string   `json:"content"`
				Hashtags []string `json:"hashtags"`
			}
			if err := gen.CompleteJSON(ctx, prompt, &out); err != nil {
				return nil, err
			}
			if !form.IncludeHashtags {
				out.Hashtags = nil
			}

			artifact.Posts = append(artifact.Posts, model.SocialPostArtifact{
				Platform: platform,
				Content:  out.Content,
				Hashtags: out.Hashtags,
			})
		}

		return json.Marshal(artifact)
	}
}

// persist saves one row per platform post under a shared batch id.
func (s *socialService) persist(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var artifact model.SocialBatchArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	batchID := uuid.New()
	now := time.Now().UTC()

	posts := make([]*model.SocialPost, 0, len(artifact.Posts))
	for i, p := range artifact.Posts {
		posts = append(posts, &model.SocialPost{
			ID:        uuid.New(),
			UserID:    ownerID,
			BatchID:   batchID,
			Topic:     artifact.Topic,
			Platform:  p.Platform,
			Tone:      artifact.Tone,
			Content:   p.Content,
			Hashtags:  p.Hashtags,
			Position:  i,
			CreatedAt: now,
		})
	}

	if err := s.repo.CreateBatch(ctx, posts); err != nil {
		return uuid.Nil, err
	}
	return batchID, nil
}

func (s *socialService) remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if err == model.ErrPostNotFound {
			return generation.ErrArtifactNotFound
		}
		return err
	}
	return nil
}

// =====================================================
// HISTORY / LIST
// =====================================================

func (s *socialService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SocialPostResponse, error) {
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	posts, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.SocialPostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, model.ToSocialPostResponse(p))
	}
	return responses, nil
}

func (s *socialService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.ctrl.Delete(ctx, userID, id)
}
