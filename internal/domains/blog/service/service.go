package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/blog/model"
	"contentstudio-backend/internal/domains/blog/repository"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/shared"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type blogService struct {
	repo         repository.BlogRepository
	ctrl         *generation.Controller
	historyLimit int
}

func NewBlogService(
	repo repository.BlogRepository,
	gen ai.Generator,
	previews generation.PreviewStore,
	locks generation.Locker,
	notify generation.Notifier,
	historyLimit int,
) ServiceInterface {
	s := &blogService{
		repo:         repo,
		historyLimit: historyLimit,
	}

	s.ctrl = generation.NewController(
		shared.TableBlogPosts,
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

func (s *blogService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req model.GenerateBlogRequest,
) (*model.BlogPreviewResponse, error) {
	preview, err := s.ctrl.Generate(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var artifact model.BlogArtifact
	if err := json.Unmarshal(preview.Payload, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode preview payload: %w", err)
	}

	return &model.BlogPreviewResponse{
		PreviewID: preview.ID,
		Artifact:  artifact,
		CreatedAt: preview.CreatedAt,
	}, nil
}

func (s *blogService) Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error) {
	return s.ctrl.Save(ctx, userID, previewID)
}

func (s *blogService) Discard(ctx context.Context, userID uuid.UUID) error {
	return s.ctrl.Discard(ctx, userID)
}

func (s *blogService) State(ctx context.Context, userID uuid.UUID) generation.State {
	return s.ctrl.State(ctx, userID)
}

func (s *blogService) Cursor(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.ctrl.Cursor(ctx, userID)
}

// invoke assembles the provider prompt from the form fields. String
// templating only, no transformation of the generated text.
func (s *blogService) invoke(gen ai.Generator) generation.InvokeFunc {
	return func(ctx context.Context, ownerID uuid.UUID, req generation.Request) (json.RawMessage, error) {
		form := req.(model.GenerateBlogRequest)

		language := form.Language
		if language == "" {
			language = "English"
		}

		prompt := ai.Prompt{
			System: "You are a professional content writer. Write well-structured blog articles with a clear introduction, body sections, and conclusion. Return only the article text.",
			User: fmt.Sprintf(
				"Write a blog article about %q.\nTone: %s\nTarget length: %d words\nLanguage: %s",
				form.Topic, form.Tone, form.WordCount, language,
			),
			MaxTokens:   form.WordCount * 3,
			Temperature: 0.7,
		}

		content, err := gen.Complete(ctx, prompt)
		if err != nil {
			return nil, err
		}

		artifact := model.BlogArtifact{
			Topic:     form.Topic,
			Tone:      form.Tone,
			WordCount: form.WordCount,
			Language:  language,
			Content:   content,
		}
		return json.Marshal(artifact)
	}
}

func (s *blogService) persist(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var artifact model.BlogArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	post := &model.BlogPost{
		ID:        uuid.New(),
		UserID:    ownerID,
		Topic:     artifact.Topic,
		Tone:      artifact.Tone,
		WordCount: artifact.WordCount,
		Language:  artifact.Language,
		Content:   artifact.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return uuid.Nil, err
	}
	return post.ID, nil
}

func (s *blogService) remove(ctx context.Context, ownerID, id uuid.UUID) error {
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

func (s *blogService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.BlogPostResponse, error) {
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	posts, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, model.ToBlogPostResponse(p))
	}
	return responses, nil
}

func (s *blogService) Get(ctx context.Context, userID, id uuid.UUID) (*model.BlogPostResponse, error) {
	post, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return model.ToBlogPostResponse(post), nil
}

func (s *blogService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.ctrl.Delete(ctx, userID, id)
}
