package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/domains/seo/model"
	"contentstudio-backend/internal/domains/seo/repository"
	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/shared"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type seoService struct {
	repo         repository.SEORepository
	ctrl         *generation.Controller
	historyLimit int
}

func NewSEOService(
	repo repository.SEORepository,
	gen ai.Generator,
	previews generation.PreviewStore,
	locks generation.Locker,
	notify generation.Notifier,
	historyLimit int,
) ServiceInterface {
	s := &seoService{
		repo:         repo,
		historyLimit: historyLimit,
	}

	s.ctrl = generation.NewController(
		shared.TableSEOReports,
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
// ANALYSIS CYCLE
// =====================================================

func (s *seoService) Analyze(
	ctx context.Context,
	userID uuid.UUID,
	req model.AnalyzeSEORequest,
) (*model.SEOPreviewResponse, error) {
	preview, err := s.ctrl.Generate(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var artifact model.SEOArtifact
	if err := json.Unmarshal(preview.Payload, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode preview payload: %w", err)
	}

	return &model.SEOPreviewResponse{
		PreviewID: preview.ID,
		Artifact:  artifact,
		CreatedAt: preview.CreatedAt,
	}, nil
}

func (s *seoService) Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error) {
	return s.ctrl.Save(ctx, userID, previewID)
}

func (s *seoService) Discard(ctx context.Context, userID uuid.UUID) error {
	return s.ctrl.Discard(ctx, userID)
}

func (s *seoService) State(ctx context.Context, userID uuid.UUID) generation.State {
	return s.ctrl.State(ctx, userID)
}

func (s *seoService) Cursor(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.ctrl.Cursor(ctx, userID)
}

func (s *seoService) invoke(gen ai.Generator) generation.InvokeFunc {
	return func(ctx context.Context, ownerID uuid.UUID, req generation.Request) (json.RawMessage, error) {
		form := req.(model.AnalyzeSEORequest)

		prompt := ai.Prompt{
			System: "You are an SEO analyst. Respond with a JSON object of the form {\"score\": number (0-100), \"summary\": string, \"suggestions\": [string]}.",
			User: fmt.Sprintf(
				"Analyze the page %s for the target keyword %q. Score how well the page could rank for the keyword and list concrete improvement suggestions.",
				form.URL, form.Keyword,
			),
			MaxTokens:   1000,
			Temperature: 0.3,
		}

		var out struct {
			Score       int      `json:"score"`
			Summary     string   `json:"summary"`
			Suggestions []string `json:"suggestions"`
		}
		if err := gen.CompleteJSON(ctx, prompt, &out); err != nil {
			return nil, err
		}

		// Clamp the score, the model occasionally wanders off the scale
		if out.Score < 0 {
			out.Score = 0
		}
		if out.Score > 100 {
			out.Score = 100
		}

		artifact := model.SEOArtifact{
			URL:         form.URL,
			Keyword:     form.Keyword,
			Score:       out.Score,
			Summary:     out.Summary,
			Suggestions: out.Suggestions,
		}
		return json.Marshal(artifact)
	}
}

func (s *seoService) persist(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var artifact model.SEOArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	report := &model.SEOReport{
		ID:          uuid.New(),
		UserID:      ownerID,
		URL:         artifact.URL,
		Keyword:     artifact.Keyword,
		Score:       artifact.Score,
		Summary:     artifact.Summary,
		Suggestions: artifact.Suggestions,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return uuid.Nil, err
	}
	return report.ID, nil
}

func (s *seoService) remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if err == model.ErrReportNotFound {
			return generation.ErrArtifactNotFound
		}
		return err
	}
	return nil
}

// =====================================================
// HISTORY / LIST
// =====================================================

func (s *seoService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.SEOReportResponse, error) {
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	reports, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.SEOReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, model.ToSEOReportResponse(r))
	}
	return responses, nil
}

func (s *seoService) Get(ctx context.Context, userID, id uuid.UUID) (*model.SEOReportResponse, error) {
	report, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return model.ToSEOReportResponse(report), nil
}

func (s *seoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.ctrl.Delete(ctx, userID, id)
}
