package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/shared"
)

// =====================================================
// SERVICE
// =====================================================

type Service struct {
	repo         Repository
	ctrl         *generation.Controller
	historyLimit int
}

func NewService(
	repo Repository,
	gen ai.Generator,
	previews generation.PreviewStore,
	locks generation.Locker,
	notify generation.Notifier,
	historyLimit int,
) *Service {
	s := &Service{
		repo:         repo,
		historyLimit: historyLimit,
	}

	s.ctrl = generation.NewController(
		shared.TableSiteAudits,
		previews,
		locks,
		notify,
		s.invoke(gen),
		s.persist,
		s.remove,
	)

	return s
}

func (s *Service) Run(ctx context.Context, userID uuid.UUID, req RunRequest) (*PreviewResponse, error) {
	preview, err := s.ctrl.Generate(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var artifact Artifact
	if err := json.Unmarshal(preview.Payload, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode preview payload: %w", err)
	}

	return &PreviewResponse{
		PreviewID: preview.ID,
		Artifact:  artifact,
		CreatedAt: preview.CreatedAt,
	}, nil
}

func (s *Service) Save(ctx context.Context, userID, previewID uuid.UUID) (*generation.SaveResult, error) {
	return s.ctrl.Save(ctx, userID, previewID)
}

func (s *Service) Discard(ctx context.Context, userID uuid.UUID) error {
	return s.ctrl.Discard(ctx, userID)
}

func (s *Service) State(ctx context.Context, userID uuid.UUID) generation.State {
	return s.ctrl.State(ctx, userID)
}

func (s *Service) Cursor(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.ctrl.Cursor(ctx, userID)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func (s *Service) invoke(gen ai.Generator) generation.InvokeFunc {
	return func(ctx context.Context, ownerID uuid.UUID, req generation.Request) (json.RawMessage, error) {
		form := req.(RunRequest)

		prompt := ai.Prompt{
			System: "You are a website auditor. Respond with a JSON object of the form {\"performance\": number, \"seo\": number, \"accessibility\": number, \"best_practices\": number, \"suggestions\": [string]}. All scores are 0-100.",
			User: fmt.Sprintf(
				"Audit the website %s. Score performance, SEO, accessibility and best practices, and list the most impactful improvement suggestions.",
				form.URL,
			),
			MaxTokens:   1200,
			Temperature: 0.3,
		}

		var out struct {
			Performance   int      `json:"performance"`
			SEO           int      `json:"seo"`
			Accessibility int      `json:"accessibility"`
			BestPractices int      `json:"best_practices"`
			Suggestions   []string `json:"suggestions"`
		}
		if err := gen.CompleteJSON(ctx, prompt, &out); err != nil {
			return nil, err
		}

		artifact := Artifact{
			URL: form.URL,
			Scores: Scores{
				Performance:   clampScore(out.Performance),
				SEO:           clampScore(out.SEO),
				Accessibility: clampScore(out.Accessibility),
				BestPractices: clampScore(out.BestPractices),
			},
			Suggestions: out.Suggestions,
		}
		return json.Marshal(artifact)
	}
}

func (s *Service) persist(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	audit := &SiteAudit{
		ID:          uuid.New(),
		UserID:      ownerID,
		URL:         artifact.URL,
		Scores:      artifact.Scores,
		Suggestions: artifact.Suggestions,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, audit); err != nil {
		return uuid.Nil, err
	}
	return audit.ID, nil
}

func (s *Service) remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if err == ErrAuditNotFound {
			return generation.ErrArtifactNotFound
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]*AuditResponse, error) {
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	audits, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*AuditResponse, 0, len(audits))
	for _, a := range audits {
		responses = append(responses, toAuditResponse(a))
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*AuditResponse, error) {
	audit, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toAuditResponse(audit), nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.ctrl.Delete(ctx, userID, id)
}
