package website

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/shared"
	"contentstudio-backend/internal/shared/utils"
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
		shared.TableWebsiteProjects,
		previews,
		locks,
		notify,
		s.invoke(gen),
		s.persist,
		s.remove,
	)

	return s
}

func (s *Service) Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*PreviewResponse, error) {
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

func (s *Service) invoke(gen ai.Generator) generation.InvokeFunc {
	return func(ctx context.Context, ownerID uuid.UUID, req generation.Request) (json.RawMessage, error) {
		form := req.(GenerateRequest)

		palette := form.Palette
		if palette == "" {
			palette = "a palette fitting the industry"
		}

		prompt := ai.Prompt{
			System: "You are a web designer. Respond with a JSON object of the form {\"html\": string, \"css\": string}. The HTML is a complete single landing page without inline styles; the CSS is its stylesheet.",
			User: fmt.Sprintf(
				"Create a landing page for %q, a business in the %s industry.\nVisual style: %s\nColor palette: %s\nInclude a hero section, a services section and a contact section.",
				form.BusinessName, form.Industry, form.Style, palette,
			),
			MaxTokens:   4000,
			Temperature: 0.6,
		}

		var out struct {
			HTML string `json:"html"`
			CSS  string `json:"css"`
		}
		if err := gen.CompleteJSON(ctx, prompt, &out); err != nil {
			return nil, err
		}

		artifact := Artifact{
			BusinessName: form.BusinessName,
			Industry:     form.Industry,
			Style:        form.Style,
			Palette:      form.Palette,
			Slug:         utils.GenerateSlug(form.BusinessName),
			HTML:         out.HTML,
			CSS:          out.CSS,
		}
		return json.Marshal(artifact)
	}
}

func (s *Service) persist(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	project := &Project{
		ID:           uuid.New(),
		UserID:       ownerID,
		BusinessName: artifact.BusinessName,
		Industry:     artifact.Industry,
		Style:        artifact.Style,
		Palette:      artifact.Palette,
		Slug:         artifact.Slug,
		HTML:         artifact.HTML,
		CSS:          artifact.CSS,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return uuid.Nil, err
	}
	return project.ID, nil
}

func (s *Service) remove(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if err == ErrProjectNotFound {
			return generation.ErrArtifactNotFound
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]*ListItemResponse, error) {
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	projects, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*ListItemResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toListItemResponse(p))
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.ctrl.Delete(ctx, userID, id)
}
