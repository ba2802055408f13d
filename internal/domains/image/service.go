package image

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/generation"
	"contentstudio-backend/internal/infrastructure/ai"
	"contentstudio-backend/internal/shared"
	"contentstudio-backend/pkg/logger"
)

// ObjectStore is the slice of object storage this domain needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// =====================================================
// SERVICE
// =====================================================

type Service struct {
	repo         Repository
	store        ObjectStore
	previews     generation.PreviewStore
	ctrl         *generation.Controller
	historyLimit int
}

func NewService(
	repo Repository,
	store ObjectStore,
	gen ai.Generator,
	previews generation.PreviewStore,
	locks generation.Locker,
	notify generation.Notifier,
	historyLimit int,
) *Service {
	s := &Service{
		repo:         repo,
		store:        store,
		previews:     previews,
		historyLimit: historyLimit,
	}

	s.ctrl = generation.NewController(
		shared.TableGeneratedImages,
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

// Discard drops the preview and removes the already uploaded binary.
func (s *Service) Discard(ctx context.Context, userID uuid.UUID) error {
	preview, err := s.previews.Get(ctx, shared.TableGeneratedImages, userID)
	if err == nil {
		var artifact Artifact
		if jsonErr := json.Unmarshal(preview.Payload, &artifact); jsonErr == nil && artifact.ObjectKey != "" {
			if delErr := s.store.Delete(ctx, artifact.ObjectKey); delErr != nil {
				logger.Error("failed to remove discarded image object", delErr)
			}
		}
	}
	return s.ctrl.Discard(ctx, userID)
}

func (s *Service) State(ctx context.Context, userID uuid.UUID) generation.State {
	return s.ctrl.State(ctx, userID)
}

func (s *Service) Cursor(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.ctrl.Cursor(ctx, userID)
}

// invoke calls the provider, then uploads the binary so the preview can
// be rendered from a URL straight away.
func (s *Service) invoke(gen ai.Generator) generation.InvokeFunc {
	return func(ctx context.Context, ownerID uuid.UUID, req generation.Request) (json.RawMessage, error) {
		form := req.(GenerateRequest)

		img, err := gen.GenerateImage(ctx, form.Prompt, form.Size)
		if err != nil {
			return nil, err
		}

		key := fmt.Sprintf("images/%s/%s.png", ownerID, uuid.New())
		url, err := s.store.Upload(ctx, key, img.Data, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload generated image: %w", err)
		}

		artifact := Artifact{
			Prompt:    form.Prompt,
			Size:      form.Size,
			ObjectKey: key,
			URL:       url,
		}
		return json.Marshal(artifact)
	}
}

func (s *Service) persist(ctx context.Context, ownerID uuid.UUID, payload json.RawMessage) (uuid.UUID, error) {
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	img := &GeneratedImage{
		ID:        uuid.New(),
		UserID:    ownerID,
		Prompt:    artifact.Prompt,
		Size:      artifact.Size,
		ObjectKey: artifact.ObjectKey,
		URL:       artifact.URL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, img); err != nil {
		return uuid.Nil, err
	}
	return img.ID, nil
}

// remove deletes the row and its binary; a missing object is logged,
// not surfaced, the row is the source of truth.
func (s *Service) remove(ctx context.Context, ownerID, id uuid.UUID) error {
	img, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if err == ErrImageNotFound {
			return generation.ErrArtifactNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if err == ErrImageNotFound {
			return generation.ErrArtifactNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, img.ObjectKey); err != nil {
		logger.Error("failed to remove deleted image object", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]*ImageResponse, error) {
	if limit < 1 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	images, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*ImageResponse, 0, len(images))
	for _, img := range images {
		responses = append(responses, toImageResponse(img))
	}
	return responses, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.ctrl.Delete(ctx, userID, id)
}
