package brand

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentstudio-backend/internal/shared"
	"contentstudio-backend/pkg/logger"
)

// ObjectStore is the slice of the object store the brand kit uses.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// LogoProcessor validates and resizes an uploaded logo.
type LogoProcessor interface {
	ValidateImage(data []byte) error
	ProcessLogo(data []byte) (logo, thumb []byte, err error)
}

// Publisher is the slice of the change feed brand writes notify through.
type Publisher interface {
	Publish(ctx context.Context, table string) error
}

type Service struct {
	repo      Repository
	store     ObjectStore
	processor LogoProcessor
	notify    Publisher
}

func NewService(repo Repository, store ObjectStore, processor LogoProcessor, notify Publisher) *Service {
	return &Service{repo: repo, store: store, processor: processor, notify: notify}
}

// Upsert replaces the caller's kit wholesale. Concurrent saves are
// last write wins; there is no merge.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, req UpsertKitRequest) (*Kit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	kit := &Kit{
		ID:          uuid.New(),
		UserID:      userID,
		BrandName:   req.BrandName,
		Description: req.Description,
		Colors:      req.Colors,
		Fonts:       req.Fonts,
		Hashtags:    req.Hashtags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Upsert(ctx, kit); err != nil {
		return nil, err
	}

	s.publish(ctx)

	// Re-read so the response carries the surviving row id and logo.
	return s.repo.GetByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Kit, error) {
	return s.repo.GetByUser(ctx, userID)
}

// UploadLogo validates, resizes and stores the logo plus a thumbnail.
// Object keys are stable per user, so a re-upload overwrites in place.
func (s *Service) UploadLogo(ctx context.Context, userID uuid.UUID, data []byte) (*Kit, error) {
	if err := s.processor.ValidateImage(data); err != nil {
		return nil, err
	}

	logo, thumb, err := s.processor.ProcessLogo(data)
	if err != nil {
		return nil, err
	}

	logoKey := fmt.Sprintf("brand/%s/logo.jpg", userID)
	thumbKey := fmt.Sprintf("brand/%s/thumb.jpg", userID)

	logoURL, err := s.store.Upload(ctx, logoKey, logo, "image/jpeg")
	if err != nil {
		return nil, err
	}
	thumbURL, err := s.store.Upload(ctx, thumbKey, thumb, "image/jpeg")
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLogo(ctx, userID, logoKey, logoURL, thumbKey, thumbURL); err != nil {
		return nil, err
	}

	s.publish(ctx)

	return s.repo.GetByUser(ctx, userID)
}

// Delete removes the kit and its stored logo objects.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	kit, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	for _, key := range []string{kit.LogoKey, kit.ThumbKey} {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warn("failed to delete brand object", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	s.publish(ctx)
	return nil
}

func (s *Service) publish(ctx context.Context) {
	if err := s.notify.Publish(ctx, shared.TableBrandKits); err != nil {
		logger.Warn("failed to publish brand change event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
