package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/picstash/picstash/internal/blob"
	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"
)

// PhotoService handles photo lifecycle operations that span both stores and
// the metadata repository.
type PhotoService struct {
	repo       domain.PhotoRepository
	photos     blob.Store
	thumbnails blob.Store
	logg       *logger.Logger
}

// NewPhotoService creates a photo lifecycle service.
func NewPhotoService(repo domain.PhotoRepository, photos, thumbnails blob.Store, logg *logger.Logger) *PhotoService {
	return &PhotoService{
		repo:       repo,
		photos:     photos,
		thumbnails: thumbnails,
		logg:       logg,
	}
}

// DeletePhoto removes the photo object, its thumbnail and its metadata
// record. The object deletions are best-effort: a failure there is logged
// and deletion proceeds. Only the final metadata delete is surfaced, since
// failing it leaves the record visible.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID string) error {
	if strings.TrimSpace(photoID) == "" {
		return domain.ErrMissingParameter
	}

	rec, err := s.repo.Get(ctx, photoID)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return err
		}
		s.logg.Error("failed to fetch photo record", "error", err, "photo_id", photoID)
		return fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	if rec.PhotoKey != "" {
		if err := s.photos.Delete(ctx, rec.PhotoKey); err != nil {
			s.logg.Warn("failed to delete photo object, continuing",
				"error", err, "key", rec.PhotoKey)
		}
	}

	if rec.ThumbnailKey != "" {
		if err := s.thumbnails.Delete(ctx, rec.ThumbnailKey); err != nil {
			s.logg.Warn("failed to delete thumbnail object, continuing",
				"error", err, "key", rec.ThumbnailKey)
		}
	}

	if err := s.repo.Delete(ctx, photoID); err != nil {
		s.logg.Error("failed to delete photo record", "error", err, "photo_id", photoID)
		return fmt.Errorf("%w: %v", domain.ErrMetadataDelete, err)
	}

	s.logg.Info("photo deleted", "photo_id", photoID)
	return nil
}
