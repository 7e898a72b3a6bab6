package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/picstash/picstash/internal/blob"
	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"
)

// GalleryPhoto is one listed photo with freshly signed access URLs.
type GalleryPhoto struct {
	PhotoID             string
	Filename            string
	UploadDate          string
	FileSize            int64
	ThumbnailURL        string
	PhotoURL            string
	Tags                []string
	Dimensions          *domain.Dimensions
	ThumbnailDimensions *domain.Dimensions
}

// GalleryService lists the gallery: every successfully ingested photo with
// time-limited read URLs for the original and its thumbnail.
type GalleryService struct {
	repo        domain.PhotoRepository
	photoSigner blob.PresignedURLGenerator
	thumbSigner blob.PresignedURLGenerator
	urlTTL      time.Duration
	logg        *logger.Logger
}

// NewGalleryService creates a gallery reader. urlTTL is the shared expiry
// of the signed photo and thumbnail URLs.
func NewGalleryService(repo domain.PhotoRepository, photoSigner, thumbSigner blob.PresignedURLGenerator, urlTTL time.Duration, logg *logger.Logger) *GalleryService {
	return &GalleryService{
		repo:        repo,
		photoSigner: photoSigner,
		thumbSigner: thumbSigner,
		urlTTL:      urlTTL,
		logg:        logg,
	}
}

// ListPhotos returns all non-failed photos, newest first. Records whose URL
// signing fails are dropped from the result rather than failing the request;
// only the initial metadata scan is fatal.
func (s *GalleryService) ListPhotos(ctx context.Context) ([]*GalleryPhoto, error) {
	records, err := s.repo.ScanAll(ctx)
	if err != nil {
		s.logg.Error("failed to scan photo records", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	photos := make([]*GalleryPhoto, 0, len(records))
	for _, rec := range records {
		if rec.ProcessingStatus == domain.StatusFailed {
			continue
		}

		photoURL, err := s.photoSigner.PresignGet(ctx, rec.PhotoKey, s.urlTTL)
		if err != nil {
			s.logg.Warn("failed to sign photo URL, dropping record",
				"error", err, "photo_id", rec.PhotoID)
			continue
		}

		thumbnailURL, err := s.thumbSigner.PresignGet(ctx, rec.ThumbnailKey, s.urlTTL)
		if err != nil {
			s.logg.Warn("failed to sign thumbnail URL, dropping record",
				"error", err, "photo_id", rec.PhotoID)
			continue
		}

		tags := rec.Tags
		if tags == nil {
			tags = []string{}
		}

		photos = append(photos, &GalleryPhoto{
			PhotoID:             rec.PhotoID,
			Filename:            rec.Filename,
			UploadDate:          rec.UploadDate,
			FileSize:            rec.FileSize,
			ThumbnailURL:        thumbnailURL,
			PhotoURL:            photoURL,
			Tags:                tags,
			Dimensions:          rec.Dimensions,
			ThumbnailDimensions: rec.ThumbnailDimensions,
		})
	}

	// Timestamps share one format and timezone, so lexicographic order is
	// chronological order
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].UploadDate > photos[j].UploadDate
	})

	s.logg.Debug("listed photos", "count", len(photos))
	return photos, nil
}
