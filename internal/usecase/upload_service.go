package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/picstash/picstash/internal/blob"
	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"
)

// UploadIntent is the credential bundle a client needs to upload one photo
// directly to object storage.
type UploadIntent struct {
	UploadURL string
	Fields    map[string]string
	PhotoID   string
	Key       string
}

// UploadService issues presigned upload credentials. It never writes
// metadata; the PhotoRecord is created only after ingestion sees the
// uploaded object.
type UploadService struct {
	signer   blob.PresignedURLGenerator
	expiry   time.Duration
	maxBytes int64
	logg     *logger.Logger
}

// NewUploadService creates an upload-intent service. expiry bounds the
// credential validity window and maxBytes the accepted upload size.
func NewUploadService(signer blob.PresignedURLGenerator, expiry time.Duration, maxBytes int64, logg *logger.Logger) *UploadService {
	return &UploadService{
		signer:   signer,
		expiry:   expiry,
		maxBytes: maxBytes,
		logg:     logg,
	}
}

// CreateUploadIntent validates the request, allocates a photo ID and returns
// presigned upload parameters scoped to the canonical photo key.
func (s *UploadService) CreateUploadIntent(ctx context.Context, filename, contentType string) (*UploadIntent, error) {
	if strings.TrimSpace(filename) == "" || strings.TrimSpace(contentType) == "" {
		return nil, domain.ErrMissingParameter
	}

	if !domain.IsAllowedContentType(contentType) {
		s.logg.Warn("rejected upload intent", "content_type", contentType)
		return nil, domain.ErrInvalidContentType
	}

	// 128-bit random identifier; collision probability is negligible
	photoID := uuid.New().String()
	key := domain.PhotoKey(photoID, filename)

	upload, err := s.signer.PresignUpload(ctx, key, contentType, s.maxBytes, s.expiry)
	if err != nil {
		s.logg.Error("failed to presign upload", "error", err, "key", key)
		return nil, fmt.Errorf("%w: %v", domain.ErrPresignFailed, err)
	}

	s.logg.Info("upload intent created", "photo_id", photoID, "key", key)

	return &UploadIntent{
		UploadURL: upload.URL,
		Fields:    upload.Fields,
		PhotoID:   photoID,
		Key:       key,
	}, nil
}
