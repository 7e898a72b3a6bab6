package usecase

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/picstash/picstash/internal/blob"
	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

// fakeSigner implements blob.PresignedURLGenerator with deterministic URLs
type fakeSigner struct {
	failGet    bool
	failUpload bool
	failKeys   map[string]bool // keys whose signing fails
}

func (s *fakeSigner) PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error) {
	if s.failGet || s.failKeys[key] {
		return "", domain.ErrPresignFailed
	}
	return "https://signed.example.com/" + key, nil
}

func (s *fakeSigner) PresignUpload(ctx context.Context, key, contentType string, maxBytes int64, expiration time.Duration) (*blob.PresignedUpload, error) {
	if s.failUpload {
		return nil, domain.ErrPresignFailed
	}
	return &blob.PresignedUpload{
		URL: "https://upload.example.com/bucket",
		Fields: map[string]string{
			"key":          key,
			"Content-Type": contentType,
		},
	}, nil
}

// fakeRepo is an in-memory domain.PhotoRepository
type fakeRepo struct {
	records    map[string]*domain.PhotoRecord
	failScan   bool
	failGet    bool
	failDelete bool
}

func newFakeRepo(records ...*domain.PhotoRecord) *fakeRepo {
	r := &fakeRepo{records: map[string]*domain.PhotoRecord{}}
	for _, rec := range records {
		r.records[rec.PhotoID] = rec
	}
	return r
}

func (r *fakeRepo) Put(ctx context.Context, record *domain.PhotoRecord) error {
	r.records[record.PhotoID] = record
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, photoID string) (*domain.PhotoRecord, error) {
	if r.failGet {
		return nil, domain.ErrMetadataStore
	}
	rec, ok := r.records[photoID]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	return rec, nil
}

func (r *fakeRepo) Delete(ctx context.Context, photoID string) error {
	if r.failDelete {
		return domain.ErrMetadataStore
	}
	delete(r.records, photoID)
	return nil
}

func (r *fakeRepo) ScanAll(ctx context.Context) ([]*domain.PhotoRecord, error) {
	if r.failScan {
		return nil, domain.ErrMetadataStore
	}
	var out []*domain.PhotoRecord
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

// fakeStore is an in-memory blob.Store
type fakeStore struct {
	objects    map[string][]byte
	failDelete bool
	deleted    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Upload(ctx context.Context, input *blob.UploadInput) (*blob.UploadOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	s.objects[input.Key] = data
	return &blob.UploadOutput{}, nil
}

func (s *fakeStore) Download(ctx context.Context, key string, w io.WriterAt) (int64, error) {
	data, ok := s.objects[key]
	if !ok {
		return 0, domain.ErrBlobNotFound
	}
	n, err := w.WriteAt(data, 0)
	return int64(n), err
}

func (s *fakeStore) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	if s.failDelete {
		return domain.ErrBlobDeleteFailed
	}
	delete(s.objects, key)
	return nil
}

// completedRecord builds a minimal successful PhotoRecord for list tests
func completedRecord(photoID, filename, uploadDate string) *domain.PhotoRecord {
	return &domain.PhotoRecord{
		PhotoID:             photoID,
		Filename:            filename,
		UploadDate:          uploadDate,
		FileSize:            1234,
		ContentType:         domain.ContentTypeForFilename(filename),
		PhotoKey:            domain.PhotoKey(photoID, filename),
		ThumbnailKey:        domain.ThumbnailKey(photoID, filename),
		Dimensions:          &domain.Dimensions{Width: 800, Height: 400},
		ThumbnailDimensions: &domain.Dimensions{Width: 200, Height: 100},
		ProcessingStatus:    domain.StatusCompleted,
		Tags:                []string{},
	}
}

// failedRecord builds a failed PhotoRecord
func failedRecord(photoID, filename, uploadDate string) *domain.PhotoRecord {
	return &domain.PhotoRecord{
		PhotoID:          photoID,
		Filename:         filename,
		UploadDate:       uploadDate,
		PhotoKey:         domain.PhotoKey(photoID, filename),
		ProcessingStatus: domain.StatusFailed,
		ErrorMessage:     "S3 download failed",
		Tags:             []string{},
	}
}
