package ingest

import (
	"context"
	"os"

	"github.com/picstash/picstash/internal/blob"
	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/imageutil"
	"github.com/picstash/picstash/internal/logger"
)

// Error messages recorded on failed PhotoRecords. The gallery excludes
// failed records, so these are the only place the failure reason survives.
const (
	msgDownloadFailed        = "S3 download failed"
	msgProcessingFailed      = "Image processing failed"
	msgThumbnailUploadFailed = "Thumbnail upload failed"
)

// Pipeline reacts to stored-object notifications: it downloads the original
// photo, produces a bounded thumbnail, uploads it to the thumbnail store and
// writes the PhotoRecord. Every failure past key parsing becomes a durable
// failed record rather than an error to the caller; the notification source
// never consumes a result.
type Pipeline struct {
	photos       blob.Store
	thumbnails   blob.Store
	repo         domain.PhotoRepository
	maxDimension int
	logg         *logger.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(photos, thumbnails blob.Store, repo domain.PhotoRepository, maxDimension int, logg *logger.Logger) *Pipeline {
	if maxDimension <= 0 {
		maxDimension = imageutil.DefaultMaxDimension
	}
	return &Pipeline{
		photos:       photos,
		thumbnails:   thumbnails,
		repo:         repo,
		maxDimension: maxDimension,
		logg:         logg,
	}
}

// Process handles one notification batch. Records are independent: a
// failure in one never aborts the others.
func (p *Pipeline) Process(ctx context.Context, event *Event) {
	for _, rec := range event.Records {
		p.processRecord(ctx, rec.S3.Bucket.Name, rec.S3.Object.Key)
	}
}

// processRecord runs the stage sequence for a single stored object. Each
// stage either advances or writes a failed record and returns; staged temp
// files are removed on every exit path.
func (p *Pipeline) processRecord(ctx context.Context, bucket, key string) {
	photoID, filename, err := domain.ParsePhotoKey(key)
	if err != nil {
		// Not an ingestable object; skip without writing a record
		p.logg.Warn("skipping object with invalid key format", "bucket", bucket, "key", key)
		return
	}

	logg := p.logg.WithFields("photo_id", photoID, "key", key)
	logg.Info("processing photo", "bucket", bucket)

	original, err := os.CreateTemp("", "picstash-original-*")
	if err != nil {
		logg.Error("failed to stage original", "error", err)
		p.recordFailure(ctx, photoID, filename, key, msgDownloadFailed)
		return
	}
	defer p.cleanup(original)

	thumbnail, err := os.CreateTemp("", "picstash-thumbnail-*")
	if err != nil {
		logg.Error("failed to stage thumbnail", "error", err)
		p.recordFailure(ctx, photoID, filename, key, msgProcessingFailed)
		return
	}
	defer p.cleanup(thumbnail)

	size, err := p.photos.Download(ctx, key, original)
	if err != nil {
		logg.Error("photo download failed", "error", err)
		p.recordFailure(ctx, photoID, filename, key, msgDownloadFailed)
		return
	}

	if _, err := original.Seek(0, 0); err != nil {
		logg.Error("failed to rewind staged original", "error", err)
		p.recordFailure(ctx, photoID, filename, key, msgProcessingFailed)
		return
	}

	result, err := imageutil.Thumbnail(original, thumbnail, p.maxDimension)
	if err != nil {
		logg.Error("image processing failed", "error", err)
		p.recordFailure(ctx, photoID, filename, key, msgProcessingFailed)
		return
	}

	logg.Debug("thumbnail generated",
		"original", result.Original,
		"thumbnail", result.Thumbnail,
		"format", result.Format,
	)

	if _, err := thumbnail.Seek(0, 0); err != nil {
		logg.Error("failed to rewind staged thumbnail", "error", err)
		p.recordFailure(ctx, photoID, filename, key, msgThumbnailUploadFailed)
		return
	}

	thumbnailKey := domain.ThumbnailKey(photoID, filename)
	contentType := domain.ContentTypeForFilename(filename)

	_, err = p.thumbnails.Upload(ctx, &blob.UploadInput{
		Key:         thumbnailKey,
		Body:        thumbnail,
		ContentType: contentType,
	})
	if err != nil {
		logg.Error("thumbnail upload failed", "error", err)
		p.recordFailure(ctx, photoID, filename, key, msgThumbnailUploadFailed)
		return
	}

	record := &domain.PhotoRecord{
		PhotoID:             photoID,
		Filename:            filename,
		UploadDate:          domain.NewUploadDate(),
		FileSize:            size,
		ContentType:         contentType,
		PhotoKey:            key,
		ThumbnailKey:        thumbnailKey,
		Dimensions:          &result.Original,
		ThumbnailDimensions: &result.Thumbnail,
		ProcessingStatus:    domain.StatusCompleted,
		Tags:                []string{},
	}

	// A metadata write failure is logged only; the notification source's
	// redelivery policy is the retry mechanism.
	if err := p.repo.Put(ctx, record); err != nil {
		logg.Error("failed to write photo record", "error", err)
		return
	}

	logg.Info("photo ingested",
		"file_size", size,
		"thumbnail_key", thumbnailKey,
	)
}

// recordFailure writes a failed PhotoRecord so the failure is observable in
// the metadata store. A failed write here is logged and dropped; the photo
// simply never appears in the gallery.
func (p *Pipeline) recordFailure(ctx context.Context, photoID, filename, photoKey, message string) {
	record := &domain.PhotoRecord{
		PhotoID:          photoID,
		Filename:         filename,
		UploadDate:       domain.NewUploadDate(),
		PhotoKey:         photoKey,
		ProcessingStatus: domain.StatusFailed,
		ErrorMessage:     message,
		Tags:             []string{},
	}

	if err := p.repo.Put(ctx, record); err != nil {
		p.logg.Error("failed to write error record", "error", err, "photo_id", photoID)
	}
}

// cleanup closes and removes a staged temp file
func (p *Pipeline) cleanup(f *os.File) {
	name := f.Name()
	f.Close()
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		p.logg.Warn("failed to remove temp file", "path", name, "error", err)
	}
}
