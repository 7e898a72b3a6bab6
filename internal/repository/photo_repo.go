package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"
)

// photoRepo is the PostgreSQL implementation of domain.PhotoRepository
// It contains NO business logic - only data persistence
type photoRepo struct {
	db   *pgxpool.Pool
	logg *logger.Logger
}

// NewPhotoRepo creates a Postgres-backed photo repository
func NewPhotoRepo(db *pgxpool.Pool, logg *logger.Logger) domain.PhotoRepository {
	return &photoRepo{db: db, logg: logg}
}

// schema holds the photos table definition. The upsert in Put depends on
// the photo_id primary key.
const schema = `
CREATE TABLE IF NOT EXISTS photos (
    photo_id          TEXT PRIMARY KEY,
    filename          TEXT NOT NULL,
    upload_date       TEXT NOT NULL,
    file_size         BIGINT,
    content_type      TEXT,
    photo_key         TEXT,
    thumbnail_key     TEXT,
    width             INTEGER,
    height            INTEGER,
    thumb_width       INTEGER,
    thumb_height      INTEGER,
    processing_status TEXT NOT NULL,
    error_message     TEXT,
    tags              TEXT[] NOT NULL DEFAULT '{}'
)`

// EnsureSchema creates the photos table if it does not exist
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure photos schema: %w", err)
	}
	return nil
}

// Put writes the record with last-write-wins semantics per photo_id
// Responsibility: Execute upsert and translate errors to domain errors
func (r *photoRepo) Put(ctx context.Context, rec *domain.PhotoRecord) error {
	query := `
		INSERT INTO photos (
			photo_id, filename, upload_date, file_size, content_type,
			photo_key, thumbnail_key, width, height, thumb_width, thumb_height,
			processing_status, error_message, tags
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (photo_id) DO UPDATE SET
			filename          = EXCLUDED.filename,
			upload_date       = EXCLUDED.upload_date,
			file_size         = EXCLUDED.file_size,
			content_type      = EXCLUDED.content_type,
			photo_key         = EXCLUDED.photo_key,
			thumbnail_key     = EXCLUDED.thumbnail_key,
			width             = EXCLUDED.width,
			height            = EXCLUDED.height,
			thumb_width       = EXCLUDED.thumb_width,
			thumb_height      = EXCLUDED.thumb_height,
			processing_status = EXCLUDED.processing_status,
			error_message     = EXCLUDED.error_message,
			tags              = EXCLUDED.tags`

	var fileSize *int64
	if rec.FileSize > 0 {
		fileSize = &rec.FileSize
	}
	var contentType, thumbnailKey, errorMessage *string
	if rec.ContentType != "" {
		contentType = &rec.ContentType
	}
	if rec.ThumbnailKey != "" {
		thumbnailKey = &rec.ThumbnailKey
	}
	if rec.ErrorMessage != "" {
		errorMessage = &rec.ErrorMessage
	}
	var width, height, thumbWidth, thumbHeight *int
	if rec.Dimensions != nil {
		width, height = &rec.Dimensions.Width, &rec.Dimensions.Height
	}
	if rec.ThumbnailDimensions != nil {
		thumbWidth, thumbHeight = &rec.ThumbnailDimensions.Width, &rec.ThumbnailDimensions.Height
	}
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		rec.PhotoID,
		rec.Filename,
		rec.UploadDate,
		fileSize,
		contentType,
		rec.PhotoKey,
		thumbnailKey,
		width,
		height,
		thumbWidth,
		thumbHeight,
		string(rec.ProcessingStatus),
		errorMessage,
		tags,
	)
	if err != nil {
		r.logg.Error("failed to put photo record", "error", err, "photo_id", rec.PhotoID)
		return fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	return nil
}

// Get fetches a record by photo ID
// Responsibility: Query database and translate errors to domain errors
func (r *photoRepo) Get(ctx context.Context, photoID string) (*domain.PhotoRecord, error) {
	query := `
		SELECT photo_id, filename, upload_date, file_size, content_type,
		       photo_key, thumbnail_key, width, height, thumb_width, thumb_height,
		       processing_status, error_message, tags
		FROM photos WHERE photo_id = $1`

	rec, err := scanPhoto(r.db.QueryRow(ctx, query, photoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		r.logg.Error("failed to get photo record", "error", err, "photo_id", photoID)
		return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	return rec, nil
}

// Delete removes a record by photo ID
func (r *photoRepo) Delete(ctx context.Context, photoID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM photos WHERE photo_id = $1", photoID)
	if err != nil {
		r.logg.Error("failed to delete photo record", "error", err, "photo_id", photoID)
		return fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
	}

	return nil
}

// ScanAll returns every record, reading in fixed-size keyset batches so a
// large table never has to fit in a single query result
func (r *photoRepo) ScanAll(ctx context.Context) ([]*domain.PhotoRecord, error) {
	const batchSize = 500

	query := `
		SELECT photo_id, filename, upload_date, file_size, content_type,
		       photo_key, thumbnail_key, width, height, thumb_width, thumb_height,
		       processing_status, error_message, tags
		FROM photos WHERE photo_id > $1 ORDER BY photo_id LIMIT $2`

	var records []*domain.PhotoRecord
	lastID := ""

	for {
		rows, err := r.db.Query(ctx, query, lastID, batchSize)
		if err != nil {
			r.logg.Error("failed to scan photo records", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
		}

		batch, err := collectPhotos(rows)
		if err != nil {
			r.logg.Error("failed to scan photo row", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrMetadataStore, err)
		}

		records = append(records, batch...)
		if len(batch) < batchSize {
			break
		}
		lastID = batch[len(batch)-1].PhotoID
	}

	return records, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for shared scanning
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*domain.PhotoRecord, error) {
	var rec domain.PhotoRecord
	var fileSize *int64
	var contentType, photoKey, thumbnailKey, errorMessage *string
	var width, height, thumbWidth, thumbHeight *int
	var status string

	err := row.Scan(
		&rec.PhotoID,
		&rec.Filename,
		&rec.UploadDate,
		&fileSize,
		&contentType,
		&photoKey,
		&thumbnailKey,
		&width,
		&height,
		&thumbWidth,
		&thumbHeight,
		&status,
		&errorMessage,
		&rec.Tags,
	)
	if err != nil {
		return nil, err
	}

	rec.ProcessingStatus = domain.ProcessingStatus(status)
	if fileSize != nil {
		rec.FileSize = *fileSize
	}
	if contentType != nil {
		rec.ContentType = *contentType
	}
	if photoKey != nil {
		rec.PhotoKey = *photoKey
	}
	if thumbnailKey != nil {
		rec.ThumbnailKey = *thumbnailKey
	}
	if errorMessage != nil {
		rec.ErrorMessage = *errorMessage
	}
	if width != nil && height != nil {
		rec.Dimensions = &domain.Dimensions{Width: *width, Height: *height}
	}
	if thumbWidth != nil && thumbHeight != nil {
		rec.ThumbnailDimensions = &domain.Dimensions{Width: *thumbWidth, Height: *thumbHeight}
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}

	return &rec, nil
}

func collectPhotos(rows pgx.Rows) ([]*domain.PhotoRecord, error) {
	defer rows.Close()

	var records []*domain.PhotoRecord
	for rows.Next() {
		rec, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
