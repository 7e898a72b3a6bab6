package domain

import (
	"context"
	"time"
)

// ProcessingStatus reflects the outcome of the ingestion pipeline for a photo.
type ProcessingStatus string

const (
	StatusCompleted ProcessingStatus = "completed"
	StatusFailed    ProcessingStatus = "failed"
)

// Dimensions holds a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PhotoRecord is the durable metadata row for one uploaded photo.
// It is written exactly once per ingestion attempt as a full overwrite keyed
// by PhotoID, so reprocessing the same upload notification is idempotent.
// Failure records carry only identity, keys, status and ErrorMessage.
type PhotoRecord struct {
	PhotoID             string
	Filename            string
	UploadDate          string // ISO-8601 UTC, set at ingestion completion
	FileSize            int64
	ContentType         string
	PhotoKey            string
	ThumbnailKey        string
	Dimensions          *Dimensions
	ThumbnailDimensions *Dimensions
	ProcessingStatus    ProcessingStatus
	ErrorMessage        string
	Tags                []string
}

// PhotoRepository defines the contract for photo metadata persistence.
// The domain defines the interface, infrastructure implements it.
type PhotoRepository interface {
	// Put writes the record, replacing any existing record with the same PhotoID.
	Put(ctx context.Context, record *PhotoRecord) error

	// Get fetches a record by photo ID. Returns ErrPhotoNotFound if absent.
	Get(ctx context.Context, photoID string) (*PhotoRecord, error)

	// Delete removes a record by photo ID.
	Delete(ctx context.Context, photoID string) error

	// ScanAll returns every record in the store, paginating internally
	// until the table is exhausted.
	ScanAll(ctx context.Context) ([]*PhotoRecord, error)
}

// uploadDateFormat matches the timestamp layout stored on every record.
// All timestamps share this format and timezone, so descending order by
// upload date is a plain lexicographic comparison.
const uploadDateFormat = "2006-01-02T15:04:05.000000Z"

// NewUploadDate returns the current UTC time formatted for PhotoRecord.UploadDate.
func NewUploadDate() string {
	return time.Now().UTC().Format(uploadDateFormat)
}
