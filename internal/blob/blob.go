package blob

import (
	"context"
	"io"
	"time"
)

// UploadInput contains parameters for uploading an object
type UploadInput struct {
	Key         string    // Object key (required)
	Body        io.Reader // Content to upload (required)
	ContentType string    // MIME type (optional, defaults to application/octet-stream)
}

// UploadOutput contains the result of an upload operation
type UploadOutput struct {
	Location string // URL or path of the uploaded object
	ETag     string // Entity tag for the object
}

// PresignedUpload is a time-limited credential for a direct browser upload.
// The client POSTs the file to URL with every field in Fields included in
// the multipart form.
type PresignedUpload struct {
	URL    string
	Fields map[string]string
}

// Store defines the contract for blob storage operations.
// The domain defines the interface, infrastructure implements it.
type Store interface {
	// Upload uploads an object to the store.
	Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error)

	// Download downloads an object into the provided writer.
	// Returns the number of bytes written.
	Download(ctx context.Context, key string, w io.WriterAt) (int64, error)

	// GetObject retrieves an object and returns it as a ReadCloser.
	// The caller is responsible for closing the returned reader.
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object from the store.
	Delete(ctx context.Context, key string) error
}

// PresignedURLGenerator defines the contract for generating pre-signed
// access to objects. Not all storage backends support this (e.g. the local
// filesystem store).
type PresignedURLGenerator interface {
	// PresignGet generates a pre-signed URL for downloading an object.
	// The URL is valid for the specified duration.
	PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error)

	// PresignUpload generates pre-signed POST parameters for uploading an
	// object, scoped to the given key and content type and limited to
	// maxBytes. The credential is valid for the specified duration.
	PresignUpload(ctx context.Context, key, contentType string, maxBytes int64, expiration time.Duration) (*PresignedUpload, error)
}

// FullStore combines Store with PresignedURLGenerator for backends that support both.
type FullStore interface {
	Store
	PresignedURLGenerator
}
