package domain

import "errors"

// Domain errors - sentinel errors that can be compared with errors.Is()
var (
	// Request validation errors
	ErrMissingParameter   = errors.New("missing required parameter")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidInput       = errors.New("invalid input")

	// Photo errors
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrInvalidObjectKey = errors.New("invalid object key")

	// Metadata store errors
	ErrMetadataStore  = errors.New("metadata store failure")
	ErrMetadataDelete = errors.New("metadata delete failure")

	// Blob storage errors
	ErrBlobNotFound       = errors.New("blob not found")
	ErrBlobUploadFailed   = errors.New("blob upload failed")
	ErrBlobDownloadFailed = errors.New("blob download failed")
	ErrBlobDeleteFailed   = errors.New("blob delete failed")
	ErrInvalidBlobKey     = errors.New("invalid blob key")
	ErrPresignFailed      = errors.New("presign failed")

	// Ingestion errors
	ErrImageProcessing = errors.New("image processing failed")

	// Generic errors
	ErrInternalError = errors.New("internal error")
)
