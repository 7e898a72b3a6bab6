package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Ensure S3Store implements the interfaces at compile time
var (
	_ Store                 = (*S3Store)(nil)
	_ PresignedURLGenerator = (*S3Store)(nil)
	_ FullStore             = (*S3Store)(nil)
)

// S3Store provides blob operations against a single S3 bucket.
// It implements the Store and PresignedURLGenerator interfaces.
// Several stores may share one underlying *s3.Client; the photo and
// thumbnail buckets each get their own S3Store.
type S3Store struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
	logger     *logger.Logger
}

// S3Option defines functional options for configuring S3Store
type S3Option func(*s3Options)

type s3Options struct {
	partSize    int64
	concurrency int
}

// defaultS3Options returns sensible defaults for S3 transfers
func defaultS3Options() *s3Options {
	return &s3Options{
		partSize:    10 * 1024 * 1024, // 10 MB
		concurrency: 5,
	}
}

// WithPartSize sets the part size for multipart transfers (minimum 5MB)
func WithPartSize(size int64) S3Option {
	return func(o *s3Options) {
		if size >= 5*1024*1024 { // AWS minimum is 5MB
			o.partSize = size
		}
	}
}

// WithConcurrency sets the number of concurrent transfer goroutines
func WithConcurrency(n int) S3Option {
	return func(o *s3Options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// NewS3Store creates a blob store bound to the given bucket.
func NewS3Store(client *s3.Client, bucket string, log *logger.Logger, opts ...S3Option) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	options := defaultS3Options()
	for _, opt := range opts {
		opt(options)
	}

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = options.partSize
		u.Concurrency = options.concurrency
	})

	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		d.PartSize = options.partSize
		d.Concurrency = options.concurrency
	})

	log.Info("S3 blob store initialized", "bucket", bucket)

	return &S3Store{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		uploader:   uploader,
		downloader: downloader,
		bucket:     bucket,
		logger:     log,
	}, nil
}

// Upload uploads an object using multipart upload for large bodies.
func (s *S3Store) Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error) {
	if input.Key == "" {
		return nil, domain.ErrInvalidBlobKey
	}
	if input.Body == nil {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(input.Key),
		Body:        input.Body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("failed to upload object",
			"key", input.Key,
			"bucket", s.bucket,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrBlobUploadFailed, err)
	}

	s.logger.Debug("object uploaded successfully",
		"key", input.Key,
		"location", result.Location,
	)

	return &UploadOutput{
		Location: result.Location,
		ETag:     aws.ToString(result.ETag),
	}, nil
}

// Download downloads an object into the provided writer using concurrent
// range requests.
func (s *S3Store) Download(ctx context.Context, key string, w io.WriterAt) (int64, error) {
	if key == "" {
		return 0, domain.ErrInvalidBlobKey
	}

	n, err := s.downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return 0, domain.ErrBlobNotFound
		}
		s.logger.Error("failed to download object",
			"key", key,
			"bucket", s.bucket,
			"error", err,
		)
		return 0, fmt.Errorf("%w: %v", domain.ErrBlobDownloadFailed, err)
	}

	s.logger.Debug("object downloaded successfully", "key", key, "bytes", n)
	return n, nil
}

// GetObject retrieves an object as a ReadCloser.
// The caller is responsible for closing the returned reader.
func (s *S3Store) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, domain.ErrInvalidBlobKey
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, domain.ErrBlobNotFound
		}
		s.logger.Error("failed to get object",
			"key", key,
			"bucket", s.bucket,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrBlobDownloadFailed, err)
	}

	return result.Body, nil
}

// Delete removes an object from the bucket.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidBlobKey
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("failed to delete object",
			"key", key,
			"bucket", s.bucket,
			"error", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrBlobDeleteFailed, err)
	}

	s.logger.Debug("object deleted successfully", "key", key)
	return nil
}

// PresignGet generates a pre-signed URL for downloading an object.
func (s *S3Store) PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error) {
	if key == "" {
		return "", domain.ErrInvalidBlobKey
	}

	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		s.logger.Error("failed to generate presigned URL",
			"key", key,
			"bucket", s.bucket,
			"error", err,
		)
		return "", fmt.Errorf("%w: %v", domain.ErrPresignFailed, err)
	}

	return request.URL, nil
}

// PresignUpload generates pre-signed POST parameters for a direct browser
// upload, scoped to the key and content type and capped at maxBytes.
func (s *S3Store) PresignUpload(ctx context.Context, key, contentType string, maxBytes int64, expiration time.Duration) (*PresignedUpload, error) {
	if key == "" {
		return nil, domain.ErrInvalidBlobKey
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	request, err := s.presigner.PresignPostObject(ctx, input, func(o *s3.PresignPostOptions) {
		o.Expires = expiration
		o.Conditions = []interface{}{
			[]interface{}{"content-length-range", 0, maxBytes},
		}
	})
	if err != nil {
		s.logger.Error("failed to generate presigned upload",
			"key", key,
			"bucket", s.bucket,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrPresignFailed, err)
	}

	return &PresignedUpload{
		URL:    request.URL,
		Fields: request.Values,
	}, nil
}

// Bucket returns the configured bucket name
func (s *S3Store) Bucket() string {
	return s.bucket
}

// isNotFoundError checks if the error indicates the object was not found
func isNotFoundError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "404":
			return true
		}
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	return false
}
