package blob

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/picstash/picstash/internal/domain"
	"github.com/picstash/picstash/internal/logger"
)

// Ensure FileSystemStore implements the Store interface at compile time
var _ Store = (*FileSystemStore)(nil)

// FileSystemStore provides file system-based blob storage for local
// development and tests. It does not implement PresignedURLGenerator, so
// upload-intent and gallery signing require an S3 backend.
type FileSystemStore struct {
	basePath string
	logger   *logger.Logger
	mu       sync.RWMutex // Protects concurrent file operations
}

// NewFileSystemStore creates a new file system-based blob store rooted at basePath.
func NewFileSystemStore(basePath string, log *logger.Logger) (*FileSystemStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path is required")
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	log.Info("file system blob store initialized", "basePath", absPath)

	return &FileSystemStore{
		basePath: absPath,
		logger:   log,
	}, nil
}

// fullPath constructs the full file path for a key
func (f *FileSystemStore) fullPath(key string) (string, error) {
	if key == "" {
		return "", domain.ErrInvalidBlobKey
	}

	// Prevent path traversal attacks
	cleanKey := filepath.Clean(key)
	if strings.HasPrefix(cleanKey, "..") || filepath.IsAbs(cleanKey) {
		return "", fmt.Errorf("%w: invalid key path", domain.ErrInvalidBlobKey)
	}

	return filepath.Join(f.basePath, cleanKey), nil
}

// Upload writes the object to disk, creating parent directories as needed.
func (f *FileSystemStore) Upload(ctx context.Context, input *UploadInput) (*UploadOutput, error) {
	if input.Body == nil {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}

	path, err := f.fullPath(input.Key)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBlobUploadFailed, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBlobUploadFailed, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBlobUploadFailed, err)
	}

	sum := md5.Sum(data)

	f.logger.Debug("object written", "key", input.Key, "bytes", len(data))

	return &UploadOutput{
		Location: path,
		ETag:     hex.EncodeToString(sum[:]),
	}, nil
}

// Download reads the object into the provided writer.
func (f *FileSystemStore) Download(ctx context.Context, key string, w io.WriterAt) (int64, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return 0, err
	}

	f.mu.RLock()
	data, err := os.ReadFile(path)
	f.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return 0, domain.ErrBlobNotFound
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrBlobDownloadFailed, err)
	}

	n, err := w.WriteAt(data, 0)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %v", domain.ErrBlobDownloadFailed, err)
	}

	return int64(n), nil
}

// GetObject retrieves the object as a ReadCloser.
func (f *FileSystemStore) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return nil, err
	}

	f.mu.RLock()
	data, err := os.ReadFile(path)
	f.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBlobDownloadFailed, err)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the object from disk. Deleting a missing object is not an error.
func (f *FileSystemStore) Delete(ctx context.Context, key string) error {
	path, err := f.fullPath(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", domain.ErrBlobDeleteFailed, err)
	}

	return nil
}
