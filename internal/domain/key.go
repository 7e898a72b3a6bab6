package domain

import (
	"fmt"
	"strings"
)

const (
	photoKeyPrefix     = "photos"
	thumbnailKeyPrefix = "thumbnails"
)

// PhotoKey builds the canonical storage key for an original photo:
// photos/{photoId}/{filename}
func PhotoKey(photoID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", photoKeyPrefix, photoID, filename)
}

// ThumbnailKey builds the canonical storage key for a photo's thumbnail:
// thumbnails/{photoId}/{filename}
func ThumbnailKey(photoID, filename string) string {
	return fmt.Sprintf("%s/%s/%s", thumbnailKeyPrefix, photoID, filename)
}

// ParsePhotoKey splits a storage key of the form photos/{photoId}/{filename}
// into its photo ID and filename. The filename may itself contain slashes.
// Keys with fewer than three segments or a prefix other than "photos" are
// rejected with ErrInvalidObjectKey.
func ParsePhotoKey(key string) (photoID, filename string, err error) {
	parts := strings.Split(key, "/")
	if len(parts) < 3 || parts[0] != photoKeyPrefix {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidObjectKey, key)
	}
	return parts[1], strings.Join(parts[2:], "/"), nil
}

// allowedContentTypes is the upload allow-list. Anything else is rejected
// at upload-intent time.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// IsAllowedContentType reports whether the given MIME type may be uploaded.
func IsAllowedContentType(contentType string) bool {
	return allowedContentTypes[contentType]
}

// extensionContentTypes maps filename extensions to stored content types.
var extensionContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// ContentTypeForFilename derives a content type from the filename's extension,
// defaulting to image/jpeg for unrecognized extensions.
func ContentTypeForFilename(filename string) string {
	ext := filename
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}
	if ct, ok := extensionContentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return "image/jpeg"
}
