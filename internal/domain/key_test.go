package domain

import (
	"errors"
	"testing"
)

func TestPhotoKey(t *testing.T) {
	key := PhotoKey("abc-123", "cat.png")
	if key != "photos/abc-123/cat.png" {
		t.Errorf("PhotoKey = %q, want photos/abc-123/cat.png", key)
	}
}

func TestThumbnailKey(t *testing.T) {
	key := ThumbnailKey("abc-123", "cat.png")
	if key != "thumbnails/abc-123/cat.png" {
		t.Errorf("ThumbnailKey = %q, want thumbnails/abc-123/cat.png", key)
	}
}

func TestParsePhotoKey(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		wantID       string
		wantFilename string
		wantErr      bool
	}{
		{"simple", "photos/abc/cat.png", "abc", "cat.png", false},
		{"filename with slash", "photos/abc/albums/cat.png", "abc", "albums/cat.png", false},
		{"wrong prefix", "not-photos/x/y", "", "", true},
		{"thumbnail prefix", "thumbnails/abc/cat.png", "", "", true},
		{"too few segments", "photos/abc", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, filename, err := ParsePhotoKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidObjectKey) {
					t.Fatalf("ParsePhotoKey(%q) error = %v, want ErrInvalidObjectKey", tt.key, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePhotoKey(%q) unexpected error: %v", tt.key, err)
			}
			if id != tt.wantID || filename != tt.wantFilename {
				t.Errorf("ParsePhotoKey(%q) = (%q, %q), want (%q, %q)",
					tt.key, id, filename, tt.wantID, tt.wantFilename)
			}
		})
	}
}

func TestParsePhotoKeyRoundTrip(t *testing.T) {
	key := PhotoKey("id-1", "dir/photo.jpg")
	id, filename, err := ParsePhotoKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "id-1" || filename != "dir/photo.jpg" {
		t.Errorf("round trip = (%q, %q), want (id-1, dir/photo.jpg)", id, filename)
	}
}

func TestIsAllowedContentType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/gif"} {
		if !IsAllowedContentType(ct) {
			t.Errorf("expected %s to be allowed", ct)
		}
	}
	for _, ct := range []string{"application/pdf", "image/webp", "text/html", ""} {
		if IsAllowedContentType(ct) {
			t.Errorf("expected %s to be rejected", ct)
		}
	}
}

func TestContentTypeForFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"cat.jpg", "image/jpeg"},
		{"cat.JPEG", "image/jpeg"},
		{"cat.png", "image/png"},
		{"cat.PNG", "image/png"},
		{"cat.gif", "image/gif"},
		{"cat.webp", "image/jpeg"}, // unrecognized extensions default to jpeg
		{"noextension", "image/jpeg"},
		{"archive.tar.png", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := ContentTypeForFilename(tt.filename); got != tt.want {
				t.Errorf("ContentTypeForFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
