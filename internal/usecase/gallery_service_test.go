package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/picstash/picstash/internal/domain"
)

func newGalleryService(repo *fakeRepo, photoSigner, thumbSigner *fakeSigner) *GalleryService {
	return NewGalleryService(repo, photoSigner, thumbSigner, time.Hour, testLogger())
}

func TestListPhotos(t *testing.T) {
	repo := newFakeRepo(
		completedRecord("a", "one.png", "2024-01-01T00:00:00.000000Z"),
		completedRecord("b", "two.jpg", "2024-06-01T00:00:00.000000Z"),
	)
	svc := newGalleryService(repo, &fakeSigner{}, &fakeSigner{})

	photos, err := svc.ListPhotos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("photos = %d, want 2", len(photos))
	}

	// Newest first
	if photos[0].PhotoID != "b" || photos[1].PhotoID != "a" {
		t.Errorf("order = [%s, %s], want [b, a]", photos[0].PhotoID, photos[1].PhotoID)
	}

	first := photos[0]
	if !strings.Contains(first.PhotoURL, first.PhotoID) {
		t.Errorf("photoUrl %q does not reference the photo key", first.PhotoURL)
	}
	if !strings.Contains(first.ThumbnailURL, "thumbnails/") {
		t.Errorf("thumbnailUrl %q does not reference the thumbnail key", first.ThumbnailURL)
	}
	if first.Tags == nil {
		t.Error("tags must be non-nil")
	}
	if first.Dimensions == nil || first.ThumbnailDimensions == nil {
		t.Error("dimensions must be present on completed records")
	}
}

func TestListPhotosExcludesFailed(t *testing.T) {
	repo := newFakeRepo(
		completedRecord("ok", "good.png", "2024-01-01T00:00:00.000000Z"),
		failedRecord("broken", "bad.png", "2024-02-01T00:00:00.000000Z"),
	)
	svc := newGalleryService(repo, &fakeSigner{}, &fakeSigner{})

	photos, err := svc.ListPhotos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(photos))
	}
	if photos[0].PhotoID != "ok" {
		t.Errorf("photoId = %q, want ok", photos[0].PhotoID)
	}
}

func TestListPhotosDropsUnsignableRecords(t *testing.T) {
	repo := newFakeRepo(
		completedRecord("a", "one.png", "2024-01-01T00:00:00.000000Z"),
		completedRecord("b", "two.png", "2024-02-01T00:00:00.000000Z"),
	)
	photoSigner := &fakeSigner{failKeys: map[string]bool{
		domain.PhotoKey("b", "two.png"): true,
	}}
	svc := newGalleryService(repo, photoSigner, &fakeSigner{})

	photos, err := svc.ListPhotos(context.Background())
	if err != nil {
		t.Fatalf("signing failure must not fail the request: %v", err)
	}
	if len(photos) != 1 || photos[0].PhotoID != "a" {
		t.Errorf("photos = %v, want only record a", photos)
	}
}

func TestListPhotosEmpty(t *testing.T) {
	svc := newGalleryService(newFakeRepo(), &fakeSigner{}, &fakeSigner{})

	photos, err := svc.ListPhotos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 0 {
		t.Errorf("photos = %d, want 0", len(photos))
	}
}

func TestListPhotosScanFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failScan = true
	svc := newGalleryService(repo, &fakeSigner{}, &fakeSigner{})

	_, err := svc.ListPhotos(context.Background())
	if !errors.Is(err, domain.ErrMetadataStore) {
		t.Errorf("error = %v, want ErrMetadataStore", err)
	}
}

func TestListPhotosSortDescending(t *testing.T) {
	repo := newFakeRepo(
		completedRecord("mid", "m.png", "2024-03-15T12:00:00.000000Z"),
		completedRecord("old", "o.png", "2024-01-01T00:00:00.000000Z"),
		completedRecord("new", "n.png", "2024-06-01T00:00:00.000000Z"),
	)
	svc := newGalleryService(repo, &fakeSigner{}, &fakeSigner{})

	photos, err := svc.ListPhotos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if photos[i].PhotoID != id {
			t.Errorf("photos[%d] = %q, want %q", i, photos[i].PhotoID, id)
		}
	}
}
