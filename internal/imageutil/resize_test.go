package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/picstash/picstash/internal/domain"
)

// encodePNG renders a solid-color PNG of the given size
func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return &buf
}

func TestThumbnailScalesDown(t *testing.T) {
	src := encodePNG(t, 800, 400)
	var out bytes.Buffer

	res, err := Thumbnail(src, &out, 200)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	if res.Original.Width != 800 || res.Original.Height != 400 {
		t.Errorf("original = %dx%d, want 800x400", res.Original.Width, res.Original.Height)
	}
	if res.Thumbnail.Width != 200 || res.Thumbnail.Height != 100 {
		t.Errorf("thumbnail = %dx%d, want 200x100", res.Thumbnail.Width, res.Thumbnail.Height)
	}
	if res.Format != "png" {
		t.Errorf("format = %q, want png", res.Format)
	}

	// Output must itself decode as a PNG with the reported dimensions
	decoded, format, err := image.Decode(&out)
	if err != nil {
		t.Fatalf("thumbnail does not decode: %v", err)
	}
	if format != "png" {
		t.Errorf("output format = %q, want png", format)
	}
	if decoded.Bounds().Dx() != 200 || decoded.Bounds().Dy() != 100 {
		t.Errorf("decoded thumbnail = %dx%d, want 200x100",
			decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestThumbnailTallImage(t *testing.T) {
	src := encodePNG(t, 100, 400)
	var out bytes.Buffer

	res, err := Thumbnail(src, &out, 200)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if res.Thumbnail.Width != 50 || res.Thumbnail.Height != 200 {
		t.Errorf("thumbnail = %dx%d, want 50x200", res.Thumbnail.Width, res.Thumbnail.Height)
	}
}

func TestThumbnailNeverUpscales(t *testing.T) {
	src := encodePNG(t, 120, 80)
	var out bytes.Buffer

	res, err := Thumbnail(src, &out, 200)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if res.Thumbnail.Width != 120 || res.Thumbnail.Height != 80 {
		t.Errorf("thumbnail = %dx%d, want original 120x80", res.Thumbnail.Width, res.Thumbnail.Height)
	}
}

func TestThumbnailDefaultMaxDimension(t *testing.T) {
	src := encodePNG(t, 1000, 1000)
	var out bytes.Buffer

	res, err := Thumbnail(src, &out, 0)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if res.Thumbnail.Width != DefaultMaxDimension || res.Thumbnail.Height != DefaultMaxDimension {
		t.Errorf("thumbnail = %dx%d, want %dx%d",
			res.Thumbnail.Width, res.Thumbnail.Height, DefaultMaxDimension, DefaultMaxDimension)
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	var out bytes.Buffer

	_, err := Thumbnail(strings.NewReader("this is not an image"), &out, 200)
	if !errors.Is(err, domain.ErrImageProcessing) {
		t.Errorf("expected ErrImageProcessing, got %v", err)
	}
}
