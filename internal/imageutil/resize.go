package imageutil

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/picstash/picstash/internal/domain"
)

// DefaultMaxDimension bounds the longest thumbnail edge when no explicit
// size is configured.
const DefaultMaxDimension = 200

// Result describes a produced thumbnail.
type Result struct {
	Format    string // "jpeg", "png", "gif", ...
	Original  domain.Dimensions
	Thumbnail domain.Dimensions
}

// Thumbnail decodes the image from r, scales it to fit within
// maxDimension×maxDimension preserving aspect ratio, and writes the encoded
// thumbnail to w. Images already within the bound are never upscaled; their
// pixel data passes through at original size. The output format matches the
// detected input format, falling back to JPEG for anything unrecognized.
func Thumbnail(r io.Reader, w io.Writer, maxDimension int) (*Result, error) {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	// image.Decode reports the registered format name; imaging's imports
	// register jpeg, png, gif, tiff and bmp decoders.
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageProcessing, err)
	}

	bounds := img.Bounds()
	original := domain.Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}

	// Fit scales down only, so small images keep their dimensions.
	thumb := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	thumbBounds := thumb.Bounds()

	if err := imaging.Encode(w, thumb, encodeFormat(format)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageProcessing, err)
	}

	return &Result{
		Format:    format,
		Original:  original,
		Thumbnail: domain.Dimensions{Width: thumbBounds.Dx(), Height: thumbBounds.Dy()},
	}, nil
}

// encodeFormat maps a decoded format name to an output encoder, defaulting
// to JPEG when the source format has no encoder.
func encodeFormat(format string) imaging.Format {
	switch format {
	case "png":
		return imaging.PNG
	case "gif":
		return imaging.GIF
	case "bmp":
		return imaging.BMP
	case "tiff":
		return imaging.TIFF
	default:
		return imaging.JPEG
	}
}
