// Package image implements the normalization step of the capture workflow:
// decoding a user-selected photo, center-cropping it to a square, and
// encoding the result as JPEG for upload.
package image

import (
	"bytes"
	"image"
	"image/jpeg"

	// Accept the formats a browser file picker realistically produces.
	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	appErrors "memorateller-backend/pkg/errors"
)

const (
	// DefaultMaxSize is the default maximum edge length of the output.
	DefaultMaxSize = 1080
	// DefaultQuality is the default JPEG quality factor.
	DefaultQuality = 80
)

// Normalized is the square JPEG produced from a raw image.
type Normalized struct {
	Data []byte
	// Size is the edge length of the square output in pixels.
	Size int
	// SourceWidth and SourceHeight record the decoded input dimensions.
	SourceWidth  int
	SourceHeight int
}

// ContentType returns the MIME type of the encoded data.
func (n *Normalized) ContentType() string { return "image/jpeg" }

// Normalizer converts arbitrary bitmap images into fixed-size square JPEGs.
// The zero value is not usable; construct with NewNormalizer.
type Normalizer struct {
	maxSize int
	quality int
}

// NewNormalizer creates a normalizer. Non-positive parameters fall back to
// the defaults.
func NewNormalizer(maxSize, quality int) *Normalizer {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Normalizer{maxSize: maxSize, quality: quality}
}

// Normalize decodes raw, crops a centered square window of edge
// min(width, height, maxSize), and encodes it as JPEG.
//
// The output edge length is deterministic for a given input and
// parameters: it equals maxSize whenever both input dimensions exceed it,
// and min(width, height) otherwise.
func (n *Normalizer) Normalize(raw []byte) (*Normalized, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, appErrors.NewDecode("input is not a decodable image", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, appErrors.NewDecode("image has no pixels", nil)
	}

	size := width
	if height < size {
		size = height
	}
	if n.maxSize < size {
		size = n.maxSize
	}

	// Centered crop window in source coordinates.
	sx := bounds.Min.X + (width-size)/2
	sy := bounds.Min.Y + (height-size)/2
	window := image.Rect(sx, sy, sx+size, sy+size)

	// Render the window into a size×size canvas. The rect-to-rect render
	// also flattens any alpha channel for JPEG.
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, window, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: n.quality}); err != nil {
		return nil, appErrors.NewEncode("jpeg encoding failed", err)
	}
	if buf.Len() == 0 {
		return nil, appErrors.NewEncode("encoding produced no data", nil)
	}

	return &Normalized{
		Data:         buf.Bytes(),
		Size:         size,
		SourceWidth:  width,
		SourceHeight: height,
	}, nil
}
