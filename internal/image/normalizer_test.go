package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "memorateller-backend/pkg/errors"
)

// encodePNG renders a solid-color test image.
func encodePNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeOutput(t *testing.T, n *Normalized) image.Image {
	t.Helper()
	out, format, err := image.Decode(bytes.NewReader(n.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return out
}

func TestNormalize(t *testing.T) {
	t.Run("OutputIsSquareJPEG", func(t *testing.T) {
		n := NewNormalizer(64, 80)
		raw := encodePNG(t, 200, 120, color.RGBA{R: 200, A: 255})

		got, err := n.Normalize(raw)
		require.NoError(t, err)

		assert.Equal(t, 64, got.Size)
		assert.Equal(t, 200, got.SourceWidth)
		assert.Equal(t, 120, got.SourceHeight)
		assert.Equal(t, "image/jpeg", got.ContentType())

		out := decodeOutput(t, got)
		assert.Equal(t, 64, out.Bounds().Dx())
		assert.Equal(t, 64, out.Bounds().Dy())
	})

	t.Run("EdgeLengthLaw", func(t *testing.T) {
		cases := []struct {
			name          string
			width, height int
			maxSize       int
			want          int
		}{
			{"BothExceedMax", 300, 200, 100, 100},
			{"WidthLimits", 80, 200, 100, 80},
			{"HeightLimits", 200, 60, 100, 60},
			{"ExactlyMax", 100, 100, 100, 100},
			{"SmallSquare", 40, 40, 100, 40},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				n := NewNormalizer(tc.maxSize, 80)
				raw := encodePNG(t, tc.width, tc.height, color.RGBA{B: 255, A: 255})

				got, err := n.Normalize(raw)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got.Size)

				out := decodeOutput(t, got)
				assert.Equal(t, tc.want, out.Bounds().Dx())
				assert.Equal(t, tc.want, out.Bounds().Dy())
			})
		}
	})

	t.Run("CropIsCentered", func(t *testing.T) {
		// Wide image in three vertical bands; only the middle band falls
		// inside the centered crop window.
		src := image.NewRGBA(image.Rect(0, 0, 300, 100))
		for y := 0; y < 100; y++ {
			for x := 0; x < 300; x++ {
				switch {
				case x < 100:
					src.Set(x, y, color.RGBA{R: 255, A: 255})
				case x < 200:
					src.Set(x, y, color.RGBA{G: 255, A: 255})
				default:
					src.Set(x, y, color.RGBA{B: 255, A: 255})
				}
			}
		}
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, src))

		n := NewNormalizer(1080, 90)
		got, err := n.Normalize(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, 100, got.Size)

		out := decodeOutput(t, got)
		for _, pt := range []image.Point{{X: 2, Y: 50}, {X: 50, Y: 50}, {X: 97, Y: 50}} {
			r, g, b, _ := out.At(pt.X, pt.Y).RGBA()
			assert.Greater(t, g, r, "pixel at %v should be green-dominant", pt)
			assert.Greater(t, g, b, "pixel at %v should be green-dominant", pt)
		}
	})

	t.Run("DefaultsApplyToNonPositiveParameters", func(t *testing.T) {
		n := NewNormalizer(0, 0)
		raw := encodePNG(t, 30, 20, color.RGBA{R: 10, G: 20, B: 30, A: 255})

		got, err := n.Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, 20, got.Size)
	})

	t.Run("UndecodableInput", func(t *testing.T) {
		n := NewNormalizer(1080, 80)

		for _, raw := range [][]byte{nil, []byte("definitely not an image")} {
			got, err := n.Normalize(raw)
			require.Error(t, err)
			assert.True(t, appErrors.IsDecode(err))
			assert.Nil(t, got)
		}
	})
}
