package media_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"montra/internal/apperrors"
	"montra/internal/media"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeJPEG encodes a gradient image of the given size.
func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestDeriveBoundsWideOriginal(t *testing.T) {
	original := makeJPEG(t, 1600, 400)

	optimized, thumbnail, err := media.Derive(original)
	require.NoError(t, err)

	w, h := decodeSize(t, optimized)
	assert.LessOrEqual(t, w, 800)
	assert.LessOrEqual(t, h, 600)
	// 1600x400 fits the box at exactly half scale
	assert.Equal(t, 800, w)
	assert.Equal(t, 200, h)

	tw, th := decodeSize(t, thumbnail)
	assert.Equal(t, 200, tw)
	assert.Equal(t, 150, th)
}

func TestDeriveDoesNotUpscaleSmallOriginal(t *testing.T) {
	original := makeJPEG(t, 100, 100)

	optimized, thumbnail, err := media.Derive(original)
	require.NoError(t, err)

	w, h := decodeSize(t, optimized)
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)

	// The thumbnail always fills its box, small originals included.
	tw, th := decodeSize(t, thumbnail)
	assert.Equal(t, 200, tw)
	assert.Equal(t, 150, th)
}

func TestDeriveIsDeterministic(t *testing.T) {
	original := makeJPEG(t, 640, 480)

	opt1, thumb1, err := media.Derive(original)
	require.NoError(t, err)
	opt2, thumb2, err := media.Derive(original)
	require.NoError(t, err)

	assert.Equal(t, opt1, opt2)
	assert.Equal(t, thumb1, thumb2)
}

func TestDeriveRejectsInvalidImage(t *testing.T) {
	_, _, err := media.Derive([]byte("definitely not an image"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransform)
}

func TestDerivativeNaming(t *testing.T) {
	assert.Equal(t, "b1/photo_optimized.jpg", media.OptimizedName("b1/photo.png"))
	assert.Equal(t, "b1/photo_thumb.jpg", media.ThumbnailName("b1/photo.png"))
	assert.Equal(t, "noext_optimized.jpg", media.OptimizedName("noext"))

	assert.True(t, media.IsDerivative("b1/photo_optimized.jpg"))
	assert.True(t, media.IsDerivative("b1/photo_thumb.jpg"))
	assert.False(t, media.IsDerivative("b1/photo.png"))

	// A derivative name never produces a new original-looking name.
	assert.True(t, media.IsDerivative(media.OptimizedName("b1/photo.png")))
	assert.True(t, media.IsDerivative(media.ThumbnailName("b1/photo.png")))
}
