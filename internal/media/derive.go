// Package media holds the pure image transforms and naming rules of the
// derivative pipeline. Everything here is deterministic and stateless so
// that both pipeline entry points produce byte-identical output and stay
// restart-safe.
package media

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"montra/internal/apperrors"

	"github.com/disintegration/imaging"
)

const (
	// Optimized derivatives fit inside this box, never upscaled.
	optimizedMaxWidth  = 800
	optimizedMaxHeight = 600
	optimizedQuality   = 85

	// Thumbnails fill this box, cropping to cover.
	thumbWidth   = 200
	thumbHeight  = 150
	thumbQuality = 80

	// OptimizedSuffix and ThumbSuffix mark derivative blob names. A name
	// containing either suffix never re-enters the pipeline; this is the
	// sole guard against derivative-of-a-derivative chains.
	OptimizedSuffix = "_optimized"
	ThumbSuffix     = "_thumb"

	derivedExt = ".jpg"

	// ContentType is the MIME type of every derivative.
	ContentType = "image/jpeg"
)

// IsDerivative reports whether the blob name looks like pipeline output.
func IsDerivative(name string) bool {
	return strings.Contains(name, ThumbSuffix) || strings.Contains(name, OptimizedSuffix)
}

// OptimizedName derives the optimized blob name from an original name by
// replacing its extension with the optimized suffix and a fixed extension.
func OptimizedName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + OptimizedSuffix + derivedExt
}

// ThumbnailName derives the thumbnail blob name from an original name.
func ThumbnailName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ThumbSuffix + derivedExt
}

// Derive decodes an original image and computes both derivatives: an
// optimized version resized to fit 800x600 preserving aspect ratio without
// upscaling, and a 200x150 thumbnail cropped to fill. Both are re-encoded
// as JPEG. Derive either returns both derivatives or an error; there is no
// partial result.
func Derive(data []byte) (optimized, thumbnail []byte, err error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w: %w", apperrors.ErrTransform, err)
	}

	optimizedImg := imaging.Fit(img, optimizedMaxWidth, optimizedMaxHeight, imaging.Lanczos)
	var optBuf bytes.Buffer
	if err := imaging.Encode(&optBuf, optimizedImg, imaging.JPEG, imaging.JPEGQuality(optimizedQuality)); err != nil {
		return nil, nil, fmt.Errorf("failed to encode optimized image: %w: %w", apperrors.ErrTransform, err)
	}

	thumbImg := imaging.Fill(img, thumbWidth, thumbHeight, imaging.Center, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumbImg, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return nil, nil, fmt.Errorf("failed to encode thumbnail: %w: %w", apperrors.ErrTransform, err)
	}

	return optBuf.Bytes(), thumbBuf.Bytes(), nil
}
