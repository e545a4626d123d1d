package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"interiorhub-web/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ResizeToWebP decodes an image, shrinks it to at most maxWidth pixels wide and
// encodes it as WebP, falling back to JPEG when WebP encoding fails.
// Images narrower than maxWidth keep their size.
func ResizeToWebP(r io.Reader, maxWidth int) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	logger.Debug().Str("format", format).Int("max_width", maxWidth).Msg("Processing thumbnail")

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer

	// Quality 85, lossy
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}

// IsImagePath verifies a simple file extension allow-list
func IsImagePath(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
