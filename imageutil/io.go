package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has zero width or height")

// ErrTooManyPixels is returned when an image header declares more pixels
// than the decode limit allows.
var ErrTooManyPixels = errors.New("image has too many pixels")

// DefaultMaxPixels is the limit used by Decode and LoadImage, about a
// 48 megapixel photo.
const DefaultMaxPixels = 48_000_000

// Extensions lists the file extensions Decode understands, lower case
// with the leading dot.
var Extensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".webp", ".bmp",
}

// IsImagePath reports whether path carries one of the known image
// extensions.
func IsImagePath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode reads a single image from r with the DefaultMaxPixels limit.
// Supports PNG, JPEG, GIF (first frame), TIFF, WebP and BMP. It returns
// the format name reported by the decoder.
func Decode(r io.Reader) (image.Image, string, error) {
	return DecodeLimit(r, DefaultMaxPixels)
}

// DecodeLimit is Decode with an explicit pixel limit. The header is read
// first, so an oversized image is refused before its bitmap is allocated.
// A limit of zero or less selects DefaultMaxPixels.
func DecodeLimit(r io.Reader, maxPixels int64) (image.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	var header bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, fmt.Errorf("failed to decode image: %w", ErrEmptyImage)
	}
	if n := int64(cfg.Width) * int64(cfg.Height); n > maxPixels {
		return nil, format, fmt.Errorf("%dx%d %s: %w (limit %d)",
			cfg.Width, cfg.Height, format, ErrTooManyPixels, maxPixels)
	}

	img, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, format, fmt.Errorf("failed to decode image: %w", ErrEmptyImage)
	}
	return img, format, nil
}

// LoadImage opens and decodes the image at path.
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
