package img2ascii

import (
	"fmt"
	"image"

	"github.com/wbrown/img2ascii/imageutil"
)

// Renderer converts images to ASCII art. A Renderer holds only its
// configuration; it keeps no state between calls and is safe for
// concurrent use once constructed.
type Renderer struct {
	// Interpolation is the filter used by the resampling draw.
	Interpolation imageutil.Interpolation
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: Interpolation=InterpolationBilinear.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Interpolation: imageutil.InterpolationBilinear,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithInterpolation sets the resampling filter.
func WithInterpolation(interp imageutil.Interpolation) RendererOption {
	return func(r *Renderer) {
		r.Interpolation = interp
	}
}

var defaultRenderer = NewRenderer()

// Render converts img with the default renderer.
func Render(img image.Image, profile SizeProfile) (Art, error) {
	return defaultRenderer.Render(img, profile)
}

// Render fits img inside the profile bounds, resamples it to the fitted
// grid and maps every pixel to a ramp character. img is only read.
func (r *Renderer) Render(img image.Image, profile SizeProfile) (Art, error) {
	if img == nil {
		return Art{}, ErrDegenerateImage
	}

	bounds := img.Bounds()
	width, height, err := FitDimensions(bounds.Dx(), bounds.Dy(), profile)
	if err != nil {
		return Art{}, fmt.Errorf("failed to fit %dx%d image to %s: %w",
			bounds.Dx(), bounds.Dy(), profile, err)
	}

	resized := imageutil.Resize(img, width, height, r.Interpolation)

	return Art{
		Width:   width,
		Height:  height,
		Profile: profile,
		Text:    MapPixels(resized.NRGBABytes(), width),
	}, nil
}
