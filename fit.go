package img2ascii

import "math"

// FitDimensions computes the character grid for a width x height image
// under the profile's bounds, preserving aspect ratio.
//
// Width is saturated first; if the derived height overflows the bound, the
// height is saturated instead and the width derived from it. Each result is
// floored, then raised to at least 1 so extreme aspect ratios still yield a
// one character wide or tall grid.
func FitDimensions(width, height int, profile SizeProfile) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, ErrDegenerateImage
	}
	if !profile.Valid() {
		return 0, 0, ErrUnknownProfile
	}

	bounds := profile.Bounds()
	aspectRatio := float64(width) / float64(height)

	newWidth := bounds.MaxWidth
	newHeight := int(math.Floor(float64(newWidth) / aspectRatio))

	if newHeight > bounds.MaxHeight {
		newHeight = bounds.MaxHeight
		newWidth = int(math.Floor(float64(newHeight) * aspectRatio))
	}

	return max(newWidth, 1), max(newHeight, 1), nil
}
