// Package img2ascii converts raster images into plain-text ASCII art.
//
// A conversion fits the image inside the bounds of a SizeProfile, resamples
// it to that character grid, and maps the brightness of every resampled
// pixel onto a fixed ten step character ramp. One character is emitted per
// pixel; rows are terminated with a newline.
package img2ascii

import (
	"errors"
	"math"
	"strings"
)

// Ramp is the character ramp, ordered from the darkest bin (space) to the
// brightest bin ('@').
const Ramp = " .:-=+*#%@"

var (
	// ErrDegenerateImage is returned for images with zero width or height.
	ErrDegenerateImage = errors.New("img2ascii: image has zero width or height")

	// ErrUnknownProfile is returned for size profile names or values outside
	// small, medium and large.
	ErrUnknownProfile = errors.New("img2ascii: unknown size profile")
)

// CharIndex maps a brightness in [0, 255] to a position in Ramp.
// Out of range input is clamped.
func CharIndex(brightness float64) int {
	idx := int(math.Floor(brightness / 255 * float64(len(Ramp)-1)))
	return min(max(idx, 0), len(Ramp)-1)
}

// CharFor returns the ramp character for a pixel. Brightness is the
// unweighted mean of the three channels, not perceptual luminance.
func CharFor(r, g, b uint8) byte {
	brightness := float64(int(r)+int(g)+int(b)) / 3
	return Ramp[CharIndex(brightness)]
}

// MapPixels converts a row-major R, G, B, A buffer into ASCII art, one
// character per pixel with a newline after every width characters. Alpha
// is ignored. A trailing partial pixel is dropped.
func MapPixels(buf []byte, width int) string {
	if width < 1 {
		return ""
	}

	pixels := len(buf) / 4
	var b strings.Builder
	b.Grow(pixels + pixels/width)
	for i := 0; i < pixels; i++ {
		p := buf[i*4 : i*4+4]
		b.WriteByte(CharFor(p[0], p[1], p[2]))

		if (i+1)%width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
