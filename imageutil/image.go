// Package imageutil provides the pure Go image plumbing used by the
// ASCII renderer: decoding, resampling and pixel readback.
package imageutil

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Brightness is the unweighted mean of the channels, in [0, 255]. It is
// the value the character ramp is indexed by.
func (c RGB) Brightness() float64 {
	return float64(int(c.R)+int(c.G)+int(c.B)) / 3
}

func (c RGB) rgba() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// RGBAImage is an origin-anchored *image.RGBA with channel accessors.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage allocates a transparent width x height image.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// RGBAImageFromImage returns img as an RGBAImage whose bounds start at
// (0, 0). An origin-anchored *image.RGBA is wrapped without copying;
// anything else is drawn into a new buffer. img is never modified.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return &RGBAImage{RGBA: rgba}
	}
	b := img.Bounds()
	out := NewRGBAImage(b.Dx(), b.Dy())
	draw.Draw(out.RGBA, out.Rect, img, b.Min, draw.Src)
	return out
}

func (img *RGBAImage) Width() int  { return img.Rect.Dx() }
func (img *RGBAImage) Height() int { return img.Rect.Dy() }

// GetRGB reads the stored channels at (x, y). Alpha is ignored, so the
// values are still premultiplied.
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB stores an opaque color at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.rgba())
}

// Clone copies the pixels into a new image.
func (img *RGBAImage) Clone() *RGBAImage {
	out := NewRGBAImage(img.Width(), img.Height())
	copy(out.Pix, img.Pix)
	return out
}
