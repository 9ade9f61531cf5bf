package imageutil

import "math"

// Synthetic fixtures for tests across the module. All of them are opaque.

// fill builds a width x height image whose pixel at (x, y) is at(x, y).
func fill(width, height int, at func(x, y int) RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := range height {
		for x := range width {
			img.SetRGB(x, y, at(x, y))
		}
	}
	return img
}

func gray(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// CreateGradientImage runs black at the left edge to white at the right.
func CreateGradientImage(width, height int) *RGBAImage {
	span := max(width-1, 1)
	return fill(width, height, func(x, _ int) RGB {
		return gray(uint8(255 * x / span))
	})
}

// CreateVerticalGradientImage runs black at the top to white at the
// bottom.
func CreateVerticalGradientImage(width, height int) *RGBAImage {
	span := max(height-1, 1)
	return fill(width, height, func(_, y int) RGB {
		return gray(uint8(255 * y / span))
	})
}

// CreateCheckerboardImage alternates white and black squares of side
// square, white in the top-left corner.
func CreateCheckerboardImage(width, height, square int) *RGBAImage {
	square = max(square, 1)
	return fill(width, height, func(x, y int) RGB {
		if (x/square+y/square)%2 == 0 {
			return gray(255)
		}
		return gray(0)
	})
}

// CreateSolidImage is a single color.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	return fill(width, height, func(int, int) RGB { return c })
}

// colorBars are ordered by falling brightness under the unweighted mean.
var colorBars = []RGB{
	{255, 255, 255},
	{255, 255, 0},
	{0, 255, 255},
	{255, 0, 255},
	{0, 255, 0},
	{255, 0, 0},
	{0, 0, 255},
	{0, 0, 0},
}

// CreateColorBarsImage draws eight vertical bars from white to black.
func CreateColorBarsImage(width, height int) *RGBAImage {
	bar := max(width/len(colorBars), 1)
	return fill(width, height, func(x, _ int) RGB {
		return colorBars[min(x/bar, len(colorBars)-1)]
	})
}

// CalculateMSE is the mean squared per-channel difference of two equally
// sized images, ignoring alpha. Mismatched sizes give +Inf.
func CalculateMSE(a, b *RGBAImage) float64 {
	if a.Bounds().Size() != b.Bounds().Size() {
		return math.Inf(1)
	}
	w, h := a.Width(), a.Height()
	if w == 0 || h == 0 {
		return 0
	}

	var sum float64
	for y := range h {
		pa := a.Pix[y*a.Stride : y*a.Stride+w*4]
		pb := b.Pix[y*b.Stride : y*b.Stride+w*4]
		for i := 0; i < len(pa); i += 4 {
			for c := range 3 {
				d := float64(pa[i+c]) - float64(pb[i+c])
				sum += d * d
			}
		}
	}
	return sum / float64(w*h*3)
}
