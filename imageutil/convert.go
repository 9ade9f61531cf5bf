package imageutil

import "image/color"

// NRGBABytes reads the image back as a row-major buffer of
// non-premultiplied R, G, B, A bytes, four per pixel, with no row padding.
// This is the layout a canvas getImageData call hands back.
func (img *RGBAImage) NRGBABytes() []byte {
	width, height := img.Width(), img.Height()
	buf := make([]byte, 0, width*height*4)
	origin := img.Bounds().Min

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(origin.X+x, origin.Y+y)
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			buf = append(buf, n.R, n.G, n.B, n.A)
		}
	}
	return buf
}

// MeanBrightness returns the average of the unweighted channel means over
// the whole image. Handy for checking that a resample kept the tone.
func MeanBrightness(img *RGBAImage) float64 {
	width, height := img.Width(), img.Height()
	if width == 0 || height == 0 {
		return 0
	}

	var sum float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum += img.GetRGB(x, y).Brightness()
		}
	}
	return sum / float64(width*height)
}
