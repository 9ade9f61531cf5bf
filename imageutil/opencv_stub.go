//go:build !gocv

package imageutil

import "image"

// OpenCVAvailable reports whether InterpolationOpenCV is backed by OpenCV.
const OpenCVAvailable = false

func resizeOpenCV(image.Image, int, int) (*RGBAImage, bool) {
	return nil, false
}
