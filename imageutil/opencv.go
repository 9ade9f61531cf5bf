//go:build gocv

package imageutil

import (
	"image"

	"gocv.io/x/gocv"
)

// OpenCVAvailable reports whether InterpolationOpenCV is backed by OpenCV.
const OpenCVAvailable = true

// resizeOpenCV scales src with cv::resize using INTER_AREA, the filter the
// block renderer originally used for downscaling.
func resizeOpenCV(src image.Image, width, height int) (*RGBAImage, bool) {
	mat, err := gocv.ImageToMatRGBA(src)
	if err != nil {
		return nil, false
	}
	defer mat.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Resize(mat, &dst, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationArea)
	if dst.Empty() {
		return nil, false
	}

	out, err := dst.ToImage()
	if err != nil {
		return nil, false
	}
	return RGBAImageFromImage(out), true
}
