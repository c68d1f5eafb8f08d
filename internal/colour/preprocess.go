// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// DefaultTargetWidth is the working width images are resized to before sampling.
const DefaultTargetWidth = 400

// ConvertRGB converts an image of any colour model into an opaque RGB raster.
// Alpha is dropped rather than composited: the straight channel values are kept
// and every pixel is made fully opaque. The source image is not modified.
func ConvertRGB(img image.Image) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidImage)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has zero area (%dx%d)", ErrInvalidImage, bounds.Dx(), bounds.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := dst.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = 0xff
		}
	}

	return dst, nil
}

// ScaledHeight returns the height that preserves the aspect ratio of a
// srcWidth x srcHeight image scaled to width. The result is at least 1.
func ScaledHeight(srcWidth, srcHeight, width int) int {
	h := int(math.Round(float64(width) * float64(srcHeight) / float64(srcWidth)))
	return max(h, 1)
}

// ResizeToWidth resamples img to the given width, keeping the aspect ratio.
// Catmull-Rom is used so downsampled pixels approximate local averages.
// An image already at the target width is copied unchanged.
func ResizeToWidth(img *image.RGBA, width int) (*image.RGBA, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: target width must be at least 1, got %d", ErrInvalidParameter, width)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidImage)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has zero area (%dx%d)", ErrInvalidImage, bounds.Dx(), bounds.Dy())
	}

	if bounds.Dx() == width {
		dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst, nil
	}

	height := ScaledHeight(bounds.Dx(), bounds.Dy(), width)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	return dst, nil
}

// Preprocess converts img to RGB and resizes it to the target width.
func Preprocess(img image.Image, width int) (*image.RGBA, error) {
	rgb, err := ConvertRGB(img)
	if err != nil {
		return nil, err
	}
	return ResizeToWidth(rgb, width)
}
