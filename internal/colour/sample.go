package colour

import "image"

// Sample is a point in RGB colour space. Channels are in the 0-255 range.
type Sample [3]float64

// sqDistance returns the squared Euclidean distance between two samples.
func (s Sample) sqDistance(other Sample) float64 {
	dr := s[0] - other[0]
	dg := s[1] - other[1]
	db := s[2] - other[2]
	return dr*dr + dg*dg + db*db
}

// Samples flattens img into one sample per pixel in row-major order.
func Samples(img *image.RGBA) []Sample {
	bounds := img.Bounds()
	samples := make([]Sample, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			samples = append(samples, Sample{
				float64(img.Pix[i+0]),
				float64(img.Pix[i+1]),
				float64(img.Pix[i+2]),
			})
		}
	}
	return samples
}
