// Package colour provides utility functions for colour analysis.
package colour

import (
	"github.com/lucasb-eyer/go-colorful"
)

var (
	black = RGB{R: 0, G: 0, B: 0}
	white = RGB{R: 255, G: 255, B: 255}
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	r, g, b := toColorful(c).LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastingText returns black or white, whichever reads better on c.
func ContrastingText(c RGB) RGB {
	if ContrastRatio(c, black) >= ContrastRatio(c, white) {
		return black
	}
	return white
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
