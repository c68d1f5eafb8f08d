// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
)

// RGB represents a colour as 8-bit red, green and blue channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Color returns the colour as an opaque color.RGBA.
func (rgb RGB) Color() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromSample converts a centroid to RGB. Channels are truncated toward zero,
// not rounded, and clamped to 0-255; NaN becomes 0.
func RGBFromSample(s Sample) RGB {
	return RGB{
		R: truncateChannel(s[0]),
		G: truncateChannel(s[1]),
		B: truncateChannel(s[2]),
	}
}

func truncateChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Palette is an ordered set of extracted colours. Order is significant: for
// k-means it is the cluster index order, not popularity.
type Palette struct {
	Colours []RGB
	// Weights holds the relative size of each colour's cluster, if known.
	Weights []float64
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colours []RGB) *Palette {
	return &Palette{
		Colours: colours,
	}
}

// NewPaletteWithWeights creates a new Palette with colours and their weights.
func NewPaletteWithWeights(colours []RGB, weights []float64) *Palette {
	return &Palette{
		Colours: colours,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Weight returns the weight of the colour at index i, or 0 if weights are unknown.
func (p *Palette) Weight(i int) float64 {
	if i < 0 || i >= len(p.Weights) {
		return 0
	}
	return p.Weights[i]
}

// ToHex converts the palette colours to hex strings, preserving order.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// ToRGBSlice returns a copy of the palette colours.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColours := make([]RGB, len(p.Colours))
	copy(rgbColours, p.Colours)
	return rgbColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex    string   `json:"hex"`
	RGB    RGB      `json:"rgb"`
	Weight *float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		colours[i] = ColourJSON{
			Hex: c.Hex(),
			RGB: c,
		}
		if i < len(p.Weights) {
			w := p.Weights[i]
			colours[i].Weight = &w
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Count:   len(p.Colours),
		Colours: colours,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	result := fmt.Sprintf("Palette with %d colours:\n", len(p.Colours))
	for i, c := range p.Colours {
		result += fmt.Sprintf("  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return result
}

// Get returns the colour at the specified index.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.Colours) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}
