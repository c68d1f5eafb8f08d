package colour

import (
	"fmt"
	"image"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/cenkalti/dominantcolor"
)

// prominentExtractor delegates clustering to prominentcolor. Colours come back
// in the library's order, most populous first.
type prominentExtractor struct {
	config Config
}

func (e *prominentExtractor) Extract(img image.Image) (*Palette, error) {
	resized, err := Preprocess(img, e.config.TargetWidth)
	if err != nil {
		return nil, err
	}

	k := e.config.ClusterCount
	if pixels := resized.Bounds().Dx() * resized.Bounds().Dy(); k > pixels {
		return nil, fmt.Errorf("%w: %d clusters requested from %d samples", ErrInsufficientSamples, k, pixels)
	}

	items, err := prominentcolor.KmeansWithAll(
		k,
		resized,
		prominentcolor.ArgumentNoCropping,
		uint(e.config.TargetWidth), // #nosec G115 -- validated positive
		[]prominentcolor.ColorBackgroundMask{},
	)
	if err != nil {
		return nil, fmt.Errorf("prominentcolor extraction failed: %w", err)
	}
	if len(items) < k {
		return nil, fmt.Errorf("%w: prominentcolor returned %d of %d colours", ErrInsufficientSamples, len(items), k)
	}

	total := 0
	for _, item := range items[:k] {
		total += item.Cnt
	}

	colours := make([]RGB, k)
	weights := make([]float64, k)
	for i, item := range items[:k] {
		colours[i] = RGB{
			R: uint8(min(item.Color.R, 255)), // #nosec G115 -- clamped
			G: uint8(min(item.Color.G, 255)), // #nosec G115 -- clamped
			B: uint8(min(item.Color.B, 255)), // #nosec G115 -- clamped
		}
		if total > 0 {
			weights[i] = float64(item.Cnt) / float64(total)
		}
	}

	return NewPaletteWithWeights(colours, weights), nil
}

// dominantExtractor delegates to dominantcolor's weighted search.
type dominantExtractor struct {
	config Config
}

func (e *dominantExtractor) Extract(img image.Image) (*Palette, error) {
	resized, err := Preprocess(img, e.config.TargetWidth)
	if err != nil {
		return nil, err
	}

	k := e.config.ClusterCount
	found := dominantcolor.FindWeight(resized, k)
	if len(found) < k {
		return nil, fmt.Errorf("%w: dominantcolor returned %d of %d colours", ErrInsufficientSamples, len(found), k)
	}

	colours := make([]RGB, k)
	weights := make([]float64, k)
	for i, c := range found[:k] {
		colours[i] = RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B}
		weights[i] = c.Weight
	}

	return NewPaletteWithWeights(colours, weights), nil
}
