package colour

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Swatch geometry used by RenderPalette.
const (
	DefaultSwatchWidth = 300
	DefaultBandHeight  = 50
)

// RenderOptions controls the swatch image layout.
type RenderOptions struct {
	// Width of the swatch image. Zero means DefaultSwatchWidth.
	Width int
	// BandHeight is the height of each colour band. Zero means DefaultBandHeight.
	BandHeight int
	// Labels draws each colour's hex code on its band.
	Labels bool
}

// RenderPalette stacks one solid band per colour, top to bottom, in the given
// order. The image is DefaultSwatchWidth wide and DefaultBandHeight*len(colours) high.
func RenderPalette(colours []RGB) *image.RGBA {
	return RenderPaletteWithOptions(colours, RenderOptions{})
}

// RenderPaletteWithOptions renders the palette with a custom layout.
func RenderPaletteWithOptions(colours []RGB, opts RenderOptions) *image.RGBA {
	width := opts.Width
	if width <= 0 {
		width = DefaultSwatchWidth
	}
	bandHeight := opts.BandHeight
	if bandHeight <= 0 {
		bandHeight = DefaultBandHeight
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, bandHeight*len(colours)))
	for i, c := range colours {
		band := image.Rect(0, i*bandHeight, width, (i+1)*bandHeight)
		draw.Draw(dst, band, image.NewUniform(c.Color()), image.Point{}, draw.Src)
		if opts.Labels {
			drawLabel(dst, band, c)
		}
	}

	return dst
}

// drawLabel writes the hex code centred on band in a colour that contrasts with c.
func drawLabel(dst *image.RGBA, band image.Rectangle, c RGB) {
	face := basicfont.Face7x13
	text := c.Hex()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ContrastingText(c).Color()),
		Face: face,
	}
	textWidth := d.MeasureString(text).Ceil()
	x := band.Min.X + (band.Dx()-textWidth)/2
	y := band.Min.Y + (band.Dy()+face.Ascent-face.Descent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// Render renders the palette as a swatch image.
func (p *Palette) Render(opts RenderOptions) *image.RGBA {
	return RenderPaletteWithOptions(p.Colours, opts)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode palette image: %w", err)
	}
	return nil
}
