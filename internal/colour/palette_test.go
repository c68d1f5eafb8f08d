package colour

import (
	"encoding/json"
	"math"
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, want: "#000000"},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: "#ffffff"},
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "blue", rgb: RGB{R: 0, G: 0, B: 255}, want: "#0000ff"},
		{name: "zero padded", rgb: RGB{R: 1, G: 10, B: 15}, want: "#010a0f"},
		{name: "lowercase", rgb: RGB{R: 171, G: 205, B: 239}, want: "#abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rgb.Hex()
			if got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
			if !hexPattern.MatchString(got) {
				t.Errorf("Hex() = %s does not match %s", got, hexPattern)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{R: 1, G: 22, B: 255}).String(); got != "rgb(1, 22, 255)" {
		t.Errorf("String() = %s", got)
	}
}

func TestRGBFromSample(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   RGB
	}{
		{name: "exact", sample: Sample{255, 0, 128}, want: RGB{R: 255, G: 0, B: 128}},
		{name: "truncates", sample: Sample{254.99, 0.99, 127.5}, want: RGB{R: 254, G: 0, B: 127}},
		{name: "clamps low", sample: Sample{-3, -0.5, 0}, want: RGB{R: 0, G: 0, B: 0}},
		{name: "clamps high", sample: Sample{300, 255.7, 1e9}, want: RGB{R: 255, G: 255, B: 255}},
		{name: "nan", sample: Sample{math.NaN(), 10, 20}, want: RGB{R: 0, G: 10, B: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBFromSample(tt.sample); got != tt.want {
				t.Errorf("RGBFromSample() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaletteAccessors(t *testing.T) {
	colours := []RGB{{R: 255}, {G: 255}, {B: 255}}
	palette := NewPaletteWithWeights(colours, []float64{0.5, 0.3, 0.2})

	if palette.Len() != 3 {
		t.Errorf("Len() = %d, want 3", palette.Len())
	}

	hexes := palette.ToHex()
	want := []string{"#ff0000", "#00ff00", "#0000ff"}
	for i := range want {
		if hexes[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, hexes[i], want[i])
		}
	}

	c, err := palette.Get(1)
	if err != nil || c != (RGB{G: 255}) {
		t.Errorf("Get(1) = %v, %v", c, err)
	}
	if _, err := palette.Get(3); err == nil {
		t.Error("Get(3) expected error")
	}
	if _, err := palette.Get(-1); err == nil {
		t.Error("Get(-1) expected error")
	}

	if palette.Weight(0) != 0.5 || palette.Weight(5) != 0 {
		t.Errorf("Weight() = %f, %f", palette.Weight(0), palette.Weight(5))
	}

	copied := palette.ToRGBSlice()
	copied[0] = RGB{}
	if palette.Colours[0] != (RGB{R: 255}) {
		t.Error("ToRGBSlice() must return a copy")
	}

	count := 0
	for i, c := range palette.All() {
		if c != colours[i] {
			t.Errorf("All() yielded %v at %d", c, i)
		}
		count++
	}
	if count != 3 {
		t.Errorf("All() yielded %d colours, want 3", count)
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := NewPaletteWithWeights([]RGB{{R: 255}, {B: 255}}, []float64{0.75, 0.25})

	data, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Count != 2 || len(decoded.Colours) != 2 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded.Colours[0].Hex != "#ff0000" || decoded.Colours[1].Hex != "#0000ff" {
		t.Errorf("hex order = %s, %s", decoded.Colours[0].Hex, decoded.Colours[1].Hex)
	}
	if decoded.Colours[0].Weight == nil || *decoded.Colours[0].Weight != 0.75 {
		t.Errorf("weight = %v, want 0.75", decoded.Colours[0].Weight)
	}
}

func TestPaletteToJSONWithoutWeights(t *testing.T) {
	data, err := NewPalette([]RGB{{R: 1, G: 2, B: 3}}).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Colours[0].Weight != nil {
		t.Errorf("weight = %v, want omitted", *decoded.Colours[0].Weight)
	}
	if decoded.Colours[0].RGB != (RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("rgb = %v", decoded.Colours[0].RGB)
	}
}

func TestPaletteString(t *testing.T) {
	if got := NewPalette(nil).String(); got != "Empty palette" {
		t.Errorf("String() = %q", got)
	}
	want := "Palette with 1 colours:\n   1: #ff0000 (rgb(255, 0, 0))\n"
	if got := NewPalette([]RGB{{R: 255}}).String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
