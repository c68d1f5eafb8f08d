package seed

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/colour"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr bool
	}{
		{name: "default", input: "42", want: Manual(42)},
		{name: "zero", input: "0", want: Manual(0)},
		{name: "negative", input: "-7", want: Manual(-7)},
		{name: "whitespace", input: " 12 ", want: Manual(12)},
		{name: "content", input: "content", want: Config{Mode: ModeContent}},
		{name: "filepath uppercase", input: "FILEPATH", want: Config{Mode: ModeFilepath}},
		{name: "random", input: "random", want: Config{Mode: ModeRandom}},
		{name: "empty", input: "", wantErr: true},
		{name: "float", input: "4.2", wantErr: true},
		{name: "garbage", input: "forty-two", wantErr: true},
		{name: "overflow", input: "99999999999999999999", wantErr: true},
		{name: "manual is not a literal", input: "manual", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, colour.ErrInvalidParameter) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidParameter", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalculateManual(t *testing.T) {
	got, err := Calculate(nil, "", Manual(99))
	if err != nil || got != 99 {
		t.Errorf("Calculate(manual 99) = %d, %v", got, err)
	}
}

func TestCalculateContentSeed(t *testing.T) {
	img := testImage(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	same := testImage(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	other := testImage(color.RGBA{R: 11, G: 20, B: 30, A: 255})

	a, err := Calculate(img, "", Config{Mode: ModeContent})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	b, _ := Calculate(same, "", Config{Mode: ModeContent})
	c, _ := Calculate(other, "", Config{Mode: ModeContent})

	if a != b {
		t.Errorf("identical content gave different seeds: %d vs %d", a, b)
	}
	if a == c {
		t.Errorf("different content gave the same seed: %d", a)
	}

	if _, err := Calculate(nil, "", Config{Mode: ModeContent}); !errors.Is(err, colour.ErrInvalidParameter) {
		t.Errorf("Calculate(content, nil image) error = %v", err)
	}
}

func TestCalculateFilepathSeed(t *testing.T) {
	a, err := Calculate(nil, "photo.png", Config{Mode: ModeFilepath})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	b, _ := Calculate(nil, "photo.png", Config{Mode: ModeFilepath})
	c, _ := Calculate(nil, "other.png", Config{Mode: ModeFilepath})

	if a != b {
		t.Errorf("same path gave different seeds")
	}
	if a == c {
		t.Errorf("different paths gave the same seed")
	}

	u1, _ := CalculateFilepathSeed("https://example.com/a.png")
	u2, _ := CalculateFilepathSeed("https://example.com/a.png")
	if u1 != u2 {
		t.Errorf("same URL gave different seeds")
	}

	if _, err := Calculate(nil, "", Config{Mode: ModeFilepath}); !errors.Is(err, colour.ErrInvalidParameter) {
		t.Errorf("Calculate(filepath, empty) error = %v", err)
	}
}

func TestCalculateUnknownMode(t *testing.T) {
	if _, err := Calculate(nil, "", Config{Mode: "sometimes"}); !errors.Is(err, colour.ErrInvalidParameter) {
		t.Errorf("Calculate(unknown) error = %v", err)
	}
}

func testImage(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
