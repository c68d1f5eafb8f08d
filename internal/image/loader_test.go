package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/colour"
	httputil "github.com/MuhammadMiqdad/tugas-color-picker/internal/util/http"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 10, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.png")
	if err := os.WriteFile(path, encodeTestPNG(t, width, height), 0o600); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}

func TestDecode(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodeTestPNG(t, 3, 2)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Decode() bounds = %v", img.Bounds())
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not an image"))
	if !errors.Is(err, colour.ErrInvalidImage) {
		t.Errorf("Decode() error = %v, want ErrInvalidImage", err)
	}
}

func TestFileLoader(t *testing.T) {
	loader := NewFileLoader()
	ctx := context.Background()

	t.Run("valid file", func(t *testing.T) {
		img, err := loader.Load(ctx, writeTestPNG(t, 5, 4))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if img.Bounds().Dx() != 5 {
			t.Errorf("Load() width = %d, want 5", img.Bounds().Dx())
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := loader.Load(ctx, ""); err == nil {
			t.Error("expected error for empty path")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := loader.Load(ctx, filepath.Join(t.TempDir(), "missing.png")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := loader.Load(ctx, t.TempDir()); err == nil {
			t.Error("expected error for directory")
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.png")
		if err := os.WriteFile(path, []byte("nope"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := loader.Load(ctx, path); !errors.Is(err, colour.ErrInvalidImage) {
			t.Errorf("Load() error = %v, want ErrInvalidImage", err)
		}
	})
}

func TestSmartLoaderURL(t *testing.T) {
	data := encodeTestPNG(t, 6, 3)
	var userAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/image.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	loader := NewSmartLoader(httputil.FetchOptions{})

	img, err := loader.Load(context.Background(), server.URL+"/image.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Errorf("Load() bounds = %v", img.Bounds())
	}
	if !strings.HasPrefix(userAgent, httputil.UserAgentName+"/") {
		t.Errorf("User-Agent = %q", userAgent)
	}

	if _, err := loader.Load(context.Background(), server.URL+"/missing.png"); err == nil {
		t.Error("expected error for 404")
	}
}

func TestSmartLoaderFile(t *testing.T) {
	img, err := NewSmartLoader(httputil.FetchOptions{}).Load(context.Background(), writeTestPNG(t, 2, 2))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("Load() width = %d, want 2", img.Bounds().Dx())
	}
}

func TestValidateImagePath(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr bool
	}{
		{name: "valid png", path: func(t *testing.T) string { return writeTestPNG(t, 1, 1) }},
		{name: "url", path: func(*testing.T) string { return "https://example.com/a.jpg" }},
		{name: "empty", path: func(*testing.T) string { return "" }, wantErr: true},
		{name: "missing", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "x.png") }, wantErr: true},
		{name: "directory", path: func(t *testing.T) string { return t.TempDir() }, wantErr: true},
		{
			name: "not an image",
			path: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "notes.txt")
				if err := os.WriteFile(p, []byte("hello"), 0o600); err != nil {
					t.Fatal(err)
				}
				return p
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path(t))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsImageFile(t *testing.T) {
	tests := map[string]bool{
		"photo.JPG":  true,
		"photo.jpeg": true,
		"a.png":      true,
		"b.webp":     true,
		"c.tiff":     true,
		"d.bmp":      true,
		"notes.txt":  false,
		"noext":      false,
	}
	for path, want := range tests {
		if got := IsImageFile(path); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestSmartLoaderCache(t *testing.T) {
	data := encodeTestPNG(t, 4, 4)
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write(data)
	}))
	defer server.Close()

	loader := NewSmartLoader(httputil.FetchOptions{}).WithCache(t.TempDir())
	for range 3 {
		if _, err := loader.Load(context.Background(), server.URL+"/cached.png"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	}
	if requests != 1 {
		t.Errorf("server hit %d times, want 1", requests)
	}
}
