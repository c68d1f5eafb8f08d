// Package seed resolves the random seed used for k-means centroid initialisation.
// A seed is either a literal integer or a mode that derives one from the input.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MuhammadMiqdad/tugas-color-picker/internal/colour"
)

// Mode determines how the seed is produced.
type Mode string

const (
	// ModeManual uses a literal seed value.
	ModeManual Mode = "manual"
	// ModeContent hashes the image pixels (deterministic by content).
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute image path (deterministic by location).
	ModeFilepath Mode = "filepath"
	// ModeRandom uses a non-deterministic seed that varies each run.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value int64 // only used when Mode is ModeManual
}

// Manual returns a Config for a literal seed.
func Manual(v int64) Config {
	return Config{Mode: ModeManual, Value: v}
}

// Parse interprets s as either a base-10 integer seed or one of the derived
// modes (content, filepath, random). Anything else is a malformed seed.
func Parse(s string) (Config, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Config{}, fmt.Errorf("%w: seed cannot be empty", colour.ErrInvalidParameter)
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Manual(v), nil
	}

	mode := Mode(strings.ToLower(s))
	if mode != ModeManual && slices.Contains(ValidModes(), mode) {
		return Config{Mode: mode}, nil
	}

	return Config{}, fmt.Errorf("%w: malformed seed %q (expected an integer or one of: content, filepath, random)", colour.ErrInvalidParameter, s)
}

// Calculate determines the seed value for config.
// img is required for ModeContent and imagePath for ModeFilepath.
func Calculate(img image.Image, imagePath string, config Config) (int64, error) {
	switch config.Mode {
	case ModeManual, "":
		return config.Value, nil
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("%w: image is required for content-based seed mode", colour.ErrInvalidParameter)
		}
		return CalculateContentSeed(img)
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("%w: image path is required for filepath-based seed mode", colour.ErrInvalidParameter)
		}
		return CalculateFilepathSeed(imagePath)
	case ModeRandom:
		return GenerateRandomSeed(), nil
	default:
		return 0, fmt.Errorf("%w: unknown seed mode: %s", colour.ErrInvalidParameter, config.Mode)
	}
}

// CalculateContentSeed derives a seed from image dimensions and a grid of pixels,
// so identical content gives the same seed regardless of file name.
func CalculateContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("%w: image cannot be nil", colour.ErrInvalidImage)
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	// A sparse grid is enough to tell images apart.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	return hashSeed(hasher.Sum(nil)), nil
}

// CalculateFilepathSeed derives a seed from the absolute path, or the URL as-is.
func CalculateFilepathSeed(imagePath string) (int64, error) {
	if imagePath == "" {
		return 0, fmt.Errorf("%w: image path cannot be empty", colour.ErrInvalidParameter)
	}

	key := imagePath
	if !isURL(imagePath) {
		if abs, err := filepath.Abs(imagePath); err == nil {
			key = abs
		}
	}

	hash := sha256.Sum256([]byte(key))
	return hashSeed(hash[:]), nil
}

// GenerateRandomSeed generates a non-deterministic seed.
func GenerateRandomSeed() int64 {
	// #nosec G404 -- random seed generation is intentionally non-deterministic
	return time.Now().UnixNano() + int64(rand.Intn(1000000))
}

func hashSeed(hash []byte) int64 {
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeManual, ModeContent, ModeFilepath, ModeRandom}
}
