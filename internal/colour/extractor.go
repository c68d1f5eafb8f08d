// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image. Either a full palette
	// of the configured size is returned or an error; never a partial result.
	Extract(img image.Image) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses seeded k-means clustering in RGB space.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmProminent uses the prominentcolor k-means implementation.
	AlgorithmProminent Algorithm = "prominent"

	// AlgorithmDominant uses dominantcolor's weighted colour search.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmProminent,
		AlgorithmDominant,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// Config holds the tunables of the extraction pipeline.
type Config struct {
	// ClusterCount is the number of colours to extract (k).
	ClusterCount int
	// Seed drives centroid initialisation.
	Seed int64
	// TargetWidth is the working width images are resized to.
	TargetWidth int

	Algorithm Algorithm

	// MaxIterations caps the assignment/update passes of a k-means run.
	MaxIterations int
	// Tolerance stops iterating once no centroid moves further than this.
	Tolerance float64
	// Runs is the number of k-means initialisations; the lowest inertia wins.
	Runs int
	// Workers splits the assignment step across goroutines.
	Workers int
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		ClusterCount:  5,
		Seed:          42,
		TargetWidth:   DefaultTargetWidth,
		Algorithm:     AlgorithmKMeans,
		MaxIterations: 300,
		Tolerance:     1e-4,
		Runs:          1,
		Workers:       1,
	}
}

// Validate validates the extraction configuration.
func (c Config) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: unknown algorithm %q (valid algorithms: %v)", ErrInvalidParameter, c.Algorithm, ValidAlgorithms())
	}
	if c.ClusterCount < 1 {
		return fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidParameter, c.ClusterCount)
	}
	if c.TargetWidth < 1 {
		return fmt.Errorf("%w: target width must be at least 1, got %d", ErrInvalidParameter, c.TargetWidth)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidParameter, c.MaxIterations)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance cannot be negative, got %g", ErrInvalidParameter, c.Tolerance)
	}
	if c.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidParameter, c.Runs)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidParameter, c.Workers)
	}
	return nil
}

// NewExtractor creates the Extractor selected by config.Algorithm.
// A nil logger discards output.
func NewExtractor(config Config, logger hclog.Logger) (Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Algorithm {
	case AlgorithmProminent:
		return &prominentExtractor{config: config}, nil
	case AlgorithmDominant:
		return &dominantExtractor{config: config}, nil
	default:
		return NewKMeansExtractor(config, logger), nil
	}
}
