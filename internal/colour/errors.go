// Package colour provides colour extraction and palette generation functionality.
package colour

import "errors"

// Errors reported by the extraction pipeline. Call sites wrap them with context,
// so callers should test with errors.Is.
var (
	// ErrInvalidImage is returned for nil, zero-area or undecodable images.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInsufficientSamples is returned when more clusters are requested than
	// there are samples to cluster.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrInvalidParameter is returned for out-of-range configuration such as a
	// cluster count below 1 or a malformed seed.
	ErrInvalidParameter = errors.New("invalid parameter")
)
