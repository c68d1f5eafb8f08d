// Package imagecache keeps downloaded images on disk so repeated extractions
// from the same URL skip the network.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/MuhammadMiqdad/tugas-color-picker/internal/util/http"
)

// Options configures a cache lookup.
type Options struct {
	// Dir is the cache directory. If empty, DefaultCacheDir is used.
	Dir string

	// Refresh refetches the URL even when a cached copy exists.
	Refresh bool

	// Fetch configures the download.
	Fetch httputil.FetchOptions
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "colorpicker", "images"), nil
	}
	return filepath.Join(cacheDir, "colorpicker", "images"), nil
}

// Filename derives the cache file name for url: the first 16 bytes of its
// SHA-256 in hex, plus the URL's extension (".img" when it has none).
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.ContainsRune(ext, '/') {
		ext = ".img"
	}

	return fmt.Sprintf("%x%s", hash[:16], strings.ToLower(ext))
}

// Fetch returns the body of url, reading it from the cache when present and
// storing it otherwise. The second result reports a cache hit.
func Fetch(ctx context.Context, url string, opts Options) ([]byte, bool, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, false, fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return nil, false, err
		}
		dir = defaultDir
	}

	path := filepath.Join(dir, Filename(url))
	if !opts.Refresh {
		if data, err := os.ReadFile(path); err == nil { // #nosec G304 - path is derived from the cache dir and a hash
			return data, true, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return nil, false, fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, false, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return nil, false, fmt.Errorf("failed to write cached image: %w", err)
	}

	return data, false, nil
}
