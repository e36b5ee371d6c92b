// Package fs provides filesystem-backed helpers such as the classification cache.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "bouncer"

// DefaultCacheDir returns the default cache directory for bouncer.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/bouncer,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}
