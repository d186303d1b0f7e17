// Package cache provides content-addressed caching for rendered charts.
//
// Rendering the same dataset with the same styling is deterministic, so
// the CLI caches encoded artifacts keyed on a hash of the inputs. The
// package ships a file-backed implementation for CLI usage and a null
// implementation for tests and --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts as opaque byte blobs.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer builds cache keys for the artifacts the renderer produces.
type Keyer interface {
	// ArtifactKey generates a key for an encoded chart.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts captures the render parameters that change the output
// for identical input data.
type ArtifactKeyOpts struct {
	Format string
	Width  int
	Height int
	Style  string // hash of the style configuration, empty when unstyled
}

// DefaultKeyer is the standard key scheme: a versioned prefix plus a
// SHA-256 over the key components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for an encoded chart.
func (k *DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:v1", inputHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so callers sharing one cache
// directory get separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. The prefix is prepended
// to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed key for an encoded chart.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
