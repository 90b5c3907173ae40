// Package cache provides pluggable byte caching for rendered artifacts and
// fetched profiles.
//
// Three backends are available:
//   - FileCache: persistent cache under a local directory (CLI default)
//   - RedisCache: shared cache for server deployments
//   - NullCache: disabled caching
//
// Keys are produced by a Keyer so that every consumer derives them the same
// way. Use ScopedKeyer to namespace keys per profile or per tenant.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default TTLs per cached stage. Remote profiles can change under the same
// URL, so they expire quickly. Frames and artifacts are keyed by content
// hash and never go stale; their TTL only bounds disk usage.
const (
	TTLProfile  = 6 * time.Hour
	TTLFrame    = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface all cache backends implement.
// Implementations must treat a missing key as (nil, false, nil), not an error.
type Cache interface {
	// Get retrieves the value for key. The second return reports whether
	// the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// FrameKeyOpts captures every option that changes the render-list output.
// Two frames with equal profile hashes and equal opts are byte-identical.
type FrameKeyOpts struct {
	Width         float64
	Height        float64
	BandHeight    float64
	Flip          bool
	Focus         string
	Search        string
	MinLabelWidth float64
}

// ArtifactKeyOpts captures every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	Style      string
	Width      float64
	Height     float64
	BandHeight float64
	Flip       bool
	Focus      string
	Search     string
}

// Keyer derives cache keys for the different cacheable stages.
type Keyer interface {
	// HTTPKey generates a key for a fetched HTTP response.
	HTTPKey(namespace, key string) string

	// FrameKey generates a key for a computed render list.
	FrameKey(profileHash string, opts FrameKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact (svg, png, ...).
	ArtifactKey(profileHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
// Option structs are hashed so that any option change produces a new key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// FrameKey generates a key for render-list caching.
func (k *DefaultKeyer) FrameKey(profileHash string, opts FrameKeyOpts) string {
	return hashKey("frame", profileHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(profileHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", profileHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
