// Package cache provides caching for rendered badges and fetched flag
// assets. Backends share one byte-oriented interface so the CLI (file
// cache), the server (Redis or memory), and tests (null) are
// interchangeable.
package cache

import (
	"context"
	"time"
)

// TTLs per artifact class. Rendered badges are cheap to regenerate;
// rasterized assets change only when the upstream artwork does.
const (
	TTLRender   = 24 * time.Hour
	TTLAsset    = 7 * 24 * time.Hour
	TTLManifest = 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys with optional TTLs.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKeyOpts are the option fields that change render output and so
// must participate in the cache key.
type RenderKeyOpts struct {
	Size         int     `json:"size"`
	ThicknessPct float64 `json:"thickness_pct"`
	PaddingPct   float64 `json:"padding_pct"`
	ImageInset   float64 `json:"image_inset"`
	OffsetX      int     `json:"offset_x"`
	Presentation string  `json:"presentation"`
	Background   string  `json:"background"`
	StrokeColor  string  `json:"stroke_color"`
	StrokeWidth  float64 `json:"stroke_width"`
}

// AssetKeyOpts distinguish rasterizations of the same flag asset.
type AssetKeyOpts struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Keyer builds cache keys for the pipeline stages. Implementations must
// be deterministic: equal inputs always produce equal keys.
type Keyer interface {
	// HTTPKey keys a raw HTTP response by namespace and request key.
	HTTPKey(namespace, key string) string

	// RenderKey keys a finished badge by its border source hash, photo
	// hash, and the render options that shaped it.
	RenderKey(sourceHash, photoHash string, opts RenderKeyOpts) string

	// AssetKey keys a rasterized flag bitmap.
	AssetKey(flagID string, opts AssetKeyOpts) string

	// ManifestKey keys the validated flag manifest.
	ManifestKey(version string) string
}

// DefaultKeyer is the standard key scheme. Option structs are hashed so
// keys stay fixed-length no matter how options grow.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// RenderKey generates a key for a rendered badge.
func (k *DefaultKeyer) RenderKey(sourceHash, photoHash string, opts RenderKeyOpts) string {
	return hashKey("render", sourceHash, photoHash, opts)
}

// AssetKey generates a key for a rasterized flag asset.
func (k *DefaultKeyer) AssetKey(flagID string, opts AssetKeyOpts) string {
	return hashKey("asset", flagID, opts)
}

// ManifestKey generates a key for the flag manifest.
func (k *DefaultKeyer) ManifestKey(version string) string {
	return "manifest:" + version
}

var _ Keyer = (*DefaultKeyer)(nil)
