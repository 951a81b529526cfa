package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// tenants sharing one Redis instance get isolated namespaces.
//
// Example usage:
//
//	// Per-user keys for custom uploaded textures
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for the shared flag catalog
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// RenderKey generates a prefixed key for a rendered badge.
func (k *ScopedKeyer) RenderKey(sourceHash, photoHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(sourceHash, photoHash, opts)
}

// AssetKey generates a prefixed key for a rasterized flag asset.
func (k *ScopedKeyer) AssetKey(flagID string, opts AssetKeyOpts) string {
	return k.prefix + k.inner.AssetKey(flagID, opts)
}

// ManifestKey generates a prefixed key for the flag manifest.
func (k *ScopedKeyer) ManifestKey(version string) string {
	return k.prefix + k.inner.ManifestKey(version)
}
