package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to keep per-tenant cache entries separate while
// sharing one backend.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Global keys for shared scenes
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

// SceneKey generates a prefixed key for scene caching.
func (k *ScopedKeyer) SceneKey(sourceHash string) string {
	return k.prefix + k.inner.SceneKey(sourceHash)
}

// TreeKey generates a prefixed key for partition tree caching.
func (k *ScopedKeyer) TreeKey(sceneHash string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(sceneHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
