// Package cache provides caching for partition pipeline stages.
//
// The Cache interface abstracts the storage backend: FileCache for CLI
// usage, RedisCache for the server, and NullCache to disable caching.
// Keyer generates stable content-addressed keys for each pipeline stage
// so a scene re-run with identical inputs hits the cache at every stage.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per pipeline stage. Scenes and trees are content
// addressed, so long TTLs are safe; artifacts are cheap to rebuild.
const (
	TTLScene    = 30 * 24 * time.Hour
	TTLTree     = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage backend interface. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of zero means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TreeKeyOpts captures the partition parameters that affect the tree, so
// runs with different tolerances never share a cache entry.
type TreeKeyOpts struct {
	Resolution float64
	AreaTol    float64
	SideTol    float64
	FlipWindow float64
	SnapWindow float64
	RootID     string
}

// ArtifactKeyOpts captures the render parameters that affect the output
// artifact. Every option that changes rendered bytes must appear here,
// otherwise renders with different options would share a cache entry.
type ArtifactKeyOpts struct {
	Format   string  // json, dot, svg, plan
	Width    float64 // plan drawing width
	Detailed bool    // tree diagram detail labels
	Labels   bool    // plan leaf labels
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// SceneKey keys a parsed scene by the hash of its source bytes.
	SceneKey(sourceHash string) string

	// TreeKey keys a partition tree by the scene hash and the partition
	// parameters.
	TreeKey(sceneHash string, opts TreeKeyOpts) string

	// ArtifactKey keys a rendered artifact by the tree hash and the
	// render parameters.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SceneKey generates a key for scene caching.
func (k *DefaultKeyer) SceneKey(sourceHash string) string {
	return hashKey("scene", sourceHash)
}

// TreeKey generates a key for partition tree caching.
func (k *DefaultKeyer) TreeKey(sceneHash string, opts TreeKeyOpts) string {
	return hashKey("tree", sceneHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
