package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planekit/regiontree/pkg/cache"
	"github.com/planekit/regiontree/pkg/observability"
	"github.com/planekit/regiontree/pkg/region"
	"github.com/planekit/regiontree/pkg/regionio"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → partition → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.ScenePath)
	scene, source, err := Load(opts)
	observability.Pipeline().OnLoadComplete(ctx, scene.Name, len(scene.Faces), time.Since(loadStart), err)
	if err != nil {
		return nil, err
	}
	result.Scene = scene
	result.SceneHash = cache.Hash(source)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.FaceCount = len(scene.Faces)

	r.Logger.Info("loaded scene",
		"name", scene.Name,
		"faces", len(scene.Faces),
		"duration", result.Stats.LoadTime)

	// Stage 2: Partition
	partitionStart := time.Now()
	observability.Pipeline().OnPartitionStart(ctx, scene.Name, len(scene.Faces))
	root, treeHit, err := r.PartitionWithCacheInfo(ctx, scene, result.SceneHash, opts)
	if err != nil {
		observability.Pipeline().OnPartitionComplete(ctx, scene.Name, 0, 0, time.Since(partitionStart), err)
		return nil, err
	}
	observability.Pipeline().OnPartitionComplete(ctx, scene.Name, root.Count(), len(root.Leaves()), time.Since(partitionStart), nil)
	result.Tree = root
	result.Stats.PartitionTime = time.Since(partitionStart)
	result.Stats.NodeCount = root.Count()
	result.Stats.LeafCount = len(root.Leaves())
	result.Stats.Depth = root.Depth()
	result.CacheInfo.TreeHit = treeHit

	// Compute tree hash for cache keys and API responses
	if treeData, err := marshalTree(scene.Name, root); err == nil {
		result.TreeHash = cache.Hash(treeData)
	}

	r.Logger.Info("partitioned scene",
		"nodes", result.Stats.NodeCount,
		"leaves", result.Stats.LeafCount,
		"depth", result.Stats.Depth,
		"duration", result.Stats.PartitionTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, root, scene.Name, result.TreeHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PartitionWithCacheInfo builds the region tree with caching and returns
// cache hit info. A cached tree carries the full partition result except
// per-node mesh geometry; plan rendering still works from the serialized
// boundaries.
func (r *Runner) PartitionWithCacheInfo(ctx context.Context, scene regionio.Scene, sceneHash string, opts Options) (*region.Node, bool, error) {
	cacheKey := r.Keyer.TreeKey(sceneHash, opts.TreeKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if t, err := regionio.ReadTree(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return regionio.ToNode(t.Root), true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "tree")

	root, err := PartitionScene(scene, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := marshalTree(scene.Name, root); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTree)
		observability.Cache().OnCacheSet(ctx, "tree", len(data))
	}

	return root, false, nil // Cache miss
}

// Partition is a convenience wrapper that calls PartitionWithCacheInfo
// and discards the cache hit info.
func (r *Runner) Partition(ctx context.Context, scene regionio.Scene, sceneHash string, opts Options) (*region.Node, error) {
	root, _, err := r.PartitionWithCacheInfo(ctx, scene, sceneHash, opts)
	return root, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, root *region.Node, sceneName, treeHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderTree(root, sceneName, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, root *region.Node, sceneName, treeHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, root, sceneName, treeHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// marshalTree serializes a tree compactly for hashing and caching.
func marshalTree(sceneName string, root *region.Node) ([]byte, error) {
	return json.Marshal(regionio.Tree{Scene: sceneName, Root: regionio.FromNode(root)})
}
