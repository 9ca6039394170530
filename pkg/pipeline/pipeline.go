// Package pipeline provides the core partitioning pipeline for Regiontree.
//
// This package implements the complete load → partition → render pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse and validate the input scene (mesh, boundary, adjacency)
//  2. Partition: Build the region tree, normalize areas, resolve connectivity
//  3. Render: Generate output in various formats (JSON, DOT, SVG, plan)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ScenePath: "plan.json",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planekit/regiontree/pkg/cache"
	"github.com/planekit/regiontree/pkg/errors"
	"github.com/planekit/regiontree/pkg/partition"
	"github.com/planekit/regiontree/pkg/region"
	"github.com/planekit/regiontree/pkg/regionio"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default plan drawing width in pixels.
	DefaultWidth = 800.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPlan = "plan"
)

// DefaultFormat is the output produced when none is requested.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPlan: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the partitioning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of ScenePath or SceneData must be set;
	// SceneData wins when both are.
	ScenePath string `json:"scene_path,omitempty"`
	SceneData []byte `json:"scene_data,omitempty"`

	// Partition options. Zero values fall back to the calibrated
	// defaults in the partition package.
	Resolution float64 `json:"resolution,omitempty"`
	AreaTol    float64 `json:"area_tol,omitempty"`
	SideTol    float64 `json:"side_tol,omitempty"`
	FlipWindow float64 `json:"flip_window,omitempty"`
	SnapWindow float64 `json:"snap_window,omitempty"`
	RootID     string  `json:"root_id,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Angle and unit labels in tree diagrams
	Labels   bool     `json:"labels,omitempty"`   // Leaf IDs in plan drawings
	Width    float64  `json:"width,omitempty"`    // Plan drawing width

	// Refresh bypasses the cache for every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the loaded input scene.
	Scene regionio.Scene

	// SceneHash is the content hash of the scene source bytes.
	SceneHash string

	// Tree is the partition tree with normalized areas and resolved
	// connectivity.
	Tree *region.Node

	// TreeHash is the content hash of the serialized tree.
	TreeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FaceCount     int
	NodeCount     int
	LeafCount     int
	Depth         int
	LoadTime      time.Duration
	PartitionTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TreeHit   bool // Whether the partition tree came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, plan)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for scene loading.
func (o *Options) ValidateForLoad() error {
	if o.ScenePath == "" && len(o.SceneData) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scene_path or scene_data is required")
	}
	if o.ScenePath != "" {
		if err := errors.ValidatePath(o.ScenePath); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PartitionOpts converts the pipeline options to partition options.
func (o *Options) PartitionOpts() partition.Options {
	opts := partition.DefaultOptions()
	if o.Resolution > 0 {
		opts.Resolution = o.Resolution
	}
	if o.AreaTol > 0 {
		opts.AreaTol = o.AreaTol
	}
	if o.SideTol > 0 {
		opts.SideTol = o.SideTol
	}
	if o.FlipWindow > 0 {
		opts.FlipWindow = o.FlipWindow
	}
	if o.SnapWindow > 0 {
		opts.SnapWindow = o.SnapWindow
	}
	if o.RootID != "" {
		opts.RootID = o.RootID
	}
	opts.Logger = o.Logger
	return opts
}

// TreeKeyOpts returns cache key options for the partition stage.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	p := o.PartitionOpts()
	return cache.TreeKeyOpts{
		Resolution: p.Resolution,
		AreaTol:    p.AreaTol,
		SideTol:    p.SideTol,
		FlipWindow: p.FlipWindow,
		SnapWindow: p.SnapWindow,
		RootID:     p.RootID,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Only
// the options that affect the given format participate, so unrelated
// flag changes keep sharing cache entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatSVG:
		opts.Detailed = o.Detailed
	case FormatPlan:
		opts.Width = o.Width
		opts.Labels = o.Labels
	}
	return opts
}
