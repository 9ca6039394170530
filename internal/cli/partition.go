package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planekit/regiontree/pkg/pipeline"
)

// partitionOpts holds the command-line flags for the partition command.
type partitionOpts struct {
	output     string  // output file path (or base path for multiple formats)
	detailed   bool    // angle and unit labels in tree diagrams
	labels     bool    // leaf IDs in plan drawings
	width      float64 // plan drawing width in pixels
	noCache    bool    // disable caching for this run
	refresh    bool    // recompute even when cached
	rootID     string  // ID of the tree root
	resolution float64 // vertex quantization resolution
	areaTol    float64 // minimum accepted child area
	sideTol    float64 // side classification tolerance
	flipWindow float64 // direction canonicalization window
	snapWindow float64 // axis snapping window
}

// partitionCommand creates the partition command, the main entry point of
// the CLI: load a scene, build the region tree, and write the requested
// artifacts.
func (c *CLI) partitionCommand() *cobra.Command {
	var formatsStr string
	opts := partitionOpts{width: pipeline.DefaultWidth}

	cmd := &cobra.Command{
		Use:   "partition [scene.json]",
		Short: "Partition a scene into a region tree and render it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPartition(cmd, args[0], parseFormats(formatsStr), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, plan (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show angles, units, and connectivity in tree diagrams")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "show leaf IDs in plan drawings")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "plan drawing width")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().StringVar(&opts.rootID, "root", "", "ID of the tree root (default \"root\")")
	cmd.Flags().Float64Var(&opts.resolution, "resolution", 0, "vertex quantization resolution")
	cmd.Flags().Float64Var(&opts.areaTol, "area-tol", 0, "minimum accepted child area")
	cmd.Flags().Float64Var(&opts.sideTol, "side-tol", 0, "side classification tolerance")
	cmd.Flags().Float64Var(&opts.flipWindow, "flip-window", 0, "direction canonicalization window (radians)")
	cmd.Flags().Float64Var(&opts.snapWindow, "snap-window", 0, "axis snapping window (radians)")

	return cmd
}

func (c *CLI) runPartition(cmd *cobra.Command, input string, formats []string, opts *partitionOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		ScenePath:  input,
		Resolution: firstNonZero(opts.resolution, cfg.Partition.Resolution),
		AreaTol:    firstNonZero(opts.areaTol, cfg.Partition.AreaTol),
		SideTol:    firstNonZero(opts.sideTol, cfg.Partition.SideTol),
		FlipWindow: firstNonZero(opts.flipWindow, cfg.Partition.FlipWindow),
		SnapWindow: firstNonZero(opts.snapWindow, cfg.Partition.SnapWindow),
		RootID:     firstNonEmpty(opts.rootID, cfg.Partition.RootID),
		Formats:    formats,
		Detailed:   opts.detailed,
		Labels:     opts.labels,
		Width:      opts.width,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Partitioning "+filepath.Base(input))
	spinner.Start()
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Partitioned %s", result.Scene.Name))
	printStats(result.Stats.FaceCount, result.Stats.LeafCount, result.Stats.Depth, result.CacheInfo.TreeHit)

	return writeArtifacts(basePath(opts.output, input), result.Artifacts, formats)
}

// firstNonZero returns a if non-zero, otherwise b.
func firstNonZero(a, b float64) float64 {
	if a != 0 {
		return a
	}
	return b
}

// firstNonEmpty returns a if non-empty, otherwise b.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// artifactExts maps formats to output file extensions. The plan format
// renders as SVG and carries a distinguishing suffix so both svg and
// plan can be written next to each other.
var artifactExts = map[string]string{
	pipeline.FormatJSON: ".json",
	pipeline.FormatDOT:  ".dot",
	pipeline.FormatSVG:  ".svg",
	pipeline.FormatPlan: ".plan.svg",
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output
// carries a known artifact extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range artifactExts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeArtifacts writes each rendered artifact next to base using the
// format's extension.
func writeArtifacts(base string, artifacts map[string][]byte, formats []string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + artifactExts[format]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
