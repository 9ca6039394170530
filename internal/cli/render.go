package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planekit/regiontree/pkg/cache"
	"github.com/planekit/regiontree/pkg/pipeline"
	"github.com/planekit/regiontree/pkg/regionio"
)

// renderCommand creates the render command. It re-renders a previously
// exported partition tree without repeating the partition stage.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		detailed   bool
		labels     bool
		width      float64
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a previously exported region tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			tree, err := regionio.ReadTree(bytes.NewReader(data))
			if err != nil {
				return err
			}
			root := regionio.ToNode(tree.Root)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			formats := parseFormats(formatsStr)
			artifacts, err := runner.Render(ctx, root, tree.Scene, cache.Hash(data), pipeline.Options{
				Formats:  formats,
				Detailed: detailed,
				Labels:   labels,
				Width:    width,
				Refresh:  refresh,
				Logger:   c.Logger,
			})
			if err != nil {
				return err
			}

			printSuccess("Rendered %s", tree.Scene)
			printStats(0, len(root.Leaves()), root.Depth(), false)
			return writeArtifacts(basePath(output, input), artifacts, formats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, plan (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show angles, units, and connectivity in tree diagrams")
	cmd.Flags().BoolVar(&labels, "labels", false, "show leaf IDs in plan drawings")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "plan drawing width")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}
