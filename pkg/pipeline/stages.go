package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/planekit/regiontree/pkg/errors"
	"github.com/planekit/regiontree/pkg/partition"
	"github.com/planekit/regiontree/pkg/region"
	"github.com/planekit/regiontree/pkg/regionio"
	"github.com/planekit/regiontree/pkg/render"
)

// Load reads and validates the input scene. It returns the parsed scene
// together with the raw source bytes used for content-addressed caching.
func Load(opts Options) (regionio.Scene, []byte, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return regionio.Scene{}, nil, err
	}

	data := opts.SceneData
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(opts.ScenePath)
		if err != nil {
			if os.IsNotExist(err) {
				return regionio.Scene{}, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", opts.ScenePath)
			}
			return regionio.Scene{}, nil, fmt.Errorf("read %s: %w", opts.ScenePath, err)
		}
	}

	scene, err := regionio.ReadScene(bytes.NewReader(data))
	if err != nil {
		return regionio.Scene{}, nil, err
	}
	return scene, data, nil
}

// PartitionScene builds the region tree for a scene: recursive splitting,
// area normalization, and connectivity resolution.
func PartitionScene(scene regionio.Scene, opts Options) (*region.Node, error) {
	root, err := partition.Partition(scene.Mesh(), scene.BoundaryFace(), partition.Adjacency{
		MergeKeys: scene.Adjacency,
		IDs:       scene.LeafAdjacency,
	}, opts.PartitionOpts())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePartition, err, "partition scene")
	}
	return root, nil
}

// RenderTree generates the requested artifacts for a partition tree,
// keyed by format.
func RenderTree(root *region.Node, sceneName string, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := regionio.WriteTree(regionio.Tree{Scene: sceneName, Root: regionio.FromNode(root)}, &buf); err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render json")
			}
			artifacts[format] = buf.Bytes()
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(root, render.Options{Detailed: opts.Detailed}))
		case FormatSVG:
			dot := render.ToDOT(root, render.Options{Detailed: opts.Detailed})
			svg, err := render.RenderSVG(dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render svg")
			}
			artifacts[format] = svg
		case FormatPlan:
			artifacts[format] = render.PlanSVG(root, render.PlanOptions{Width: opts.Width, Labels: opts.Labels})
		}
	}
	return artifacts, nil
}
