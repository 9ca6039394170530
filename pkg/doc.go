// Package pkg provides the core libraries for Regiontree mesh partitioning.
//
// # Overview
//
// Regiontree recursively splits a planar polygonal mesh into a binary tree
// of labeled regions. Split candidates come from the interior skeleton of
// the mesh; areas are normalized relative to the parent, split angles are
// snapped to the axes, and leaf connectivity is resolved from the scene's
// adjacency data. The pkg directory is organized by concern:
//
//   - [geom] - planar geometry primitives (vectors, faces, meshes, skeletons)
//   - [region] - the partition tree type
//   - [partition] - the recursive greedy partitioner
//   - [regionio] - scene and tree serialization
//   - [render] - DOT, SVG, and plan-drawing output
//   - [pipeline] - load → partition → render orchestration with caching
//   - [cache] - content-addressed cache (file, Redis, null backends)
//   - [store] - run persistence (MongoDB, in-memory)
//   - [config] - TOML configuration
//   - [errors] - structured error codes and input validation
//   - [observability] - optional metrics/tracing hooks
//   - [buildinfo] - build-time version information
//
// # Quick Start
//
// Partition a scene and render a plan drawing:
//
//	import (
//	    "context"
//	    "github.com/planekit/regiontree/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    ScenePath: "plan.json",
//	    Formats:   []string{"plan"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["plan"]
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/partition/...    # Specific package
//
// [geom]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/geom
// [region]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/region
// [partition]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/partition
// [regionio]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/regionio
// [render]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/cache
// [store]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/store
// [config]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/config
// [errors]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/planekit/regiontree/pkg/buildinfo
package pkg
