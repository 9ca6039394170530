// Package store persists pipeline runs for later retrieval.
//
// The server saves every partition run as a Run document so results can
// be fetched by ID without recomputing. MongoStore is the production
// backend; MemoryStore backs tests and deployments without a database.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/planekit/regiontree/pkg/regionio"
)

// Run is one persisted pipeline execution.
type Run struct {
	ID        string        `json:"id" bson:"_id"`
	Scene     string        `json:"scene,omitempty" bson:"scene,omitempty"`
	SceneHash string        `json:"scene_hash" bson:"scene_hash"`
	TreeHash  string        `json:"tree_hash" bson:"tree_hash"`
	Tree      regionio.Tree `json:"tree" bson:"tree"`
	Stats     RunStats      `json:"stats" bson:"stats"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// RunStats summarizes a run for listings.
type RunStats struct {
	FaceCount int           `json:"face_count" bson:"face_count"`
	NodeCount int           `json:"node_count" bson:"node_count"`
	LeafCount int           `json:"leaf_count" bson:"leaf_count"`
	Depth     int           `json:"depth" bson:"depth"`
	Duration  time.Duration `json:"duration" bson:"duration"`
}

// RunStore persists and retrieves runs.
type RunStore interface {
	// Save persists a run. Saving an existing ID overwrites it.
	Save(ctx context.Context, run Run) error

	// Get retrieves a run by ID. Absent runs yield a structured error
	// with code RUN_NOT_FOUND.
	Get(ctx context.Context, id string) (Run, error)

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewRunID generates a unique run identifier.
func NewRunID() string {
	return uuid.NewString()
}
