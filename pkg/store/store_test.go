package store

import (
	"context"
	"testing"
	"time"

	"github.com/planekit/regiontree/pkg/errors"
	"github.com/planekit/regiontree/pkg/regionio"
)

func TestNewRunID_Unique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == "" || a == b {
		t.Errorf("run IDs not unique: %q, %q", a, b)
	}
}

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	run := Run{
		ID:        NewRunID(),
		Scene:     "plan",
		SceneHash: "abc",
		TreeHash:  "def",
		Tree:      regionio.Tree{Scene: "plan", Root: regionio.TreeNode{ID: "root", Area: 1}},
		Stats:     RunStats{FaceCount: 2, LeafCount: 2, NodeCount: 3, Depth: 2},
		CreatedAt: time.Now(),
	}
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Scene != "plan" || got.Tree.Root.ID != "root" {
		t.Errorf("Get = %+v, want saved run", got)
	}

	// Overwrite with the same ID
	run.Scene = "plan2"
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if got, _ := s.Get(ctx, run.ID); got.Scene != "plan2" {
		t.Errorf("Save did not overwrite: %q", got.Scene)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, errors.ErrCodeRunNotFound) {
		t.Errorf("error = %v, want RUN_NOT_FOUND", err)
	}
}

func TestMemoryStore_List(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now()
	for i := 0; i < 5; i++ {
		run := Run{ID: NewRunID(), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Save(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List returned %d runs, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].CreatedAt.After(runs[i-1].CreatedAt) {
			t.Error("List not sorted newest first")
		}
	}
}
