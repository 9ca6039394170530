package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planekit/regiontree/pkg/pipeline"
	"github.com/planekit/regiontree/pkg/store"
)

const sceneJSON = `{
  "name": "plan",
  "faces": [
    {"vertices": [[0,0],[5,0],[5,10],[0,10]], "unit": "A"},
    {"vertices": [[5,0],[10,0],[10,10],[5,10]], "unit": "B"}
  ],
  "boundary": [[0,0],[10,0],[10,10],[0,10]],
  "adjacency": {"A": ["B"], "B": ["A"]}
}`

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runStore := store.NewMemoryStore()
	runner := pipeline.NewRunner(nil, nil, logger)
	return New(runner, runStore, logger, 5*time.Second), runStore
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandlePartition(t *testing.T) {
	srv, runStore := newTestServer(t)

	body := `{"scene": ` + sceneJSON + `}`
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/partition", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body)
	}

	var resp partitionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" {
		t.Error("run_id missing")
	}
	if resp.Tree.Root.ID != "root" || len(resp.Tree.Root.Children) != 2 {
		t.Errorf("tree = %+v, want split root", resp.Tree.Root)
	}
	if resp.Stats.LeafCount != 2 {
		t.Errorf("leaf count = %d, want 2", resp.Stats.LeafCount)
	}

	// The run was persisted and is retrievable.
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+resp.RunID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get run status = %d, want 200", rec.Code)
	}
	var run store.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	if run.ID != resp.RunID || run.Scene != "plan" {
		t.Errorf("run = %+v", run)
	}

	if saved, err := runStore.Get(httptest.NewRequest(http.MethodGet, "/", nil).Context(), resp.RunID); err != nil || saved.TreeHash == "" {
		t.Errorf("store.Get = %+v, %v", saved, err)
	}
}

func TestHandlePartition_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing scene", `{}`},
		{"invalid scene", `{"scene": {"faces": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/partition", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body: %s)", rec.Code, rec.Body)
			}
		})
	}
}

func TestHandleGetRun_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/"+store.NewRunID(), nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "RUN_NOT_FOUND" {
		t.Errorf("code = %q, want RUN_NOT_FOUND", resp.Code)
	}
}

func TestHandleGetRun_MalformedID(t *testing.T) {
	// Run IDs are UUIDs; anything else is rejected before the store is hit.
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/not-a-uuid", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "INVALID_RUN_ID" {
		t.Errorf("code = %q, want INVALID_RUN_ID", resp.Code)
	}
}

func TestHandleListRuns(t *testing.T) {
	srv, _ := newTestServer(t)

	// Empty store lists as an empty array, not null.
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body = %s, want []", got)
	}

	body := `{"scene": ` + sceneJSON + `}`
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/partition", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatal("partition failed")
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=10", nil))
	var runs []store.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("runs = %d, want 1", len(runs))
	}
}

func TestHandleListRuns_BadLimit(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=bogus", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
