package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/planekit/regiontree/pkg/errors"
	"github.com/planekit/regiontree/pkg/pipeline"
	"github.com/planekit/regiontree/pkg/regionio"
	"github.com/planekit/regiontree/pkg/store"
)

// partitionRequest is the body of POST /api/partition.
type partitionRequest struct {
	Scene json.RawMessage `json:"scene"`

	Resolution float64 `json:"resolution,omitempty"`
	AreaTol    float64 `json:"area_tol,omitempty"`
	SideTol    float64 `json:"side_tol,omitempty"`
	FlipWindow float64 `json:"flip_window,omitempty"`
	SnapWindow float64 `json:"snap_window,omitempty"`
	RootID     string  `json:"root_id,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`
}

// partitionResponse is the body of a successful partition call.
type partitionResponse struct {
	RunID     string             `json:"run_id"`
	Tree      regionio.Tree      `json:"tree"`
	SceneHash string             `json:"scene_hash"`
	TreeHash  string             `json:"tree_hash"`
	Stats     store.RunStats     `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	var req partitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Scene) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}

	start := time.Now()
	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		SceneData:  req.Scene,
		Resolution: req.Resolution,
		AreaTol:    req.AreaTol,
		SideTol:    req.SideTol,
		FlipWindow: req.FlipWindow,
		SnapWindow: req.SnapWindow,
		RootID:     req.RootID,
		Refresh:    req.Refresh,
		Formats:    []string{pipeline.FormatJSON},
		Logger:     s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	run := store.Run{
		ID:        store.NewRunID(),
		Scene:     result.Scene.Name,
		SceneHash: result.SceneHash,
		TreeHash:  result.TreeHash,
		Tree:      regionio.Tree{Scene: result.Scene.Name, Root: regionio.FromNode(result.Tree)},
		Stats: store.RunStats{
			FaceCount: result.Stats.FaceCount,
			NodeCount: result.Stats.NodeCount,
			LeafCount: result.Stats.LeafCount,
			Depth:     result.Stats.Depth,
			Duration:  time.Since(start),
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(r.Context(), run); err != nil {
		s.logger.Error("save run failed", "run", run.ID, "err", err)
		// The partition succeeded; report it even if persistence failed.
	}

	writeJSON(w, http.StatusOK, partitionResponse{
		RunID:     run.ID,
		Tree:      run.Tree,
		SceneHash: run.SceneHash,
		TreeHash:  run.TreeHash,
		Stats:     run.Stats,
		Cache:     result.CacheInfo,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		s.writeError(w, err)
		return
	}
	run, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// writeError maps structured error codes to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		status = http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		status = http.StatusNotFound
	case code == errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
