package regionio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/planekit/regiontree/pkg/errors"
)

// ReadScene decodes a JSON scene from r.
//
// The input must be a JSON object with a "faces" array:
//
//	{
//	  "faces": [{"vertices": [[0,0],[5,0],[5,10],[0,10]], "unit": "A"}],
//	  "boundary": [[0,0],[10,0],[10,10],[0,10]],
//	  "adjacency": {"A": ["B"], "B": ["A"]}
//	}
//
// Each face must have at least 3 vertices. The boundary and adjacency
// tables are optional. ReadScene returns a structured error with code
// INVALID_SCENE for malformed geometry; it does not close r.
func ReadScene(r io.Reader) (Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if err := validateScene(s); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// ImportScene reads a JSON scene file at path.
//
// ImportScene opens the file, decodes it using [ReadScene], and closes
// the file. Errors wrap the underlying cause with the file path for
// context.
func ImportScene(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Scene{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f)
}

func validateScene(s Scene) error {
	if s.Name != "" {
		if err := errors.ValidateSceneName(s.Name); err != nil {
			return err
		}
	}
	if len(s.Faces) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no faces")
	}
	for i, f := range s.Faces {
		if len(f.Vertices) < 3 {
			return errors.New(errors.ErrCodeInvalidMesh, "face %d has %d vertices, need at least 3", i, len(f.Vertices))
		}
		if err := errors.ValidateMergeKey(f.Unit); err != nil {
			return err
		}
	}
	if n := len(s.Boundary); n > 0 && n < 3 {
		return errors.New(errors.ErrCodeInvalidBoundary, "boundary has %d vertices, need at least 3", n)
	}
	return nil
}
