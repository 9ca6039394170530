package regionio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/planekit/regiontree/pkg/region"
)

// WriteTree encodes a partition tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadTree] for round-trip processing
// (mesh geometry excluded).
func WriteTree(t Tree, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadTree decodes a JSON tree from r. ReadTree does not close r.
func ReadTree(r io.Reader) (Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Tree{}, fmt.Errorf("decode: %w", err)
	}
	return t, nil
}

// ExportTree writes a partition tree to a JSON file at path.
// This is a convenience wrapper around [WriteTree] for file-based output.
func ExportTree(root *region.Node, sceneName, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(Tree{Scene: sceneName, Root: FromNode(root)}, f)
}

// ImportTree reads a JSON tree file at path.
func ImportTree(path string) (Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tree{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}
