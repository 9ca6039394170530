package partition

import (
	"errors"
	"math"
	"testing"

	"github.com/planekit/regiontree/pkg/geom"
	"github.com/planekit/regiontree/pkg/region"
)

const tol = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < tol }

func square(x, y, size float64, tag string) geom.Face {
	return geom.Face{
		Vertices: []geom.Vec{
			geom.V(x, y), geom.V(x+size, y),
			geom.V(x+size, y+size), geom.V(x, y+size),
		},
		Tag: tag,
	}
}

func boundary10() *geom.Face {
	b := square(0, 0, 10, "")
	return &b
}

// twoHalves is the canonical scenario: a 10x10 plate of two 5x10 units.
func twoHalves() geom.Mesh {
	left := geom.Face{Vertices: []geom.Vec{geom.V(0, 0), geom.V(5, 0), geom.V(5, 10), geom.V(0, 10)}, Tag: "A"}
	right := geom.Face{Vertices: []geom.Vec{geom.V(5, 0), geom.V(10, 0), geom.V(10, 10), geom.V(5, 10)}, Tag: "B"}
	return geom.NewMesh(left, right)
}

func grid2x2() geom.Mesh {
	return geom.NewMesh(
		square(0, 0, 5, "A"), square(5, 0, 5, "B"),
		square(0, 5, 5, "C"), square(5, 5, 5, "D"),
	)
}

// =============================================================================
// Line Expansion
// =============================================================================

func TestExpandLineToFace_SquareVertical(t *testing.T) {
	got := ExpandLineToFace(geom.Line{Start: geom.V(5, 2), End: geom.V(5, 8)}, boundary10(), DefaultOptions())

	if d := got.Start.Sub(geom.V(5, 0)).Len(); d > tol {
		t.Errorf("expanded start = %v, want (5,0)", got.Start)
	}
	if d := got.End.Sub(geom.V(5, 10)).Len(); d > tol {
		t.Errorf("expanded end = %v, want (5,10)", got.End)
	}
}

func TestExpandLineToFace_Idempotent(t *testing.T) {
	opts := DefaultOptions()
	l := geom.Line{Start: geom.V(5, 2), End: geom.V(5, 8)}

	once := ExpandLineToFace(l, boundary10(), opts)
	twice := ExpandLineToFace(once, boundary10(), opts)

	if once != twice {
		t.Errorf("re-expansion changed the line: %v vs %v", once, twice)
	}
}

func TestExpandLineToFace_NeverShortens(t *testing.T) {
	// The segment already reaches beyond the boundary; expansion must not
	// pull the endpoints back in.
	l := geom.Line{Start: geom.V(5, -3), End: geom.V(5, 13)}
	got := ExpandLineToFace(l, boundary10(), DefaultOptions())
	if got != l {
		t.Errorf("expansion shortened the line: %v -> %v", l, got)
	}
}

func TestExpandLineToFace_NilBoundary(t *testing.T) {
	l := geom.Line{Start: geom.V(5, 2), End: geom.V(5, 8)}
	if got := ExpandLineToFace(l, nil, DefaultOptions()); got != l {
		t.Errorf("expansion with nil boundary changed the line: %v", got)
	}
}

func TestExpandLineToFace_Diagonal(t *testing.T) {
	l := geom.Line{Start: geom.V(4, 4), End: geom.V(6, 6)}
	got := ExpandLineToFace(l, boundary10(), DefaultOptions())

	if d := got.Start.Sub(geom.V(0, 0)).Len(); d > tol {
		t.Errorf("expanded start = %v, want (0,0)", got.Start)
	}
	if d := got.End.Sub(geom.V(10, 10)).Len(); d > tol {
		t.Errorf("expanded end = %v, want (10,10)", got.End)
	}
}

// =============================================================================
// Crossing Classifier
// =============================================================================

func TestLineCrossesFaceByVertexSides_Through(t *testing.T) {
	f := square(0, 0, 10, "")
	l := geom.Line{Start: geom.V(5, -1), End: geom.V(5, 11)}
	if !LineCrossesFaceByVertexSides(l, f, DefaultOptions()) {
		t.Error("line through the interior not reported as crossing")
	}
}

func TestLineCrossesFaceByVertexSides_AlongEdge(t *testing.T) {
	// The face's own edge: two vertices on the line, two on one side.
	f := square(0, 0, 10, "")
	l := geom.Line{Start: geom.V(0, 0), End: geom.V(0, 10)}
	if LineCrossesFaceByVertexSides(l, f, DefaultOptions()) {
		t.Error("boundary-touching line falsely reported as crossing")
	}
}

func TestLineCrossesFaceByVertexSides_ReversalSymmetry(t *testing.T) {
	f := square(0, 0, 10, "")
	lines := []geom.Line{
		{Start: geom.V(5, -1), End: geom.V(5, 11)},
		{Start: geom.V(-1, 5), End: geom.V(11, 5)},
		{Start: geom.V(12, 0), End: geom.V(12, 10)},
	}
	for _, l := range lines {
		fwd := LineCrossesFaceByVertexSides(l, f, DefaultOptions())
		rev := LineCrossesFaceByVertexSides(l.Reverse(), f, DefaultOptions())
		if fwd != rev {
			t.Errorf("verdict differs under reversal for %v: %v vs %v", l, fwd, rev)
		}
	}
}

func TestLineCrossesFaceByVertexSides_RotationSymmetry(t *testing.T) {
	base := square(0, 0, 10, "")
	l := geom.Line{Start: geom.V(5, -1), End: geom.V(5, 11)}

	for shift := 0; shift < 4; shift++ {
		rotated := geom.Face{Vertices: make([]geom.Vec, 4)}
		for i := range base.Vertices {
			rotated.Vertices[i] = base.Vertex(i + shift)
		}
		if !LineCrossesFaceByVertexSides(l, rotated, DefaultOptions()) {
			t.Errorf("verdict changed for vertex rotation %d", shift)
		}
	}
}

func TestLineCrossesFace_SecondaryClassifier(t *testing.T) {
	f := square(0, 0, 10, "")
	through := geom.Line{Start: geom.V(5, -1), End: geom.V(5, 11)}
	if !LineCrossesFace(through, f, DefaultOptions()) {
		t.Error("segment classifier missed an interior crossing")
	}
	along := geom.Line{Start: geom.V(0, -1), End: geom.V(0, 11)}
	if LineCrossesFace(along, f, DefaultOptions()) {
		t.Error("segment classifier reported a collinear touch as crossing")
	}
}

// =============================================================================
// Axis Extractor
// =============================================================================

func TestCandidateAxes_LongestFirst(t *testing.T) {
	// A tall unit with a shorter neighbor: only the shared 4-unit border is
	// interior, and it must come out as the single candidate.
	tall := geom.Face{Vertices: []geom.Vec{geom.V(0, 0), geom.V(5, 0), geom.V(5, 4), geom.V(5, 10), geom.V(0, 10)}, Tag: "tall"}
	low := geom.Face{Vertices: []geom.Vec{geom.V(5, 0), geom.V(10, 0), geom.V(10, 4), geom.V(5, 4)}, Tag: "low"}
	m := geom.NewMesh(tall, low)

	axes := CandidateAxes(m, DefaultOptions())
	if len(axes) != 1 {
		t.Fatalf("CandidateAxes() returned %d axes, want 1", len(axes))
	}
	if got := axes[0].Length(); !almostEqual(got, 4) {
		t.Errorf("axis length = %v, want the shared 4-unit border", got)
	}
}

func TestCandidateAxes_SortDescending(t *testing.T) {
	// 2x2 grid plus an attached wide face producing borders of different
	// lengths; all candidates must come out longest first.
	axes := CandidateAxes(grid2x2(), DefaultOptions())
	if len(axes) != 4 {
		t.Fatalf("CandidateAxes() returned %d axes, want 4", len(axes))
	}
	for i := 1; i < len(axes); i++ {
		if axes[i].Length() > axes[i-1].Length()+tol {
			t.Errorf("axes not sorted descending at %d: %v then %v", i, axes[i-1].Length(), axes[i].Length())
		}
	}
}

func TestCandidateAxes_NoSkeleton(t *testing.T) {
	if axes := CandidateAxes(geom.NewMesh(square(0, 0, 10, "")), DefaultOptions()); len(axes) != 0 {
		t.Errorf("CandidateAxes() = %v for a single convex face, want none", axes)
	}
}

func TestCandidateAxes_CollapsesChain(t *testing.T) {
	bottom := geom.Face{Vertices: []geom.Vec{geom.V(0, 0), geom.V(10, 0), geom.V(10, 5), geom.V(5, 5), geom.V(0, 5)}}
	top := geom.Face{Vertices: []geom.Vec{geom.V(0, 5), geom.V(5, 5), geom.V(10, 5), geom.V(10, 10), geom.V(0, 10)}}

	axes := CandidateAxes(geom.NewMesh(bottom, top), DefaultOptions())
	if len(axes) != 1 {
		t.Fatalf("CandidateAxes() returned %d axes, want 1 collapsed chain", len(axes))
	}
	if got := axes[0].Length(); !almostEqual(got, 10) {
		t.Errorf("collapsed axis length = %v, want 10", got)
	}
}

// =============================================================================
// Build
// =============================================================================

func TestBuild_SquareSplit(t *testing.T) {
	root, err := Build(twoHalves(), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if root.IsLeaf() {
		t.Fatal("root was not split")
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	if !almostEqual(root.Area, 100) {
		t.Errorf("root raw area = %v, want 100", root.Area)
	}
	for _, c := range root.Children {
		if !almostEqual(c.Area, 50) {
			t.Errorf("child %s raw area = %v, want 50", c.ID, c.Area)
		}
		if !c.Terminal || !c.IsLeaf() {
			t.Errorf("child %s should be a terminal leaf", c.ID)
		}
		if c.Boundary == nil {
			t.Errorf("child %s lost its boundary on a clean split", c.ID)
		}
	}
	if !almostEqual(root.Angle, math.Pi/2) {
		t.Errorf("split angle = %v, want pi/2 (vertical cut)", root.Angle)
	}
	if got := root.Children[0].ID; got != "rootL" {
		t.Errorf("left child ID = %q, want rootL", got)
	}
	if got := root.Children[1].ID; got != "rootR" {
		t.Errorf("right child ID = %q, want rootR", got)
	}
}

func TestBuild_ChildNames(t *testing.T) {
	opts := DefaultOptions()
	opts.RootID = "plate"
	root, err := Build(grid2x2(), boundary10(), opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	ids := map[string]bool{}
	root.Walk(func(n *region.Node) { ids[n.ID] = true })
	for _, want := range []string{"plate", "plateL", "plateR"} {
		if !ids[want] {
			t.Errorf("missing node %q in tree", want)
		}
	}
}

func TestBuild_GridToSingleFaceLeaves(t *testing.T) {
	root, err := Build(grid2x2(), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	leaves := root.Leaves()
	if len(leaves) != 4 {
		t.Fatalf("got %d leaves, want 4 single-face leaves", len(leaves))
	}
	for _, leaf := range leaves {
		if leaf.Mesh.FaceCount() != 1 {
			t.Errorf("leaf %s holds %d faces, want 1", leaf.ID, leaf.Mesh.FaceCount())
		}
		if !leaf.Terminal {
			t.Errorf("leaf %s not marked terminal", leaf.ID)
		}
		if leaf.MergeKey == "" {
			t.Errorf("leaf %s has no merge-key", leaf.ID)
		}
	}
}

func TestBuild_AreaSumInvariant(t *testing.T) {
	root, err := Build(grid2x2(), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	root.Walk(func(n *region.Node) {
		if n.IsLeaf() {
			return
		}
		sum := n.Children[0].Area + n.Children[1].Area
		if math.Abs(sum-n.Area) > DefaultAreaTol {
			t.Errorf("node %s: children sum %v != area %v", n.ID, sum, n.Area)
		}
	})
}

func TestBuild_FaceCountDecreases(t *testing.T) {
	root, err := Build(grid2x2(), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	root.Walk(func(n *region.Node) {
		for _, c := range n.Children {
			if c.Mesh.FaceCount() >= n.Mesh.FaceCount() {
				t.Errorf("child %s has %d faces, parent %s has %d",
					c.ID, c.Mesh.FaceCount(), n.ID, n.Mesh.FaceCount())
			}
		}
	})
}

func TestBuild_SingleFaceIsLeaf(t *testing.T) {
	root, err := Build(geom.NewMesh(square(0, 0, 10, "only")), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !root.IsLeaf() || !root.Terminal {
		t.Error("single-face mesh must stay a terminal leaf")
	}
	if root.MergeKey != "only" {
		t.Errorf("merge-key = %q, want %q", root.MergeKey, "only")
	}
}

func TestBuild_EmptyMesh(t *testing.T) {
	if _, err := Build(geom.Mesh{}, boundary10(), DefaultOptions()); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("Build() error = %v, want ErrEmptyMesh", err)
	}
}

func TestBuild_DegenerateBoundary(t *testing.T) {
	bad := &geom.Face{Vertices: []geom.Vec{geom.V(0, 0), geom.V(1, 1)}}
	if _, err := Build(twoHalves(), bad, DefaultOptions()); !errors.Is(err, ErrDegenerateBoundary) {
		t.Errorf("Build() error = %v, want ErrDegenerateBoundary", err)
	}
}

func TestBuild_BoundarySplitFailureKeepsMeshSplit(t *testing.T) {
	// A boundary polygon lying entirely off to the side: the mesh split
	// succeeds but the boundary split cannot. The accepted policy keeps
	// the mesh split and the children carry no boundary geometry.
	far := square(100, 100, 1, "")
	root, err := Build(twoHalves(), &far, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.IsLeaf() {
		t.Fatal("mesh split rejected; expected it to stand without boundary")
	}
	for _, c := range root.Children {
		if c.Boundary != nil {
			t.Errorf("child %s has a boundary despite the failed boundary split", c.ID)
		}
	}
}

func TestBuild_NilBoundary(t *testing.T) {
	root, err := Build(twoHalves(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if root.IsLeaf() {
		t.Error("nil boundary must not prevent splitting")
	}
}

// =============================================================================
// Split acceptance
// =============================================================================

func TestBucketFaces_OutsideLineRejected(t *testing.T) {
	// All faces strictly on one side: one bucket empty, not acceptable.
	line := geom.Line{Start: geom.V(-5, 0), End: geom.V(-5, 10)}
	b, ok := bucketFaces(twoHalves(), line, DefaultOptions())
	if ok {
		t.Error("one-sided candidate accepted")
	}
	if len(b.left)+len(b.right) != 2 {
		t.Errorf("faces assigned = %d, want 2 (none crossed)", len(b.left)+len(b.right))
	}
	if len(b.left) != 0 && len(b.right) != 0 {
		t.Error("faces landed in both buckets for a line outside the mesh")
	}
}

func TestBucketFaces_CrossingFaceAbstains(t *testing.T) {
	// Horizontal line through the two vertical halves crosses both.
	line := geom.Line{Start: geom.V(0, 5), End: geom.V(10, 5)}
	b, ok := bucketFaces(twoHalves(), line, DefaultOptions())
	if ok {
		t.Error("candidate crossing faces was accepted")
	}
	if b.crossed != 2 {
		t.Errorf("crossed = %d, want 2", b.crossed)
	}
}

func TestSplitNode_TriesNextCandidate(t *testing.T) {
	// An L-shaped pair: the long border splits cleanly. The point here is
	// that splitNode walks candidates until one is acceptable.
	n := &region.Node{ID: "n", Mesh: grid2x2(), Area: 100, Boundary: boundary10()}
	if !splitNode(n, DefaultOptions().normalized()) {
		t.Fatal("splitNode() failed for a splittable grid")
	}
	if len(n.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(n.Children))
	}
}

func TestAssignPiece_BothChildrenCovered(t *testing.T) {
	// Rounding can score both boundary pieces on the left (zero counts as
	// left); the second piece must still land on the empty child.
	left := &region.Node{ID: "nL"}
	right := &region.Node{ID: "nR"}
	a := square(0, 0, 5, "")
	b := square(5, 0, 5, "")

	assignPiece(left, right, 0, &a)
	assignPiece(left, right, 0, &b)

	if left.Boundary != &a {
		t.Error("first piece should go to the left child")
	}
	if right.Boundary != &b {
		t.Error("second same-side piece should fall through to the right child")
	}

	// Mirrored case: both scored right.
	left = &region.Node{ID: "nL"}
	right = &region.Node{ID: "nR"}
	assignPiece(left, right, -1, &a)
	assignPiece(left, right, -1, &b)
	if right.Boundary != &a || left.Boundary != &b {
		t.Error("second same-side piece should fall through to the left child")
	}
}

func TestAssignPiece_OppositeSides(t *testing.T) {
	left := &region.Node{ID: "nL"}
	right := &region.Node{ID: "nR"}
	a := square(0, 0, 5, "")
	b := square(5, 0, 5, "")

	assignPiece(left, right, 1, &a)
	assignPiece(left, right, -1, &b)

	if left.Boundary != &a || right.Boundary != &b {
		t.Errorf("pieces landed on the wrong children: left=%v right=%v", left.Boundary, right.Boundary)
	}
}

func TestSnapAngle(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		in, want float64
	}{
		{0.05, 0},
		{math.Pi/2 - 0.08, math.Pi / 2},
		{math.Pi - 0.01, math.Pi},
		{math.Pi / 4, math.Pi / 4}, // outside every snap window
	}
	for _, tt := range tests {
		if got := snapAngle(tt.in, opts); !almostEqual(got, tt.want) {
			t.Errorf("snapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalDirection_FlipsNearMirrored(t *testing.T) {
	opts := DefaultOptions()
	// Pointing west (angle pi): flipped to east.
	west := geom.Line{Start: geom.V(10, 5), End: geom.V(0, 5)}
	if got := canonicalDirection(west, opts); got != west.Reverse() {
		t.Error("west-pointing line not flipped")
	}
	// Pointing south (angle 3pi/2): flipped to north.
	south := geom.Line{Start: geom.V(5, 10), End: geom.V(5, 0)}
	if got := canonicalDirection(south, opts); got != south.Reverse() {
		t.Error("south-pointing line not flipped")
	}
	// Pointing east stays.
	east := geom.Line{Start: geom.V(0, 5), End: geom.V(10, 5)}
	if got := canonicalDirection(east, opts); got != east {
		t.Error("east-pointing line should not flip")
	}
}

// =============================================================================
// Post-processing
// =============================================================================

func TestNormalizeAreas_RatiosAndRoot(t *testing.T) {
	root, err := Build(grid2x2(), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	NormalizeAreas(root)

	if root.Area != 1.0 {
		t.Errorf("root ratio = %v, want exactly 1.0", root.Area)
	}
	root.Walk(func(n *region.Node) {
		if n.Area <= 0 || n.Area > 1 {
			t.Errorf("node %s ratio = %v, want in (0,1]", n.ID, n.Area)
		}
	})
	// Each of the four equal quadrants halves twice: ratio 0.5 at depth 1.
	for _, c := range root.Children {
		if !almostEqual(c.Area, 0.5) {
			t.Errorf("child %s ratio = %v, want 0.5", c.ID, c.Area)
		}
	}
}

func TestResolveConnectivityByID_AbsentEntryIsEmpty(t *testing.T) {
	root, err := Build(grid2x2(), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	leaves := root.Leaves()
	if len(leaves) != 4 {
		t.Fatalf("got %d leaves, want 4", len(leaves))
	}
	a, b, c := leaves[0], leaves[1], leaves[2]

	table := map[string][]string{
		a.ID: {b.ID},
		b.ID: {a.ID},
	}
	ResolveConnectivityByID(root, table)

	if len(a.Connectivity) != 1 || a.Connectivity[0] != b.ID {
		t.Errorf("leaf %s connectivity = %v, want [%s]", a.ID, a.Connectivity, b.ID)
	}
	if len(c.Connectivity) != 0 {
		t.Errorf("absent leaf %s connectivity = %v, want empty", c.ID, c.Connectivity)
	}
}

func TestResolveConnectivity_ByMergeKey(t *testing.T) {
	root, err := Build(twoHalves(), boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	ResolveConnectivity(root, map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	leaves := root.Leaves()
	byKey := map[string]*region.Node{}
	for _, l := range leaves {
		byKey[l.MergeKey] = l
	}
	a, b := byKey["A"], byKey["B"]
	if a == nil || b == nil {
		t.Fatalf("merge-keys not assigned: %v", leaves)
	}
	if len(a.Connectivity) != 1 || a.Connectivity[0] != b.ID {
		t.Errorf("A connectivity = %v, want [%s]", a.Connectivity, b.ID)
	}
	if len(b.Connectivity) != 1 || b.Connectivity[0] != a.ID {
		t.Errorf("B connectivity = %v, want [%s]", b.Connectivity, a.ID)
	}
}

func TestResolveConnectivity_SharedMergeKeyExpands(t *testing.T) {
	// Two faces of unit X, one of unit Y: Y's neighbor list expands to
	// both X-leaves.
	m := geom.NewMesh(
		square(0, 0, 5, "X"), square(5, 0, 5, "X"),
		square(0, 5, 5, "Y"), square(5, 5, 5, "Y"),
	)
	root, err := Build(m, boundary10(), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	ResolveConnectivity(root, map[string][]string{
		"X": {"Y"},
		"Y": {"X"},
	})

	var xIDs, yIDs []string
	for _, l := range root.Leaves() {
		switch l.MergeKey {
		case "X":
			xIDs = append(xIDs, l.ID)
		case "Y":
			yIDs = append(yIDs, l.ID)
		}
	}
	if len(xIDs) != 2 || len(yIDs) != 2 {
		t.Fatalf("expected 2 leaves per unit, got X=%v Y=%v", xIDs, yIDs)
	}
	for _, l := range root.Leaves() {
		want := 2 // each unit neighbors the other unit's two leaves
		if len(l.Connectivity) != want {
			t.Errorf("leaf %s connectivity = %v, want %d peers", l.ID, l.Connectivity, want)
		}
	}
}

// =============================================================================
// Entry point
// =============================================================================

func TestPartition_EndToEnd(t *testing.T) {
	root, err := Partition(twoHalves(), boundary10(), Adjacency{
		MergeKeys: map[string][]string{"A": {"B"}, "B": {"A"}},
	}, DefaultOptions())
	if err != nil {
		t.Fatalf("Partition() error: %v", err)
	}
	if root.Area != 1.0 {
		t.Errorf("root ratio = %v, want 1.0", root.Area)
	}
	for _, leaf := range root.Leaves() {
		if len(leaf.Connectivity) != 1 {
			t.Errorf("leaf %s connectivity = %v, want one peer", leaf.ID, leaf.Connectivity)
		}
	}
}

func TestPartition_InvalidInput(t *testing.T) {
	if _, err := Partition(geom.Mesh{}, boundary10(), Adjacency{}, DefaultOptions()); err == nil {
		t.Error("Partition() accepted an empty mesh")
	}
}
