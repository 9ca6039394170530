package geom

// Mesh is an unordered collection of faces representing one spatial region
// at a point in the partition recursion. The region may be multi-part;
// nothing requires the faces to be contiguous.
type Mesh struct {
	Faces []Face
}

// NewMesh builds a mesh from the given faces.
func NewMesh(faces ...Face) Mesh {
	return Mesh{Faces: faces}
}

// FaceCount returns the number of faces.
func (m Mesh) FaceCount() int { return len(m.Faces) }

// TotalArea returns the sum of all face areas.
func (m Mesh) TotalArea() float64 {
	var sum float64
	for _, f := range m.Faces {
		sum += f.Area()
	}
	return sum
}

// Append returns a mesh with f added. The receiver is not modified.
func (m Mesh) Append(f Face) Mesh {
	faces := make([]Face, 0, len(m.Faces)+1)
	faces = append(faces, m.Faces...)
	faces = append(faces, f)
	return Mesh{Faces: faces}
}
