// Package mesh builds the CPU-side geometry of the book: deformable page
// grids and cover boxes, ready for GPU upload.
package mesh

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds vertex and index data plus a dirty flag the renderer checks
// before drawing.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	// Cols and Rows are the grid dimensions in vertices; zero for non-grid meshes.
	Cols, Rows int

	dirty bool
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// MarkDirty flags the vertex data as changed since the last upload.
func (m *Mesh) MarkDirty() {
	m.dirty = true
}

// Dirty reports whether the vertex data changed since the last upload.
func (m *Mesh) Dirty() bool {
	return m.dirty
}

// ClearDirty is called by the renderer after uploading.
func (m *Mesh) ClearDirty() {
	m.dirty = false
}

// emptyBounds returns bounds that any point will expand.
func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// RecomputeBounds recalculates Bounds from the current vertex positions.
func (m *Mesh) RecomputeBounds() {
	m.Bounds = emptyBounds()
	for i := range m.Vertices {
		updateBounds(&m.Bounds, m.Vertices[i].Position)
	}
}
