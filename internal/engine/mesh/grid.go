package mesh

// NewGrid builds a planar grid of width x height split into segX by segY
// quads. X runs from 0 (the spine) to width; Y is centered on the origin;
// every vertex starts at z = 0 facing +Z.
//
// Vertices are laid out row-major: index = row*(segX+1) + col.
func NewGrid(width, height float32, segX, segY int) *Mesh {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}
	cols, rows := segX+1, segY+1

	m := &Mesh{
		Vertices: make([]Vertex, 0, cols*rows),
		Indices:  make([]uint32, 0, segX*segY*6),
		Cols:     cols,
		Rows:     rows,
	}

	for row := 0; row < rows; row++ {
		v := float32(row) / float32(segY)
		y := height/2 - v*height
		for col := 0; col < cols; col++ {
			u := float32(col) / float32(segX)
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{u * width, y, 0},
				Normal:   [3]float32{0, 0, 1},
				TexCoord: [2]float32{u, v},
			})
		}
	}

	for row := 0; row < segY; row++ {
		for col := 0; col < segX; col++ {
			tl := uint32(row*cols + col)
			tr := tl + 1
			bl := tl + uint32(cols)
			br := bl + 1
			// Counter-clockwise seen from +Z
			m.Indices = append(m.Indices, tl, bl, tr, tr, bl, br)
		}
	}

	m.RecomputeBounds()
	return m
}

// RecomputeNormals rebuilds grid normals from the current positions using
// central differences across neighbouring vertices.
func (m *Mesh) RecomputeNormals() {
	if m.Cols < 2 || m.Rows < 2 {
		return
	}
	at := func(row, col int) [3]float32 {
		if col < 0 {
			col = 0
		}
		if col >= m.Cols {
			col = m.Cols - 1
		}
		if row < 0 {
			row = 0
		}
		if row >= m.Rows {
			row = m.Rows - 1
		}
		return m.Vertices[row*m.Cols+col].Position
	}
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Cols; col++ {
			dx := sub(at(row, col+1), at(row, col-1))
			// Rows run top to bottom, so the "up" tangent is row-1 minus row+1.
			dy := sub(at(row-1, col), at(row+1, col))
			m.Vertices[row*m.Cols+col].Normal = Normalize(Cross(dx, dy))
		}
	}
}
