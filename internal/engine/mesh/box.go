package mesh

// NewBox builds a box spanning min to max with one flat-shaded face per side.
func NewBox(min, max [3]float32) *Mesh {
	m := &Mesh{}

	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	x0, y0, z0 := min[0], min[1], min[2]
	x1, y1, z1 := max[0], max[1], max[2]

	// Corners are counter-clockwise seen from outside.
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal, TexCoord: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	m.RecomputeBounds()
	return m
}
