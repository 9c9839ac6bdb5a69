package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/flipbook/internal/engine/mesh"
)

var vertexSize = int32(unsafe.Sizeof(mesh.Vertex{}))

// gpuMesh mirrors a mesh.Mesh in a VAO with its own VBO and EBO.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	source        *mesh.Mesh
}

// uploadMesh creates GPU buffers for m. Dynamic meshes get a DYNAMIC_DRAW
// vertex buffer so sync can rewrite it every frame.
func uploadMesh(m *mesh.Mesh, dynamic bool) *gpuMesh {
	g := &gpuMesh{source: m, indexCount: int32(len(m.Indices))}

	usage := uint32(gl.STATIC_DRAW)
	if dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(vertexSize), unsafe.Pointer(&m.Vertices[0]), usage)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 12)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexSize, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	m.ClearDirty()
	return g
}

// sync re-uploads the vertices if the source mesh changed. It reports
// whether an upload happened.
func (g *gpuMesh) sync() bool {
	if !g.source.Dirty() {
		return false
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(g.source.Vertices)*int(vertexSize), unsafe.Pointer(&g.source.Vertices[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	g.source.ClearDirty()
	return true
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
}

func (g *gpuMesh) delete() {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}
