// Package flip implements the page-flip state machine and the paper-bend
// vertex model of the book.
//
// The animator never touches rendering. It drives anything that looks like a
// pivoted leaf (a cover) or a pivoted leaf with a planar vertex grid (a page),
// one step per Tick, and the host decides when to draw.
package flip

// Leaf is a pivoted object with a single rotation about the spine.
type Leaf interface {
	Rotation() float32
	SetRotation(angle float32)
}

// Sheet is a page: a leaf whose mesh exposes a deformable planar grid.
//
// VertexX is measured from the spine, so VertexX/Width lies in [0, 1].
type Sheet interface {
	Leaf
	Index() int
	Width() float32
	VertexCount() int
	VertexX(i int) float32
	SetVertexZ(i int, z float32)
	MarkDirty()
	SetResting(z, tilt float32)
	Flipped() bool
	SetFlipped(flipped bool)
}
