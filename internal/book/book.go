// Package book builds the flip book scene model: two covers and a stack of
// pages, each pivoting about the spine at x = 0.
package book

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/flipbook/internal/engine/mesh"
	"github.com/Faultbox/flipbook/internal/flip"
	"github.com/Faultbox/flipbook/pkg/math"
)

// Dimensions describes the physical layout of the book.
type Dimensions struct {
	Width          float32
	Height         float32
	PageCount      int
	CoverThickness float32
	PageThickness  float32
	// Segments is the number of grid columns across a page.
	Segments int
	// PageSpacing is the depth between settled pages.
	PageSpacing float32
	// SettleDepth is the curl a page keeps once turned. Turned pages face
	// down, so the pile is raised by it to keep the curl off the cover.
	SettleDepth float32
}

// DefaultDimensions returns the 6x8 twelve-page book.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Width:          6,
		Height:         8,
		PageCount:      12,
		CoverThickness: 0.2,
		PageThickness:  0.02,
		Segments:       20,
		PageSpacing:    0.02,
		SettleDepth:    0.1,
	}
}

// coverMargin is how far a cover overhangs the pages on every side.
const coverMargin = 0.1

// Payload is optional content shown on a page.
type Payload struct {
	Photo   string
	Caption string
}

// Book is the full scene model.
type Book struct {
	dims  Dimensions
	Front *Cover
	Back  *Cover
	Pages []*Page

	// flippedBase is the z of the topmost settled page on the left pile.
	flippedBase float32
}

// New builds a book. payloads may be shorter than PageCount.
func New(dims Dimensions, payloads []Payload) (*Book, error) {
	if dims.PageCount < 0 {
		return nil, fmt.Errorf("page count must not be negative: %d", dims.PageCount)
	}
	if dims.Width <= 0 || dims.Height <= 0 {
		return nil, fmt.Errorf("book dimensions must be positive: %vx%v", dims.Width, dims.Height)
	}
	if dims.Segments < 1 {
		dims.Segments = 1
	}

	stack := float32(dims.PageCount) * dims.PageThickness
	frontZ := stack/2 + dims.CoverThickness/2
	backZ := -stack/2 - dims.CoverThickness/2

	b := &Book{
		dims:        dims,
		Front:       newCover(dims, frontZ),
		Back:        newCover(dims, backZ),
		Pages:       make([]*Page, dims.PageCount),
		flippedBase: frontZ + dims.CoverThickness/2 + float32(dims.PageCount)*dims.PageSpacing + dims.SettleDepth,
	}

	// Page 0 is the top of the stack, right under the front cover.
	top := stack/2 - dims.PageThickness/2
	for i := range b.Pages {
		p := &Page{
			index: i,
			width: dims.Width,
			mesh:  mesh.NewGrid(dims.Width, dims.Height, dims.Segments, 1),
			baseZ: top - float32(i)*dims.PageThickness,
		}
		p.landingZ = b.flippedBase + flip.RestingDepth(i, dims.PageCount, dims.PageSpacing)
		p.flatZ = b.flippedBase
		if i < len(payloads) {
			p.Payload = payloads[i]
		}
		b.Pages[i] = p
	}
	return b, nil
}

// Dimensions returns the layout the book was built with.
func (b *Book) Dimensions() Dimensions {
	return b.dims
}

// Sheets returns the pages as flip sheets, in index order.
func (b *Book) Sheets() []flip.Sheet {
	sheets := make([]flip.Sheet, len(b.Pages))
	for i, p := range b.Pages {
		sheets[i] = p
	}
	return sheets
}

// Bounds returns a box enclosing the book whether closed or fully open.
func (b *Book) Bounds() mesh.Bounds {
	w := b.dims.Width + coverMargin
	h := (b.dims.Height + 2*coverMargin) / 2
	return mesh.Bounds{
		Min: [3]float32{-w, -h, b.Back.z - b.dims.CoverThickness/2},
		Max: [3]float32{w, h, b.flippedBase + b.dims.PageThickness},
	}
}

// Caption returns the caption of the page facing the reader: the next page
// to turn, or the last page once all are turned.
func (b *Book) Caption(currentPage int) string {
	if len(b.Pages) == 0 {
		return ""
	}
	if currentPage >= len(b.Pages) {
		currentPage = len(b.Pages) - 1
	}
	if currentPage < 0 {
		currentPage = 0
	}
	return b.Pages[currentPage].Payload.Caption
}

// Cover is a rigid board pivoting about the spine.
type Cover struct {
	rotation float32
	z        float32
	mesh     *mesh.Mesh
}

func newCover(dims Dimensions, z float32) *Cover {
	h := dims.Height/2 + coverMargin
	t := dims.CoverThickness / 2
	return &Cover{
		z: z,
		mesh: mesh.NewBox(
			[3]float32{-coverMargin, -h, -t},
			[3]float32{dims.Width + coverMargin, h, t},
		),
	}
}

// Rotation returns the cover angle about the spine.
func (c *Cover) Rotation() float32 { return c.rotation }

// SetRotation sets the cover angle about the spine.
func (c *Cover) SetRotation(angle float32) { c.rotation = angle }

// Mesh returns the cover geometry in cover-local space.
func (c *Cover) Mesh() *mesh.Mesh { return c.mesh }

// ModelMatrix places the cover in the scene.
func (c *Cover) ModelMatrix() math.Mat4 {
	return math.Translate(0, 0, c.z).Mul(math.RotateY(c.rotation))
}

// Page is one flippable leaf.
type Page struct {
	index    int
	width    float32
	mesh     *mesh.Mesh
	rotation float32
	flipped  bool

	// baseZ is the depth in the closed stack, landingZ the depth once
	// settled and flatZ the reference the resting offset is measured from.
	baseZ, landingZ, flatZ float32
	restZ, tilt            float32

	Payload Payload
}

var _ flip.Sheet = (*Page)(nil)

// Index returns the page's position in the book.
func (p *Page) Index() int { return p.index }

// Rotation returns the page angle about the spine.
func (p *Page) Rotation() float32 { return p.rotation }

// SetRotation sets the page angle about the spine.
func (p *Page) SetRotation(angle float32) { p.rotation = angle }

// Width returns the page width.
func (p *Page) Width() float32 { return p.width }

// VertexCount returns the number of grid vertices.
func (p *Page) VertexCount() int { return len(p.mesh.Vertices) }

// VertexX returns the distance of vertex i from the spine.
func (p *Page) VertexX(i int) float32 { return p.mesh.Vertices[i].Position[0] }

// SetVertexZ sets the out-of-plane displacement of vertex i.
func (p *Page) SetVertexZ(i int, z float32) { p.mesh.Vertices[i].Position[2] = z }

// MarkDirty refreshes normals and flags the grid for re-upload.
func (p *Page) MarkDirty() {
	p.mesh.RecomputeNormals()
	p.mesh.MarkDirty()
}

// SetResting records the settled depth offset and tilt.
func (p *Page) SetResting(z, tilt float32) {
	p.restZ = z
	p.tilt = tilt
}

// Flipped reports whether the page completed its flip.
func (p *Page) Flipped() bool { return p.flipped }

// SetFlipped marks the page flipped or not.
func (p *Page) SetFlipped(flipped bool) { p.flipped = flipped }

// Mesh returns the page grid in page-local space.
func (p *Page) Mesh() *mesh.Mesh { return p.mesh }

// Depth returns the page's current z. A turning page rises from its slot in
// the stack toward its landing slot in proportion to how far it has turned,
// so it never cuts through pages settled before it.
func (p *Page) Depth() float32 {
	if p.flipped {
		return p.flatZ + p.restZ
	}
	t := math32.Abs(p.rotation) / math32.Pi
	if t > 1 {
		t = 1
	}
	return p.baseZ + (p.landingZ-p.baseZ)*t
}

// ModelMatrix places the page in the scene.
func (p *Page) ModelMatrix() math.Mat4 {
	return math.Translate(0, 0, p.Depth()).
		Mul(math.RotateY(p.rotation)).
		Mul(math.RotateZ(p.tilt))
}
