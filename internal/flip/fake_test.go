package flip

// fakeLeaf and fakeSheet stand in for scene nodes.
type fakeLeaf struct {
	rot float32
}

func (l *fakeLeaf) Rotation() float32      { return l.rot }
func (l *fakeLeaf) SetRotation(a float32) { l.rot = a }

type fakeSheet struct {
	fakeLeaf
	index   int
	width   float32
	xs      []float32
	zs      []float32
	dirty   int
	restZ   float32
	tilt    float32
	flipped bool
}

// newFakeSheet builds a 21x2 grid, the 20-segment plane the book uses.
func newFakeSheet(index int, width float32) *fakeSheet {
	s := &fakeSheet{index: index, width: width}
	for row := 0; row < 2; row++ {
		for col := 0; col <= 20; col++ {
			s.xs = append(s.xs, width*float32(col)/20)
		}
	}
	s.zs = make([]float32, len(s.xs))
	return s
}

func (s *fakeSheet) Index() int                  { return s.index }
func (s *fakeSheet) Width() float32              { return s.width }
func (s *fakeSheet) VertexCount() int            { return len(s.xs) }
func (s *fakeSheet) VertexX(i int) float32       { return s.xs[i] }
func (s *fakeSheet) SetVertexZ(i int, z float32) { s.zs[i] = z }
func (s *fakeSheet) MarkDirty()                  { s.dirty++ }
func (s *fakeSheet) SetResting(z, tilt float32)  { s.restZ, s.tilt = z, tilt }
func (s *fakeSheet) Flipped() bool               { return s.flipped }
func (s *fakeSheet) SetFlipped(f bool)           { s.flipped = f }

func newFakeBook(n int) (*fakeLeaf, []*fakeSheet, []Sheet) {
	cover := &fakeLeaf{}
	fakes := make([]*fakeSheet, n)
	sheets := make([]Sheet, n)
	for i := range fakes {
		fakes[i] = newFakeSheet(i, 6)
		sheets[i] = fakes[i]
	}
	return cover, fakes, sheets
}

// runUntilIdle ticks until the animator is idle and returns the tick count.
func runUntilIdle(a *Animator, limit int) int {
	n := 0
	for a.Busy() && n < limit {
		a.Tick()
		n++
	}
	return n
}
