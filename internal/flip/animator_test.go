package flip

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnimator(t *testing.T, cfg Config, n int) (*Animator, *fakeLeaf, []*fakeSheet) {
	t.Helper()
	cover, fakes, sheets := newFakeBook(n)
	a, err := New(cfg, cover, sheets)
	require.NoError(t, err)
	return a, cover, fakes
}

func TestNewRejectsBadConfig(t *testing.T) {
	cover, _, sheets := newFakeBook(2)

	cfg := DefaultConfig()
	cfg.StepSize = 0
	_, err := New(cfg, cover, sheets)
	assert.ErrorIs(t, err, ErrBadStep)

	cfg = DefaultConfig()
	cfg.Direction = 0
	_, err = New(cfg, cover, sheets)
	assert.ErrorIs(t, err, ErrBadDirection)

	cfg = DefaultConfig()
	cfg.CoverTarget = 4
	_, err = New(cfg, cover, sheets)
	assert.ErrorIs(t, err, ErrBadTarget)
}

func TestNewRejectsMisorderedPages(t *testing.T) {
	cover, fakes, _ := newFakeBook(2)
	_, err := New(DefaultConfig(), cover, []Sheet{fakes[1], fakes[0]})
	assert.Error(t, err)
}

func TestOpenCoverExactSteps(t *testing.T) {
	tests := []struct {
		name   string
		step   float32
		target float32
		steps  int
	}{
		{"half turn in 20", math32.Pi / 20, math32.Pi, 20},
		{"quarter turn in 10", math32.Pi / 20, math32.Pi / 2, 10},
		{"quarter step", 0.25, 1.5, 6},
		{"tenth step", 0.1, 3, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CoverStep = tt.step
			cfg.CoverTarget = tt.target
			a, cover, _ := newAnimator(t, cfg, 3)

			completed := false
			require.True(t, a.OpenCover(cover, func() { completed = true }))
			steps := runUntilIdle(a, 1000)

			assert.Equal(t, tt.steps, steps)
			assert.Equal(t, -tt.target, cover.Rotation())
			assert.True(t, completed)
			assert.True(t, a.State().CoverOpened)
			assert.False(t, a.State().Flipping)
		})
	}
}

func TestOpenCoverPositiveDirection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Direction = 1
	a, cover, _ := newAnimator(t, cfg, 1)
	a.Advance()
	runUntilIdle(a, 1000)
	assert.Equal(t, math32.Pi, cover.Rotation())
}

func TestOpenCoverClampsWhenStepOvershoots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoverStep = 0.1
	a, cover, _ := newAnimator(t, cfg, 1)
	a.Advance()
	steps := runUntilIdle(a, 1000)
	assert.Equal(t, 32, steps)
	assert.Equal(t, -math32.Pi, cover.Rotation())
}

func TestAdvanceIgnoredWhileCoverOpening(t *testing.T) {
	a, _, pages := newAnimator(t, DefaultConfig(), 3)
	require.True(t, a.Advance())
	assert.Equal(t, OpeningCover, a.Phase())

	a.Tick()
	before := a.State()
	for i := 0; i < 5; i++ {
		assert.False(t, a.Advance())
	}
	assert.Equal(t, before, a.State())
	assert.Equal(t, 0, a.State().CurrentPage)
	assert.Equal(t, float32(0), pages[0].Rotation())
	assert.Equal(t, 0, pages[0].dirty)
}

func TestFlipPageRequiresOpenCover(t *testing.T) {
	a, _, pages := newAnimator(t, DefaultConfig(), 2)
	assert.False(t, a.FlipPage(pages[0], nil))
	assert.Equal(t, State{}, a.State())
	assert.Equal(t, ClosedCover, a.Phase())
}

func TestFlipPageRejectsOutOfOrder(t *testing.T) {
	a, _, pages := newAnimator(t, DefaultConfig(), 3)
	a.Advance()
	runUntilIdle(a, 1000)

	assert.False(t, a.FlipPage(pages[1], nil))
	assert.True(t, a.FlipPage(pages[0], nil))
	assert.False(t, a.FlipPage(pages[0], nil), "busy")
}

func TestFlipPageRejectsForeignSheet(t *testing.T) {
	a, _, pages := newAnimator(t, DefaultConfig(), 2)
	a.Advance()
	runUntilIdle(a, 1000)

	stray := newFakeSheet(0, 6)
	assert.False(t, a.FlipPage(stray, nil))
	assert.False(t, a.State().Flipping)
	assert.Equal(t, 0, a.State().CurrentPage)
	assert.Zero(t, stray.dirty)

	assert.True(t, a.FlipPage(pages[0], nil))
}

func TestFlipPageBendsDuringFlip(t *testing.T) {
	a, _, pages := newAnimator(t, DefaultConfig(), 2)
	a.Advance()
	runUntilIdle(a, 1000)

	renders := 0
	a.RequestRender = func() { renders++ }
	require.True(t, a.Advance())
	assert.Equal(t, FlippingPage, a.Phase())

	a.Tick()
	p := pages[0]
	rot := p.Rotation()
	assert.InDelta(t, -0.05, rot, 1e-6)
	assert.Equal(t, 1, p.dirty)
	assert.Equal(t, 1, renders)

	// Spine and free edge stay flat, midline arches.
	prog := Progress(rot)
	assert.InDelta(t, 0, p.zs[0], 1e-6)
	assert.InDelta(t, 0, p.zs[20], 1e-5)
	assert.InDelta(t, 0.5*prog, p.zs[10], 1e-5)
	assert.InDelta(t, p.zs[10], p.zs[31], 1e-6, "both rows bend alike")
}

func TestFlipPageTerminalSettle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TiltStep = 0.01
	a, _, pages := newAnimator(t, cfg, 4)
	a.Advance()
	runUntilIdle(a, 1000)

	for i := 0; i < 2; i++ {
		a.Advance()
		runUntilIdle(a, 1000)
	}

	p := pages[1]
	assert.True(t, p.Flipped())
	assert.Equal(t, -math32.Pi, p.Rotation())
	assert.InDelta(t, 0.1, p.zs[10], 1e-5)
	assert.InDelta(t, 0, p.zs[0], 1e-6)
	assert.InDelta(t, -2*0.02, p.restZ, 1e-6)
	assert.InDelta(t, -0.01, p.tilt, 1e-6)
	assert.Equal(t, 2, a.State().CurrentPage)
}

func TestFlipPageTerminalReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Terminal = ResetToZero
	a, _, pages := newAnimator(t, cfg, 1)
	a.Advance()
	runUntilIdle(a, 1000)
	a.Advance()
	runUntilIdle(a, 1000)

	for i, z := range pages[0].zs {
		assert.Equal(t, float32(0), z, "vertex %d", i)
	}
}

func TestFlipPageCompletionCallback(t *testing.T) {
	a, _, pages := newAnimator(t, DefaultConfig(), 2)
	a.Advance()
	runUntilIdle(a, 1000)

	var flipped []int
	a.OnPageFlipped = func(i int) { flipped = append(flipped, i) }
	called := false
	require.True(t, a.FlipPage(pages[0], func() { called = true }))
	runUntilIdle(a, 1000)
	assert.True(t, called)
	assert.Equal(t, []int{0}, flipped)
}

func TestPagesFlipInOrder(t *testing.T) {
	a, _, pages := newAnimator(t, DefaultConfig(), 5)
	a.Advance()
	runUntilIdle(a, 1000)

	var order []int
	a.OnPageFlipped = func(i int) { order = append(order, i) }
	for i := 0; i < 5; i++ {
		require.True(t, a.Advance())
		for j := i + 1; j < 5; j++ {
			assert.False(t, pages[j].Flipped())
		}
		runUntilIdle(a, 1000)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFullBookScenario(t *testing.T) {
	a, cover, pages := newAnimator(t, DefaultConfig(), 12)

	coverOpened := 0
	a.OnCoverOpened = func() { coverOpened++ }

	require.True(t, a.Advance())
	runUntilIdle(a, 1000)
	assert.Equal(t, 1, coverOpened)
	assert.Equal(t, PageIdle, a.Phase())

	for i := 0; i < 12; i++ {
		require.True(t, a.Advance(), "page %d", i)
		runUntilIdle(a, 1000)
	}

	st := a.State()
	assert.Equal(t, 12, st.CurrentPage)
	assert.Equal(t, AllFlipped, a.Phase())

	assert.False(t, a.Advance())
	a.Tick()
	assert.Equal(t, st, a.State())
	assert.Equal(t, -math32.Pi, cover.Rotation())

	prev := float32(-1e9)
	for _, p := range pages {
		assert.True(t, p.Flipped())
		assert.Greater(t, p.restZ, prev)
		prev = p.restZ
	}
}

func TestChainedAdvanceFromCallback(t *testing.T) {
	a, _, _ := newAnimator(t, DefaultConfig(), 3)
	a.OnCoverOpened = func() { a.Advance() }
	a.Advance()
	runUntilIdle(a, 10000)
	// Cover open immediately chained into the first page flip.
	assert.Equal(t, 1, a.State().CurrentPage)
}

func TestResetOnlyWhenIdle(t *testing.T) {
	a, cover, pages := newAnimator(t, DefaultConfig(), 2)
	a.Advance()
	a.Tick()
	assert.False(t, a.Reset())

	runUntilIdle(a, 1000)
	a.Advance()
	runUntilIdle(a, 1000)
	require.True(t, pages[0].Flipped())

	assert.True(t, a.Reset())
	assert.Equal(t, State{}, a.State())
	assert.Equal(t, ClosedCover, a.Phase())
	assert.Equal(t, float32(0), cover.Rotation())
	for _, p := range pages {
		assert.False(t, p.Flipped())
		assert.Equal(t, float32(0), p.Rotation())
		assert.Equal(t, float32(0), p.restZ)
		assert.Equal(t, float32(0), p.zs[10])
	}
}

func TestTickIdleIsNoop(t *testing.T) {
	a, _, _ := newAnimator(t, DefaultConfig(), 1)
	renders := 0
	a.RequestRender = func() { renders++ }
	a.Tick()
	assert.Equal(t, 0, renders)
	assert.Equal(t, State{}, a.State())
}

func TestTerminalBehaviorParse(t *testing.T) {
	b, err := ParseTerminalBehavior("reset")
	require.NoError(t, err)
	assert.Equal(t, ResetToZero, b)

	b, err = ParseTerminalBehavior("")
	require.NoError(t, err)
	assert.Equal(t, SettleSmallCurl, b)

	_, err = ParseTerminalBehavior("curl")
	assert.Error(t, err)
	assert.Equal(t, "settle", SettleSmallCurl.String())
}
