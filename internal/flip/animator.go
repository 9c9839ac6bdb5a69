package flip

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/flipbook/internal/logger"
)

// Phase is the position of the animator in its state machine:
// ClosedCover → OpeningCover → PageIdle(0) → FlippingPage(0) → PageIdle(1) → … → AllFlipped.
type Phase int

const (
	ClosedCover Phase = iota
	OpeningCover
	PageIdle
	FlippingPage
	AllFlipped
)

func (p Phase) String() string {
	switch p {
	case ClosedCover:
		return "ClosedCover"
	case OpeningCover:
		return "OpeningCover"
	case PageIdle:
		return "PageIdle"
	case FlippingPage:
		return "FlippingPage"
	case AllFlipped:
		return "AllFlipped"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the animator's mutable state.
type State struct {
	// CurrentPage is the index of the next page eligible to flip.
	CurrentPage int
	CoverOpened bool
	// Flipping is true while a cover-open or page-flip is in progress.
	Flipping bool
}

// animation is one in-progress transition. step advances it by one tick
// and reports whether it finished.
type animation interface {
	step() bool
}

// Animator owns the open/flip state machine of one book.
type Animator struct {
	cfg    Config
	cover  Leaf
	pages  []Sheet
	state  State
	active animation

	// RequestRender is called after every animation step.
	RequestRender func()
	// OnCoverOpened and OnPageFlipped fire after the matching transition
	// completes, after any per-call completion callback.
	OnCoverOpened func()
	OnPageFlipped func(index int)
}

// New creates an animator for the given cover and pages.
// Pages must be ordered by index.
func New(cfg Config, cover Leaf, pages []Sheet) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flip config: %w", err)
	}
	if cover == nil {
		return nil, fmt.Errorf("flip: nil cover")
	}
	for i, p := range pages {
		if p.Index() != i {
			return nil, fmt.Errorf("flip: page at position %d has index %d", i, p.Index())
		}
	}
	return &Animator{
		cfg:   cfg,
		cover: cover,
		pages: pages,
	}, nil
}

// Config returns the animator configuration.
func (a *Animator) Config() Config {
	return a.cfg
}

// State returns a copy of the current state.
func (a *Animator) State() State {
	return a.state
}

// PageCount returns the number of pages.
func (a *Animator) PageCount() int {
	return len(a.pages)
}

// Phase derives the state-machine position from the state.
func (a *Animator) Phase() Phase {
	switch {
	case !a.state.CoverOpened && a.state.Flipping:
		return OpeningCover
	case !a.state.CoverOpened:
		return ClosedCover
	case a.state.Flipping:
		return FlippingPage
	case a.state.CurrentPage >= len(a.pages):
		return AllFlipped
	default:
		return PageIdle
	}
}

// Advance performs exactly one state transition if the animator is idle:
// it starts opening the cover, or starts flipping the current page.
// While an animation runs, or once every page is flipped, it does nothing.
// It reports whether a transition started.
func (a *Animator) Advance() bool {
	if a.state.Flipping {
		return false
	}
	if !a.state.CoverOpened {
		return a.OpenCover(a.cover, nil)
	}
	if a.state.CurrentPage >= len(a.pages) {
		return false
	}
	return a.FlipPage(a.pages[a.state.CurrentPage], nil)
}

// OpenCover starts the cover-open animation. It is a no-op, returning false,
// if another animation is running or the cover is already open.
func (a *Animator) OpenCover(cover Leaf, onComplete func()) bool {
	if a.state.Flipping || a.state.CoverOpened {
		return false
	}
	a.state.Flipping = true
	a.active = &coverOpen{
		a:          a,
		leaf:       cover,
		start:      cover.Rotation(),
		onComplete: onComplete,
	}
	logger.Debug("opening cover", zap.Float32("target", a.cfg.Direction*a.cfg.CoverTarget))
	return true
}

// FlipPage starts the flip of page. It is a no-op, returning false, unless
// the cover is open, nothing is animating, the page is not yet flipped and
// it is the next page in order of the pages the animator was built with.
func (a *Animator) FlipPage(page Sheet, onComplete func()) bool {
	if a.state.Flipping || !a.state.CoverOpened {
		return false
	}
	if page.Flipped() || page.Index() != a.state.CurrentPage {
		return false
	}
	// Only the animator's own next page may turn.
	if a.state.CurrentPage >= len(a.pages) || page != a.pages[a.state.CurrentPage] {
		return false
	}
	a.state.Flipping = true
	a.active = &pageFlip{
		a:          a,
		page:       page,
		start:      page.Rotation(),
		onComplete: onComplete,
	}
	logger.Debug("flipping page", zap.Int("page", page.Index()))
	return true
}

// Tick advances the running animation by one step. It does nothing when idle.
func (a *Animator) Tick() {
	if a.active == nil {
		return
	}
	cur := a.active
	done := cur.step()
	if done && a.active == cur {
		a.active = nil
	}
	if a.RequestRender != nil {
		a.RequestRender()
	}
}

// Busy reports whether an animation is in progress.
func (a *Animator) Busy() bool {
	return a.state.Flipping
}

// Reset closes the book: cover shut, every page back on the right-hand stack,
// flat and unflipped. It only acts when idle and reports whether it did.
func (a *Animator) Reset() bool {
	if a.state.Flipping {
		return false
	}
	a.cover.SetRotation(0)
	for _, p := range a.pages {
		p.SetRotation(0)
		p.SetResting(0, 0)
		p.SetFlipped(false)
		applyBend(p, 0, 0)
	}
	a.state = State{}
	if a.RequestRender != nil {
		a.RequestRender()
	}
	logger.Debug("book reset")
	return true
}

// traveled returns how far a leaf has turned after n steps of size step,
// capped at limit. Computing from the step count keeps the result exact
// when limit is a multiple of step.
func traveled(n int, step, limit float32) (float32, bool) {
	d := float64(n) * float64(step)
	if d >= float64(limit)-float64(step)*1e-3 {
		return limit, true
	}
	return float32(d), false
}

type coverOpen struct {
	a          *Animator
	leaf       Leaf
	start      float32
	n          int
	onComplete func()
}

func (c *coverOpen) step() bool {
	cfg := c.a.cfg
	c.n++
	remaining := cfg.CoverTarget - math32.Abs(c.start)
	d, done := traveled(c.n, cfg.CoverStep, remaining)
	if !done {
		c.leaf.SetRotation(c.start + cfg.Direction*d)
		return false
	}
	c.leaf.SetRotation(cfg.Direction * cfg.CoverTarget)
	c.a.state.CoverOpened = true
	c.a.state.Flipping = false
	logger.Debug("cover opened", zap.Int("steps", c.n))
	if c.onComplete != nil {
		c.onComplete()
	}
	if c.a.OnCoverOpened != nil {
		c.a.OnCoverOpened()
	}
	return true
}

type pageFlip struct {
	a          *Animator
	page       Sheet
	start      float32
	n          int
	onComplete func()
}

func (f *pageFlip) step() bool {
	a := f.a
	cfg := a.cfg
	f.n++
	remaining := math32.Pi - math32.Abs(f.start)
	d, done := traveled(f.n, cfg.StepSize, remaining)
	if !done {
		rot := f.start + cfg.Direction*d
		f.page.SetRotation(rot)
		applyBend(f.page, Progress(rot), cfg.BendConstant)
		return false
	}

	idx := f.page.Index()
	f.page.SetRotation(cfg.Direction * math32.Pi)
	switch cfg.Terminal {
	case ResetToZero:
		applyBend(f.page, 0, 0)
	default:
		applyBend(f.page, 1, cfg.SettleConstant)
	}
	f.page.SetResting(RestingDepth(idx, len(a.pages), cfg.PageSpacing), RestingTilt(idx, cfg.TiltStep))
	f.page.SetFlipped(true)

	a.state.CurrentPage++
	a.state.Flipping = false
	logger.Debug("page flipped", zap.Int("page", idx), zap.Int("steps", f.n))
	if f.onComplete != nil {
		f.onComplete()
	}
	if a.OnPageFlipped != nil {
		a.OnPageFlipped(idx)
	}
	return true
}
