package flip

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// TerminalBehavior selects what a page's curvature becomes once its flip ends.
type TerminalBehavior int

const (
	// SettleSmallCurl leaves a permanent curl scaled by SettleConstant.
	SettleSmallCurl TerminalBehavior = iota
	// ResetToZero flattens the page completely.
	ResetToZero
)

// String returns the config name of the behavior.
func (b TerminalBehavior) String() string {
	switch b {
	case SettleSmallCurl:
		return "settle"
	case ResetToZero:
		return "reset"
	default:
		return fmt.Sprintf("TerminalBehavior(%d)", int(b))
	}
}

// ParseTerminalBehavior converts a config string to a TerminalBehavior.
func ParseTerminalBehavior(s string) (TerminalBehavior, error) {
	switch s {
	case "", "settle":
		return SettleSmallCurl, nil
	case "reset":
		return ResetToZero, nil
	default:
		return 0, fmt.Errorf("unknown terminal behavior %q", s)
	}
}

// Config parameterizes the animator. The historical variants of the book
// differ only in these values.
type Config struct {
	// StepSize is the page rotation per tick, radians.
	StepSize float32
	// CoverStep is the cover rotation per tick, radians.
	CoverStep float32
	// Direction is the flip axis sign: -1 turns toward -π, +1 toward +π.
	Direction float32
	// CoverTarget is the magnitude of the open cover angle (π/2 or π).
	CoverTarget float32
	// BendConstant scales the arch while a page is turning.
	BendConstant float32
	// SettleConstant scales the curl left on a settled page.
	SettleConstant float32
	Terminal       TerminalBehavior
	// PageSpacing separates settled pages in depth.
	PageSpacing float32
	// TiltStep is the per-index z tilt of settled pages, radians.
	TiltStep float32
}

// DefaultConfig returns the most common variant: a 0.05 rad step, the cover
// opening a full half turn, and pages settling with a small curl.
func DefaultConfig() Config {
	return Config{
		StepSize:       0.05,
		CoverStep:      0.05,
		Direction:      -1,
		CoverTarget:    math32.Pi,
		BendConstant:   0.5,
		SettleConstant: 0.1,
		Terminal:       SettleSmallCurl,
		PageSpacing:    0.02,
		TiltStep:       0.002,
	}
}

var (
	ErrBadStep      = errors.New("step size must be positive")
	ErrBadDirection = errors.New("direction must be -1 or +1")
	ErrBadTarget    = errors.New("cover target must be in (0, π]")
)

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.StepSize <= 0 || c.CoverStep <= 0 {
		return ErrBadStep
	}
	if c.Direction != -1 && c.Direction != 1 {
		return ErrBadDirection
	}
	if c.CoverTarget <= 0 || c.CoverTarget > math32.Pi+1e-6 {
		return ErrBadTarget
	}
	if c.PageSpacing < 0 {
		return fmt.Errorf("page spacing must not be negative: %v", c.PageSpacing)
	}
	if c.Terminal != SettleSmallCurl && c.Terminal != ResetToZero {
		return fmt.Errorf("unknown terminal behavior %d", c.Terminal)
	}
	return nil
}
