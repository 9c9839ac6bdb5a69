package config

import (
	"path/filepath"

	"github.com/Faultbox/flipbook/internal/book"
	"github.com/Faultbox/flipbook/internal/flip"
)

// Flip converts the animation section to a validated animator config.
func (a AnimationConfig) Flip() (flip.Config, error) {
	terminal, err := flip.ParseTerminalBehavior(a.Terminal)
	if err != nil {
		return flip.Config{}, err
	}
	cfg := flip.Config{
		StepSize:       a.StepSize,
		CoverStep:      a.CoverStep,
		Direction:      float32(a.Direction),
		CoverTarget:    a.CoverTarget,
		BendConstant:   a.BendConstant,
		SettleConstant: a.SettleConstant,
		Terminal:       terminal,
		PageSpacing:    a.PageSpacing,
		TiltStep:       a.TiltStep,
	}
	return cfg, cfg.Validate()
}

// Dimensions returns the book layout for pages turned by flipCfg. Settled
// pages take its spacing and, when they keep a curl, its depth.
func (b BookConfig) Dimensions(flipCfg flip.Config) book.Dimensions {
	var settle float32
	if flipCfg.Terminal == flip.SettleSmallCurl {
		settle = flipCfg.SettleConstant
	}
	return book.Dimensions{
		Width:          b.Width,
		Height:         b.Height,
		PageCount:      b.PageCount,
		CoverThickness: b.CoverThickness,
		PageThickness:  b.PageThickness,
		Segments:       b.Segments,
		PageSpacing:    flipCfg.PageSpacing,
		SettleDepth:    settle,
	}
}

// Payloads returns the content of every page. Explicit page photos are
// resolved against PhotoDir; pages without one take the next entry of
// photos in order.
func (b BookConfig) Payloads(photos []string) []book.Payload {
	payloads := make([]book.Payload, b.PageCount)
	next := 0
	for i := range payloads {
		if i < len(b.Pages) {
			payloads[i].Caption = b.Pages[i].Caption
			if photo := b.Pages[i].Photo; photo != "" {
				if !filepath.IsAbs(photo) && b.PhotoDir != "" {
					photo = filepath.Join(b.PhotoDir, photo)
				}
				payloads[i].Photo = photo
				continue
			}
		}
		if next < len(photos) {
			payloads[i].Photo = photos[next]
			next++
		}
	}
	return payloads
}
