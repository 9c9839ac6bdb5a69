package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/flipbook/internal/engine/input"
	"github.com/Faultbox/flipbook/internal/engine/picking"
	"github.com/Faultbox/flipbook/internal/flip"
	"github.com/Faultbox/flipbook/internal/logger"
)

func (v *Viewer) handleEvents(events []input.Event) {
	for _, e := range events {
		switch e.Type {
		case input.EventWindowResize:
			w, h := v.window.DrawableSize()
			v.renderer.Resize(w, h)
			v.needsRender = true

		case input.EventKeyDown:
			if e.Repeat {
				continue
			}
			v.handleKey(e.Key)

		case input.EventMouseDown:
			if e.Button == input.ButtonLeft && v.clickHitsBook(e.MouseX, e.MouseY) {
				v.advance()
			}

		case input.EventMouseMove:
			if e.Dragging(input.ButtonRight) {
				v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
				v.needsRender = true
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(e.WheelY)
			v.needsRender = true
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_SPACE, sdl.SCANCODE_RIGHT:
		v.advance()
	case sdl.SCANCODE_R:
		if v.animator.Reset() {
			v.updateTitle()
		}
	case sdl.SCANCODE_O:
		v.chooseFolder()
	case sdl.SCANCODE_F12:
		v.screenshot = true
	}
}

// advance forwards the signal to the animator and plays the matching sound
// when a transition starts.
func (v *Viewer) advance() {
	before := v.animator.Phase()
	if !v.animator.Advance() {
		logger.Debug("advance ignored", zap.Stringer("phase", before))
		return
	}
	v.updateTitle()
	if v.audio == nil {
		return
	}

	var err error
	if before == flip.ClosedCover {
		err = v.audio.PlayCover()
	} else {
		err = v.audio.PlayFlip()
	}
	if err != nil {
		logger.Debug("sound skipped", zap.Error(err))
	}
}

// clickHitsBook reports whether a click at window coordinates should count.
// Without RequireHit every click counts.
func (v *Viewer) clickHitsBook(x, y int) bool {
	if !v.cfg.Input.RequireHit {
		return true
	}
	w, h := v.window.GetSize()
	inv := v.camera.ViewProjection(v.renderer.Aspect()).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), inv)

	bounds := v.book.Bounds()
	_, hit := ray.IntersectAABB(picking.NewAABB(bounds.Min, bounds.Max))
	return hit
}
