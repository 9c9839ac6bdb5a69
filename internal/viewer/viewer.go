// Package viewer runs the flip book: it owns the window, the render loop and
// the mapping from input to animator signals.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/flipbook/internal/book"
	"github.com/Faultbox/flipbook/internal/config"
	"github.com/Faultbox/flipbook/internal/engine/audio"
	"github.com/Faultbox/flipbook/internal/engine/camera"
	"github.com/Faultbox/flipbook/internal/engine/debug"
	"github.com/Faultbox/flipbook/internal/engine/input"
	"github.com/Faultbox/flipbook/internal/engine/renderer"
	"github.com/Faultbox/flipbook/internal/engine/window"
	"github.com/Faultbox/flipbook/internal/flip"
	"github.com/Faultbox/flipbook/internal/logger"
	"github.com/Faultbox/flipbook/pkg/math"
)

const title = "Flipbook"

// Viewer is the running application.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	capture  *debug.ScreenshotCapture
	audio    *audio.Manager // nil when disabled or unavailable

	book     *book.Book
	animator *flip.Animator

	// needsRender is set by the animator and by input that moves the view.
	needsRender bool
	// screenshot is a pending F12 press, served after the next draw.
	screenshot bool

	// folders receives the result of the photo folder picker.
	folders  chan folderPick
	choosing bool
}

// New creates the window, GL state and book described by cfg.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("pages", cfg.Book.PageCount),
	)

	v := &Viewer{
		cfg:         cfg,
		input:       input.New(),
		capture:     debug.NewScreenshotCapture(cfg.Capture.Dir, cfg.Capture.Prefix),
		folders:     make(chan folderPick, 1),
		needsRender: true,
	}

	flipCfg, err := cfg.Animation.Flip()
	if err != nil {
		return nil, fmt.Errorf("animation config: %w", err)
	}

	// Window first: it creates the OpenGL context
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		Background: config.RGB(cfg.Scene.Background, [3]float32{0.94, 0.9, 0.82}),
		CoverColor: config.RGB(cfg.Scene.CoverColor, [3]float32{0.55, 0.37, 0.23}),
		PageColor:  config.RGB(cfg.Scene.PageColor, [3]float32{1, 1, 1}),
		LightPos:   cfg.Scene.LightPosition,
		Ambient:    cfg.Scene.Ambient,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.buildBook(flipCfg, v.photoList(cfg.Book.PhotoDir)); err != nil {
		v.Close()
		return nil, err
	}

	v.camera = camera.NewOrbitCamera()
	v.camera.FOV = cfg.Scene.FOV * math32.Pi / 180
	if cfg.Scene.CameraPos == ([3]float32{}) {
		bounds := v.book.Bounds()
		v.camera.FitToBounds(bounds.Min, bounds.Max)
	} else {
		v.camera.LookFrom(math.Vec3{
			X: cfg.Scene.CameraPos[0],
			Y: cfg.Scene.CameraPos[1],
			Z: cfg.Scene.CameraPos[2],
		}, math.Vec3{})
	}

	if cfg.Audio.Enabled {
		v.audio = newAudio(cfg.Audio)
	}

	v.updateTitle()
	logger.Info("viewer initialized successfully")
	return v, nil
}

// buildBook creates the book and its animator and uploads both to the GPU.
func (v *Viewer) buildBook(flipCfg flip.Config, photos []string) error {
	b, err := book.New(v.cfg.Book.Dimensions(flipCfg), v.cfg.Book.Payloads(photos))
	if err != nil {
		return fmt.Errorf("failed to build book: %w", err)
	}

	a, err := flip.New(flipCfg, b.Front, b.Sheets())
	if err != nil {
		return fmt.Errorf("failed to create animator: %w", err)
	}
	a.RequestRender = func() { v.needsRender = true }
	a.OnCoverOpened = func() {
		logger.Info("cover opened")
		v.updateTitle()
	}
	a.OnPageFlipped = func(index int) {
		logger.Info("page flipped", zap.Int("page", index))
		v.updateTitle()
	}

	v.book = b
	v.animator = a
	v.renderer.Load(b)
	v.loadPhotos()
	v.needsRender = true
	return nil
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		frameStart := time.Now()

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents(v.input.Events())
		v.pollFolderPick()

		// 2. Step the active animation once per frame
		v.animator.Tick()

		// 3. Render and present
		if v.needsRender || v.screenshot {
			v.renderer.Draw(v.book, v.camera)
			if v.screenshot {
				v.takeScreenshot()
			}
			v.window.SwapBuffers()
			v.needsRender = false
			frameCount++
		} else {
			// Nothing changed; don't spin
			time.Sleep(5 * time.Millisecond)
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}

		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("frames", frameCount), zap.Stringer("phase", v.animator.Phase()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.audio != nil {
		v.audio.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) takeScreenshot() {
	v.screenshot = false
	w, h := v.window.DrawableSize()
	path, err := v.capture.CaptureFromPixels(debug.ReadFramebuffer(w, h), w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) updateTitle() {
	v.window.SetTitle(windowTitle(v.animator.Phase(), v.animator.State().CurrentPage, v.animator.PageCount(), v.book.Caption(v.animator.State().CurrentPage)))
}

// windowTitle describes the book's position for the title bar.
func windowTitle(phase flip.Phase, current, total int, caption string) string {
	var s string
	switch phase {
	case flip.ClosedCover, flip.OpeningCover:
		s = title + " - closed"
	case flip.AllFlipped:
		s = title + " - the end"
	default:
		s = fmt.Sprintf("%s - page %d/%d", title, current+1, total)
	}
	if caption != "" && phase != flip.ClosedCover {
		s += " - " + caption
	}
	return s
}
