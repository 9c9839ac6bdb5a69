// Package renderer draws the book with OpenGL.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/flipbook/internal/book"
	"github.com/Faultbox/flipbook/internal/engine/camera"
	"github.com/Faultbox/flipbook/internal/engine/renderer/shaders"
	"github.com/Faultbox/flipbook/internal/engine/shader"
	"github.com/Faultbox/flipbook/internal/engine/texture"
	"github.com/Faultbox/flipbook/internal/logger"
	"github.com/Faultbox/flipbook/pkg/math"
)

// photoInset is the paper margin around a page photo, in texture space.
const photoInset = 0.06

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	Background [3]float32
	CoverColor [3]float32
	PageColor  [3]float32
	LightPos   [3]float32
	Ambient    float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	front, back *gpuMesh
	pages       []*gpuMesh
	photos      []uint32

	// uploads counts vertex re-uploads, for debug logging.
	uploads int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	// Pages are single sheets seen from both sides
	gl.Disable(gl.CULL_FACE)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	r.program, err = shader.NewProgram(shaders.BookVertexShader, shaders.BookFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create book shader: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID))

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Load uploads the book geometry. Call it again after rebuilding the book.
func (r *Renderer) Load(b *book.Book) {
	r.releaseMeshes()

	r.front = uploadMesh(b.Front.Mesh(), false)
	r.back = uploadMesh(b.Back.Mesh(), false)
	r.pages = make([]*gpuMesh, len(b.Pages))
	for i, p := range b.Pages {
		r.pages[i] = uploadMesh(p.Mesh(), true)
	}

	r.releasePhotos()
	r.photos = make([]uint32, len(b.Pages))

	logger.Debug("book uploaded", zap.Int("pages", len(b.Pages)))
}

// SetPhoto replaces the photo shown on a page. A nil image clears it.
func (r *Renderer) SetPhoto(page int, img *image.RGBA) {
	if page < 0 || page >= len(r.photos) {
		return
	}
	texture.Delete(r.photos[page])
	r.photos[page] = 0
	if img != nil && len(img.Pix) > 0 {
		r.photos[page] = texture.Upload(img)
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("vertex_uploads", r.uploads))
	r.releaseMeshes()
	r.releasePhotos()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize. width and height are in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Draw renders one frame of the book. Pages whose grids changed since the
// last frame are re-uploaded first.
func (r *Renderer) Draw(b *book.Book, cam *camera.OrbitCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.front == nil {
		return
	}

	p := r.program
	p.Use()
	p.SetMat4("uViewProj", cam.ViewProjection(r.Aspect()))
	p.SetVec3("uLightPos", r.config.LightPos)
	p.SetVec3("uViewPos", cam.Position().Array())
	p.SetFloat("uAmbient", r.config.Ambient)
	p.SetFloat("uInset", photoInset)
	p.SetInt("uPhoto", 0)

	p.SetInt("uHasPhoto", 0)
	p.SetVec3("uColor", r.config.CoverColor)
	r.drawLeaf(r.back, b.Back.ModelMatrix())
	r.drawLeaf(r.front, b.Front.ModelMatrix())

	p.SetVec3("uColor", r.config.PageColor)
	gl.ActiveTexture(gl.TEXTURE0)
	for i, page := range b.Pages {
		if i >= len(r.pages) {
			break
		}
		if r.pages[i].sync() {
			r.uploads++
		}
		if tex := r.photos[i]; tex != 0 {
			gl.BindTexture(gl.TEXTURE_2D, tex)
			p.SetInt("uHasPhoto", 1)
		} else {
			p.SetInt("uHasPhoto", 0)
		}
		r.drawLeaf(r.pages[i], page.ModelMatrix())
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *Renderer) drawLeaf(g *gpuMesh, model math.Mat4) {
	r.program.SetMat4("uModel", model)
	g.draw()
}

func (r *Renderer) releaseMeshes() {
	for _, g := range append([]*gpuMesh{r.front, r.back}, r.pages...) {
		if g != nil {
			g.delete()
		}
	}
	r.front, r.back, r.pages = nil, nil, nil
}

func (r *Renderer) releasePhotos() {
	for _, tex := range r.photos {
		texture.Delete(tex)
	}
	r.photos = nil
}
