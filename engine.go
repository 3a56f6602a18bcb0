// Package boxtree wires the retained layout engine to its configuration, the
// embedded Go fonts and the raster renderer.
package boxtree

import (
	"fmt"
	"slices"

	"github.com/agiangrant/boxtree/font"
	"github.com/agiangrant/boxtree/render/raster"
	"github.com/agiangrant/boxtree/retained"
)

// Version is the boxtree release.
const Version = "0.1.0"

// Engine owns a retained.Context together with a font manager and a raster
// renderer.
type Engine struct {
	cfg      Config
	ctx      *retained.Context
	fonts    *font.Manager
	renderer *raster.Renderer
	surfaces []retained.SurfaceHandle
}

// NewEngine creates an engine. It sets the process-wide log level from
// cfg.Debug.LogLevel.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	fonts, err := font.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fonts: %w", err)
	}
	retained.SetLogLevel(cfg.LogLevel())

	renderer := raster.New(fonts)
	return &Engine{
		cfg:      cfg,
		ctx:      retained.NewContext(cfg.Options(), renderer, fonts),
		fonts:    fonts,
		renderer: renderer,
	}, nil
}

func (e *Engine) Config() Config             { return e.cfg }
func (e *Engine) Context() *retained.Context { return e.ctx }
func (e *Engine) Fonts() *font.Manager       { return e.fonts }
func (e *Engine) Renderer() *raster.Renderer { return e.renderer }

// CreateSurface creates a surface the engine tracks for Shutdown.
func (e *Engine) CreateSurface(width, height float32) (retained.SurfaceHandle, error) {
	s := e.ctx.CreateSurface(width, height)
	if s == 0 {
		return 0, fmt.Errorf("surface limit of %d reached", e.cfg.Limits.MaxSurfaces)
	}
	e.surfaces = append(e.surfaces, s)
	return s, nil
}

// Render paints the whole surface, bypassing the invalid rect.
func (e *Engine) Render(s retained.SurfaceHandle) {
	w, h := e.ctx.SurfaceSize(s)
	e.ctx.PaintSurface(s, retained.XYWH(0, 0, w, h))
}

// SavePNG flushes pending paints of s and writes its canvas to path.
func (e *Engine) SavePNG(s retained.SurfaceHandle, path string) error {
	e.ctx.PaintInvalidated(s)
	return e.renderer.SavePNG(s, path)
}

// Shutdown deletes every tracked surface and the trees attached to it.
func (e *Engine) Shutdown() {
	e.ctx.BeginBatch()
	for _, s := range e.surfaces {
		for _, el := range e.ctx.TopLevelElements(s) {
			e.ctx.DeleteElement(el)
		}
		e.ctx.DeleteSurface(s)
		e.renderer.Forget(s)
	}
	e.ctx.EndBatch()
	e.surfaces = slices.Delete(e.surfaces, 0, len(e.surfaces))
}
