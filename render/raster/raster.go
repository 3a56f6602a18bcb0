// Package raster is a headless software Renderer drawing each surface into
// an RGBA canvas with github.com/fogleman/gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/agiangrant/boxtree/retained"
	"github.com/fogleman/gg"
	xfont "golang.org/x/image/font"
)

// FaceSource resolves font handles to drawable faces. *font.Manager
// implements it.
type FaceSource interface {
	Face(h retained.FontHandle) (xfont.Face, bool)
	Metrics(h retained.FontHandle) retained.FontMetrics
}

// Renderer implements retained.Renderer. Canvases persist between paints so
// that partial repaints only touch the invalid rect.
type Renderer struct {
	faces FaceSource

	canvases    map[retained.SurfaceHandle]*gg.Context
	clearColors map[retained.SurfaceHandle]retained.Color
	current     *gg.Context
	currentSurf retained.SurfaceHandle
}

var defaultClearColor = retained.RGB(0xff, 0xff, 0xff)

var _ retained.Renderer = (*Renderer)(nil)

// New creates a renderer. faces may be nil, in which case no text is drawn.
func New(faces FaceSource) *Renderer {
	return &Renderer{
		faces:       faces,
		canvases:    make(map[retained.SurfaceHandle]*gg.Context),
		clearColors: make(map[retained.SurfaceHandle]retained.Color),
	}
}

// SetClearColor sets the color Clear fills surface s with. The default is
// white.
func (r *Renderer) SetClearColor(s retained.SurfaceHandle, c retained.Color) {
	r.clearColors[s] = c
}

func (r *Renderer) clearColor(s retained.SurfaceHandle) retained.Color {
	if c, ok := r.clearColors[s]; ok {
		return c
	}
	return defaultClearColor
}

func (r *Renderer) BeginPaintSurface(s retained.SurfaceHandle, width, height float32) {
	w, h := int(math.Ceil(float64(width))), int(math.Ceil(float64(height)))
	dc := r.canvases[s]
	if dc == nil || dc.Width() != w || dc.Height() != h {
		dc = gg.NewContext(max(w, 1), max(h, 1))
		r.canvases[s] = dc
	}
	r.current = dc
	r.currentSurf = s
}

func (r *Renderer) EndPaintSurface() {
	if r.current != nil {
		r.current.ResetClip()
	}
	r.current = nil
	r.currentSurf = 0
}

// Clear replaces the pixels of rect with the clear color.
func (r *Renderer) Clear(rect retained.Rect) {
	if r.current == nil {
		return
	}
	rgba, ok := r.current.Image().(*image.RGBA)
	if !ok {
		return
	}
	draw.Draw(rgba, pixelRect(rect), image.NewUniform(toColor(r.clearColor(r.currentSurf))), image.Point{}, draw.Src)
}

func (r *Renderer) SetClippingRect(rect retained.Rect) {
	if r.current == nil {
		return
	}
	r.current.ResetClip()
	r.current.DrawRectangle(float64(rect.Left), float64(rect.Top), float64(rect.Width()), float64(rect.Height()))
	r.current.Clip()
}

func (r *Renderer) DrawRectangle(rect retained.Rect, c retained.Color) {
	if r.current == nil || rect.Empty() {
		return
	}
	r.current.SetColor(toColor(c))
	r.current.DrawRectangle(float64(rect.Left), float64(rect.Top), float64(rect.Width()), float64(rect.Height()))
	r.current.Fill()
}

func (r *Renderer) CanDrawText(f retained.FontHandle) bool {
	if r.faces == nil {
		return false
	}
	_, ok := r.faces.Face(f)
	return ok
}

// DrawText draws a single line with its top-left corner at (X, Y). The
// rotation is in degrees, clockwise around that corner.
func (r *Renderer) DrawText(run retained.TextRun) {
	if r.current == nil || r.faces == nil {
		return
	}
	face, ok := r.faces.Face(run.Font)
	if !ok {
		return
	}
	dc := r.current
	x, y := float64(run.X), float64(run.Y)
	baseline := y + float64(r.faces.Metrics(run.Font).Ascent)

	dc.Push()
	defer dc.Pop()
	if run.Rotation != 0 {
		dc.RotateAbout(gg.Radians(float64(run.Rotation)), x, y)
	}
	dc.SetFontFace(face)
	dc.SetColor(toColor(run.Color))
	dc.DrawString(run.Text, x, baseline)
}

// Image returns the canvas of surface s, or nil if it was never painted.
func (r *Renderer) Image(s retained.SurfaceHandle) image.Image {
	if dc := r.canvases[s]; dc != nil {
		return dc.Image()
	}
	return nil
}

// EncodePNG writes the canvas of surface s as PNG.
func (r *Renderer) EncodePNG(s retained.SurfaceHandle, w io.Writer) error {
	dc := r.canvases[s]
	if dc == nil {
		return fmt.Errorf("raster: surface %d has not been painted", s)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("raster: encode surface %d: %w", s, err)
	}
	return nil
}

// SavePNG writes the canvas of surface s to path.
func (r *Renderer) SavePNG(s retained.SurfaceHandle, path string) error {
	dc := r.canvases[s]
	if dc == nil {
		return fmt.Errorf("raster: surface %d has not been painted", s)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("raster: save %s: %w", path, err)
	}
	return nil
}

// Forget drops the canvas and clear color of a deleted surface.
func (r *Renderer) Forget(s retained.SurfaceHandle) {
	delete(r.canvases, s)
	delete(r.clearColors, s)
}

func toColor(c retained.Color) color.NRGBA {
	red, green, blue, alpha := c.Channels()
	return color.NRGBA{R: red, G: green, B: blue, A: alpha}
}

func pixelRect(r retained.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Left))),
		int(math.Floor(float64(r.Top))),
		int(math.Ceil(float64(r.Right))),
		int(math.Ceil(float64(r.Bottom))),
	)
}
