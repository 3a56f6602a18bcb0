package retained

import "github.com/agiangrant/boxtree/internal/handle"

// TextRun describes one text drawing call. X/Y is the top-left corner of
// the element's inner box; the renderer places the baseline. Rotation is
// clockwise in degrees around X/Y.
type TextRun struct {
	Text     string
	Font     FontHandle
	X, Y     float32
	Rotation float32
	Color    Color
}

// Renderer is the drawing capability the core paints through. All rects
// are in surface device units.
type Renderer interface {
	BeginPaintSurface(s SurfaceHandle, width, height float32)
	EndPaintSurface()
	Clear(r Rect)
	SetClippingRect(r Rect)
	DrawRectangle(r Rect, c Color)
	CanDrawText(f FontHandle) bool
	DrawText(run TextRun)
}

// ============================================================================
// Invalid rect bookkeeping
// ============================================================================

// InvalidateRect adds r to the surface's region needing repaint.
func (ctx *Context) InvalidateRect(h SurfaceHandle, r Rect) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()
	ctx.invalidateRect(s, r)
}

// SurfaceInvalidRect returns the accumulated invalid rect, empty when clean.
func (ctx *Context) SurfaceInvalidRect(h SurfaceHandle) Rect {
	if s, ok := ctx.surface(h); ok {
		return s.invalid
	}
	return Rect{}
}

// invalidateRect unions r, clamped to the surface, into the invalid rect.
func (ctx *Context) invalidateRect(s *surface, r Rect) {
	r = r.Intersect(s.bounds())
	if r.Empty() {
		return
	}
	s.invalid = s.invalid.Union(r)
}

// invalidateElementRect schedules a repaint of e where it was last painted
// and where it is now.
func (ctx *Context) invalidateElementRect(e *element) {
	s := e.surface
	if s == nil {
		return
	}
	if e.layout.hasPainted {
		ctx.invalidateRect(s, e.layout.painted)
	}
	ctx.invalidateRect(s, e.layout.absRect())
}

func (ctx *Context) invalidateSubtreeRect(e *element) {
	ctx.invalidateElementRect(e)
	for c := e.firstChild; c != nil; c = c.nextSibling {
		ctx.invalidateSubtreeRect(c)
	}
}

// repaintElement is invalidateElementRect plus remembering the new rect.
func (ctx *Context) repaintElement(e *element) {
	ctx.invalidateElementRect(e)
	e.layout.painted = e.layout.absRect()
	e.layout.hasPainted = e.surface != nil
}

func (ctx *Context) hasPendingPaint() bool {
	pending := false
	ctx.surfaces.Each(func(_ handle.Handle, s *surface) bool {
		pending = s.mode == PaintImmediate && !s.invalid.Empty()
		return !pending
	})
	return pending
}

// paintInvalidSurfaces repaints every immediate-mode surface over exactly
// its invalid rect and resets the rect.
func (ctx *Context) paintInvalidSurfaces() {
	var dirty []*surface
	ctx.surfaces.Each(func(_ handle.Handle, s *surface) bool {
		if s.mode == PaintImmediate && !s.invalid.Empty() {
			dirty = append(dirty, s)
		}
		return true
	})
	for _, s := range dirty {
		if !ctx.SurfaceValid(s.handle) {
			continue
		}
		r := s.invalid
		s.invalid = Rect{}
		ctx.paintSurface(s, r)
	}
}

// PaintInvalidated repaints the surface's accumulated invalid rect now,
// whatever its painting mode.
func (ctx *Context) PaintInvalidated(h SurfaceHandle) {
	s, ok := ctx.surface(h)
	if !ok || s.invalid.Empty() {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()
	r := s.invalid
	s.invalid = Rect{}
	ctx.paintSurface(s, r)
}

// ============================================================================
// Clipped traversal
// ============================================================================

// clippedTraversal visits e and its descendants whose visible rect, the
// absolute rect cut by the accumulated clip, has positive area. Elements that
// escape clipping use their full rect. Hidden elements prune their subtree.
func (ctx *Context) clippedTraversal(e *element, clip Rect, visit func(e *element, visible Rect)) {
	if !e.style.Visible {
		return
	}
	abs := e.layout.absRect()
	visible := abs
	if !e.style.EscapesClip() {
		visible = abs.Intersect(clip)
	}
	if visible.Empty() {
		return
	}
	visit(e, visible)

	childClip := abs.Inset(e.layout.insets(e.style.ClippingBoundary)).Intersect(visible)
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if childClip.Empty() && !c.style.EscapesClip() {
			continue
		}
		ctx.clippedTraversal(c, childClip, visit)
	}
}

// FindElementUnderPoint returns the topmost element, in paint order, whose
// visible rect contains the point, or 0.
func (ctx *Context) FindElementUnderPoint(h SurfaceHandle, x, y float32) ElementHandle {
	s, ok := ctx.surface(h)
	if !ok {
		return 0
	}
	var found ElementHandle
	for _, e := range s.topLevel {
		ctx.clippedTraversal(e, s.bounds(), func(e *element, visible Rect) {
			if visible.Contains(x, y) {
				found = e.handle
			}
		})
	}
	return found
}

// ============================================================================
// Painting
// ============================================================================

// PaintSurface paints r of the surface through the renderer and posts
// EventPaint before the renderer's paint batch ends.
func (ctx *Context) PaintSurface(h SurfaceHandle, r Rect) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()
	ctx.paintSurface(s, r)
}

func (ctx *Context) paintSurface(s *surface, r Rect) {
	r = r.Intersect(s.bounds())
	if r.Empty() {
		return
	}
	paintLogger.Debug("paint surface", "surface", s.handle, "rect", r)

	rd := ctx.renderer
	if rd != nil {
		rd.BeginPaintSurface(s.handle, s.size[0], s.size[1])
		rd.SetClippingRect(r)
		rd.Clear(r)
		for _, e := range s.topLevel {
			ctx.clippedTraversal(e, r, func(e *element, visible Rect) {
				// elements escaping the clip must still stay inside r
				if visible = visible.Intersect(r); !visible.Empty() {
					ctx.paintElement(e, visible)
				}
			})
		}
		rd.SetClippingRect(r)
	}
	ctx.postEvent(&Event{Type: EventPaint, Surface: s.handle, Rect: r})
	if rd != nil {
		rd.EndPaintSurface()
	}
}

// paintElement draws background, the four border edges (left, top, right,
// bottom; zero widths skipped) and text.
func (ctx *Context) paintElement(e *element, visible Rect) {
	rd := ctx.renderer
	l := &e.layout
	st := &e.style
	abs := l.absRect()

	rd.SetClippingRect(visible)
	if st.Background.Alpha() != 0 {
		rd.DrawRectangle(abs, st.Background)
	}

	edges := [4]Rect{
		EdgeLeft:   {Left: abs.Left, Top: abs.Top, Right: abs.Left + l.border[EdgeLeft], Bottom: abs.Bottom},
		EdgeTop:    {Left: abs.Left, Top: abs.Top, Right: abs.Right, Bottom: abs.Top + l.border[EdgeTop]},
		EdgeRight:  {Left: abs.Right - l.border[EdgeRight], Top: abs.Top, Right: abs.Right, Bottom: abs.Bottom},
		EdgeBottom: {Left: abs.Left, Top: abs.Bottom - l.border[EdgeBottom], Right: abs.Right, Bottom: abs.Bottom},
	}
	for edge, r := range edges {
		if l.border[edge] > 0 {
			rd.DrawRectangle(r, st.BorderColor[edge])
		}
	}

	if e.hasText() && e.text.font != 0 && rd.CanDrawText(e.text.font) {
		inner := abs.Inset(l.insets(BoundaryInner))
		rd.DrawText(TextRun{
			Text:  e.text.text,
			Font:  e.text.font,
			X:     inner.Left,
			Y:     inner.Top,
			Color: st.TextColor,
		})
	}
}
