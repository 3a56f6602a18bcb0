package retained

import (
	"slices"

	"github.com/agiangrant/boxtree/internal/handle"
)

// PaintingMode controls when a surface's invalid rect is repainted.
type PaintingMode uint8

const (
	// PaintImmediate repaints the invalid rect when the outermost batch closes.
	PaintImmediate PaintingMode = iota

	// PaintDeferred only accumulates; call PaintInvalidated to flush.
	PaintDeferred
)

// surface is a top-level paint target.
type surface struct {
	handle SurfaceHandle
	id     string
	size   [2]float32
	mode   PaintingMode

	topLevel []*element
	invalid  Rect

	underMouse ElementHandle
	capture    ElementHandle
}

func (s *surface) bounds() Rect {
	return XYWH(0, 0, s.size[0], s.size[1])
}

func (s *surface) removeTopLevel(e *element) {
	if i := slices.Index(s.topLevel, e); i >= 0 {
		s.topLevel = slices.Delete(s.topLevel, i, i+1)
	}
}

func (s *surface) insertTopLevel(at int, e *element) {
	at = min(max(at, 0), len(s.topLevel))
	s.topLevel = slices.Insert(s.topLevel, at, e)
}

func (ctx *Context) surface(h SurfaceHandle) (*surface, bool) {
	return ctx.surfaces.Get(handle.Handle(h))
}

// CreateSurface creates a paint target of the given size in device units.
// It returns 0 when the surface limit is reached.
func (ctx *Context) CreateSurface(width, height float32) SurfaceHandle {
	s := &surface{
		size: [2]float32{max(width, 0), max(height, 0)},
		mode: ctx.opts.PaintingMode,
	}
	h := SurfaceHandle(ctx.surfaces.Insert(s))
	if h == 0 {
		return 0
	}
	s.handle = h
	return h
}

// DeleteSurface destroys a surface. Its elements are not deleted; they
// become surfaceless roots.
func (ctx *Context) DeleteSurface(h SurfaceHandle) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	roots := slices.Clone(s.topLevel)
	s.topLevel = nil
	for _, e := range roots {
		ctx.setSurface(e, nil)
		ctx.invalidateSubtreeLayout(e)
	}
	ctx.surfaces.Remove(handle.Handle(h))
}

// SurfaceValid reports whether h refers to a live surface.
func (ctx *Context) SurfaceValid(h SurfaceHandle) bool {
	_, ok := ctx.surface(h)
	return ok
}

// SetSurfaceID assigns an optional string ID.
func (ctx *Context) SetSurfaceID(h SurfaceHandle, id string) {
	if s, ok := ctx.surface(h); ok {
		s.id = id
	}
}

// SurfaceID returns the string ID of the surface.
func (ctx *Context) SurfaceID(h SurfaceHandle) string {
	if s, ok := ctx.surface(h); ok {
		return s.id
	}
	return ""
}

// SurfaceSize returns the surface dimensions.
func (ctx *Context) SurfaceSize(h SurfaceHandle) (width, height float32) {
	if s, ok := ctx.surface(h); ok {
		return s.size[0], s.size[1]
	}
	return 0, 0
}

// ResizeSurface changes the surface dimensions and re-lays out every tree
// attached to it.
func (ctx *Context) ResizeSurface(h SurfaceHandle, width, height float32) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	width, height = max(width, 0), max(height, 0)
	if s.size == [2]float32{width, height} {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	s.size = [2]float32{width, height}
	for _, e := range s.topLevel {
		ctx.invalidateSubtreeLayout(e)
	}
	ctx.invalidateRect(s, s.bounds())
	ctx.postEvent(&Event{Type: EventSurfaceSize, Surface: h, Width: width, Height: height})
}

// SetPaintingMode switches between immediate and deferred repainting.
func (ctx *Context) SetPaintingMode(h SurfaceHandle, mode PaintingMode) {
	if s, ok := ctx.surface(h); ok {
		s.mode = mode
	}
}

// TopLevelElements returns the parentless elements attached to the surface
// in paint order.
func (ctx *Context) TopLevelElements(h SurfaceHandle) []ElementHandle {
	s, ok := ctx.surface(h)
	if !ok {
		return nil
	}
	out := make([]ElementHandle, len(s.topLevel))
	for i, e := range s.topLevel {
		out[i] = e.handle
	}
	return out
}

// ElementUnderMouse returns the element the surface currently tracks as
// being under the pointer.
func (ctx *Context) ElementUnderMouse(h SurfaceHandle) ElementHandle {
	if s, ok := ctx.surface(h); ok && ctx.elementValid(s.underMouse) {
		return s.underMouse
	}
	return 0
}

// SetMouseCapture routes all mouse events of the surface to e until
// ReleaseMouseCapture. e must be attached to the surface.
func (ctx *Context) SetMouseCapture(h SurfaceHandle, eh ElementHandle) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	e, ok := ctx.element(eh)
	if !ok || e.surface != s {
		return
	}
	s.capture = eh
}

// ReleaseMouseCapture ends mouse capture on the surface.
func (ctx *Context) ReleaseMouseCapture(h SurfaceHandle) {
	if s, ok := ctx.surface(h); ok {
		s.capture = 0
	}
}

// MouseCapture returns the capturing element, or 0.
func (ctx *Context) MouseCapture(h SurfaceHandle) ElementHandle {
	if s, ok := ctx.surface(h); ok && ctx.elementValid(s.capture) {
		return s.capture
	}
	return 0
}
