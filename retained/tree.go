package retained

import "github.com/agiangrant/boxtree/internal/handle"

// ============================================================================
// Element lifecycle
// ============================================================================

// CreateElement allocates a detached element with the default style. It
// returns 0 when the element limit is reached.
func (ctx *Context) CreateElement() ElementHandle {
	e := &element{style: DefaultStyle(ctx.opts.DefaultFontFamily, ctx.opts.DefaultFontSize)}
	ctx.nextSeq++
	e.seq = ctx.nextSeq
	h := ElementHandle(ctx.elements.Insert(e))
	if h == 0 {
		layoutLogger.Warn("element limit reached", "limit", ctx.opts.MaxElements)
		return 0
	}
	e.handle = h

	ctx.BeginBatch()
	defer ctx.EndBatch()
	ctx.invalidateLayout(e)
	return h
}

// DeleteElement destroys an element and, first, all of its descendants.
func (ctx *Context) DeleteElement(h ElementHandle) {
	e, ok := ctx.element(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()
	ctx.deleteElement(e)
}

func (ctx *Context) deleteElement(e *element) {
	for e.firstChild != nil {
		ctx.deleteElement(e.firstChild)
	}
	ctx.unlinkElement(e)
	if s := e.surface; s != nil {
		if s.underMouse == e.handle {
			s.underMouse = 0
		}
		if s.capture == e.handle {
			s.capture = 0
		}
	}
	ctx.forget(e)
	ctx.releaseFont(e)
	e.handlers = nil
	e.surface = nil
	ctx.elements.Remove(handle.Handle(e.handle))
}

// ElementValid reports whether h refers to a live element.
func (ctx *Context) ElementValid(h ElementHandle) bool {
	return ctx.elementValid(h)
}

// ElementCount returns the number of live elements.
func (ctx *Context) ElementCount() int {
	return ctx.elements.Len()
}

// SetElementID assigns an optional string ID. IDs need not be unique.
func (ctx *Context) SetElementID(h ElementHandle, id string) {
	if e, ok := ctx.element(h); ok {
		e.id = id
	}
}

// ElementID returns the string ID of the element.
func (ctx *Context) ElementID(h ElementHandle) string {
	if e, ok := ctx.element(h); ok {
		return e.id
	}
	return ""
}

// FindElementByID returns the earliest created live element whose ID
// equals id, or 0.
func (ctx *Context) FindElementByID(id string) ElementHandle {
	var found *element
	ctx.elements.Each(func(_ handle.Handle, e *element) bool {
		if e.id == id && (found == nil || e.seq < found.seq) {
			found = e
		}
		return true
	})
	if found == nil {
		return 0
	}
	return found.handle
}

// ============================================================================
// Surface attachment
// ============================================================================

// AttachToSurface makes a parentless element a top-level element of the
// surface, painted above the existing ones.
func (ctx *Context) AttachToSurface(h ElementHandle, sh SurfaceHandle) {
	e, ok := ctx.element(h)
	if !ok {
		return
	}
	s, ok := ctx.surface(sh)
	if !ok {
		return
	}
	if e.parent != nil {
		layoutLogger.Debug("attach ignored for child element", "element", h)
		return
	}
	if e.surface == s {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	if e.surface != nil {
		e.surface.removeTopLevel(e)
	}
	s.topLevel = append(s.topLevel, e)
	ctx.setSurface(e, s)
	ctx.invalidateSubtreeLayout(e)
}

// DetachFromSurface removes a parentless element from its surface. The
// subtree stays intact.
func (ctx *Context) DetachFromSurface(h ElementHandle) {
	e, ok := ctx.element(h)
	if !ok || e.parent != nil || e.surface == nil {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	e.surface.removeTopLevel(e)
	ctx.setSurface(e, nil)
	ctx.invalidateSubtreeLayout(e)
}

// setSurface propagates s to e and all its descendants.
func (ctx *Context) setSurface(e *element, s *surface) {
	if old := e.surface; old != nil && old != s {
		if e.layout.hasPainted {
			ctx.invalidateRect(old, e.layout.painted)
		}
		if old.underMouse == e.handle {
			old.underMouse = 0
		}
		if old.capture == e.handle {
			old.capture = 0
		}
	}
	e.surface = s
	e.layout.hasPainted = false
	if s != nil {
		// paint on the new surface even if the layout does not move
		ctx.markValidated(e)
	}
	for c := e.firstChild; c != nil; c = c.nextSibling {
		ctx.setSurface(c, s)
	}
}

// ============================================================================
// Reparenting
// ============================================================================

// AppendChild makes child the last child of parent.
func (ctx *Context) AppendChild(parent, child ElementHandle) {
	p, c, ok := ctx.movePair(parent, child)
	if !ok {
		return
	}
	ctx.moveElement(c, p.surface, func() { p.linkLast(c) })
}

// PrependChild makes child the first child of parent.
func (ctx *Context) PrependChild(parent, child ElementHandle) {
	p, c, ok := ctx.movePair(parent, child)
	if !ok {
		return
	}
	ctx.moveElement(c, p.surface, func() { p.linkFirst(c) })
}

// AppendSibling moves e directly after anchor. A top-level anchor places e
// after it in its surface's top-level list.
func (ctx *Context) AppendSibling(anchor, e ElementHandle) {
	a, o, ok := ctx.movePair(anchor, e)
	if !ok {
		return
	}
	ctx.moveSibling(a, o, 1, func() { a.linkAfter(o) })
}

// PrependSibling moves e directly before anchor.
func (ctx *Context) PrependSibling(anchor, e ElementHandle) {
	a, o, ok := ctx.movePair(anchor, e)
	if !ok {
		return
	}
	ctx.moveSibling(a, o, 0, func() { a.linkBefore(o) })
}

// DetachFromParent turns e into a surfaceless root.
func (ctx *Context) DetachFromParent(h ElementHandle) {
	e, ok := ctx.element(h)
	if !ok || e.parent == nil {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	ctx.unlinkElement(e)
	ctx.setSurface(e, nil)
	ctx.invalidateSubtreeLayout(e)
}

// movePair resolves the anchor and the element to move and rejects moves
// that would create a cycle.
func (ctx *Context) movePair(anchor, moved ElementHandle) (a, m *element, ok bool) {
	if a, ok = ctx.element(anchor); !ok {
		return nil, nil, false
	}
	if m, ok = ctx.element(moved); !ok {
		return nil, nil, false
	}
	if a == m || m.isAncestorOf(a) {
		layoutLogger.Debug("move would create a cycle", "anchor", anchor, "element", moved)
		return nil, nil, false
	}
	return a, m, true
}

func (ctx *Context) moveSibling(anchor, e *element, offset int, link func()) {
	if anchor.parent != nil {
		ctx.moveElement(e, anchor.surface, link)
		return
	}
	s := anchor.surface
	if s == nil {
		layoutLogger.Debug("sibling of a surfaceless root", "anchor", anchor.handle)
		return
	}
	ctx.moveElement(e, s, func() {
		i := 0
		for j, t := range s.topLevel {
			if t == anchor {
				i = j
				break
			}
		}
		s.insertTopLevel(i+offset, e)
	})
}

// moveElement unlinks e, runs link to put it in its new place on surface s
// and invalidates everything affected on both ends.
func (ctx *Context) moveElement(e *element, s *surface, link func()) {
	ctx.BeginBatch()
	defer ctx.EndBatch()

	ctx.unlinkElement(e)
	link()

	ctx.invalidateLayout(e)
	ctx.invalidateFlowMembership(e)
	if e.surface != s {
		ctx.setSurface(e, s)
		ctx.invalidateSubtreeLayout(e)
	}
}

// unlinkElement takes e out of its parent's child list or its surface's
// top-level list, invalidating what depended on its old place.
func (ctx *Context) unlinkElement(e *element) {
	ctx.invalidateSubtreeRect(e)

	p := e.parent
	if p == nil {
		if e.surface != nil {
			e.surface.removeTopLevel(e)
		}
		return
	}

	var neighbor *element
	if e.isAuto() {
		neighbor = e.flowNeighbor()
	}
	for _, a := range axes {
		ctx.invalidateFlexSiblings(e, a)
	}
	e.unlink()

	ctx.invalidateAutoSize(p)
	if neighbor != nil {
		ctx.invalidate(neighbor, positionInvalid)
	}
}

// ============================================================================
// Queries
// ============================================================================

func (ctx *Context) related(h ElementHandle, pick func(*element) *element) ElementHandle {
	e, ok := ctx.element(h)
	if !ok {
		return 0
	}
	if r := pick(e); r != nil {
		return r.handle
	}
	return 0
}

// Parent returns the parent of h, or 0 for roots.
func (ctx *Context) Parent(h ElementHandle) ElementHandle {
	return ctx.related(h, func(e *element) *element { return e.parent })
}

func (ctx *Context) FirstChild(h ElementHandle) ElementHandle {
	return ctx.related(h, func(e *element) *element { return e.firstChild })
}

func (ctx *Context) LastChild(h ElementHandle) ElementHandle {
	return ctx.related(h, func(e *element) *element { return e.lastChild })
}

func (ctx *Context) NextSibling(h ElementHandle) ElementHandle {
	return ctx.related(h, func(e *element) *element { return e.nextSibling })
}

func (ctx *Context) PrevSibling(h ElementHandle) ElementHandle {
	return ctx.related(h, func(e *element) *element { return e.prevSibling })
}

// Children returns the children of h in order.
func (ctx *Context) Children(h ElementHandle) []ElementHandle {
	e, ok := ctx.element(h)
	if !ok {
		return nil
	}
	var out []ElementHandle
	for c := e.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c.handle)
	}
	return out
}

// ElementSurface returns the surface h is attached to, or 0.
func (ctx *Context) ElementSurface(h ElementHandle) SurfaceHandle {
	if e, ok := ctx.element(h); ok && e.surface != nil {
		return e.surface.handle
	}
	return 0
}

// Style returns a copy of the element's style.
func (ctx *Context) Style(h ElementHandle) (Style, bool) {
	if e, ok := ctx.element(h); ok {
		return e.style, true
	}
	return Style{}, false
}

// LayoutInfo is a snapshot of an element's resolved layout in device units.
type LayoutInfo struct {
	Width, Height   float32
	UnclampedWidth  float32
	UnclampedHeight float32

	// X/Y are parent-local (surface-local for absolute positioning),
	// AbsX/AbsY surface-local.
	X, Y       float32
	AbsX, AbsY float32

	Margin, Border, Padding [4]float32
}

// Layout returns the element's resolved layout as of the last validation.
func (ctx *Context) Layout(h ElementHandle) (LayoutInfo, bool) {
	e, ok := ctx.element(h)
	if !ok {
		return LayoutInfo{}, false
	}
	l := &e.layout
	return LayoutInfo{
		Width:           l.size[0],
		Height:          l.size[1],
		UnclampedWidth:  l.unclamped[0],
		UnclampedHeight: l.unclamped[1],
		X:               l.rel[0],
		Y:               l.rel[1],
		AbsX:            l.abs[0],
		AbsY:            l.abs[1],
		Margin:          l.margin,
		Border:          l.border,
		Padding:         l.padding,
	}, true
}

// AbsoluteRect returns the element's border box in surface coordinates.
func (ctx *Context) AbsoluteRect(h ElementHandle) Rect {
	if e, ok := ctx.element(h); ok {
		return e.layout.absRect()
	}
	return Rect{}
}
