package retained

import (
	"container/list"

	"github.com/agiangrant/boxtree/internal/handle"
)

// ElementHandle identifies an element. It stays the same for the element's
// lifetime and stops resolving once the element is deleted.
type ElementHandle handle.Handle

// SurfaceHandle identifies a surface.
type SurfaceHandle handle.Handle

// dirtyFlags are the layout invalidation bits of an element.
type dirtyFlags uint8

const (
	widthInvalid dirtyFlags = 1 << iota
	heightInvalid
	relXInvalid
	relYInvalid
	textInvalid

	sizeInvalid     = widthInvalid | heightInvalid
	positionInvalid = relXInvalid | relYInvalid
	layoutInvalid   = sizeInvalid | positionInvalid
)

func sizeFlag(a Axis) dirtyFlags {
	if a == AxisHorizontal {
		return widthInvalid
	}
	return heightInvalid
}

func positionFlag(a Axis) dirtyFlags {
	if a == AxisHorizontal {
		return relXInvalid
	}
	return relYInvalid
}

// layoutState is derived data owned by the layout engine.
type layoutState struct {
	size      [2]float32 // border box, clamped to min/max
	unclamped [2]float32
	margin    [4]float32
	border    [4]float32
	padding   [4]float32
	rel       [2]float32 // parent-local, or surface-local for absolute positioning
	abs       [2]float32 // surface-local

	flags  dirtyFlags
	queued *list.Element // slot in Context.invalid while flags != 0

	// last rect handed to the surface's invalid rect
	painted    Rect
	hasPainted bool

	// last values reported through EventSize/EventMove
	reportedSize [2]float32
	reportedPos  [2]float32
}

// outer returns the size including margins.
func (l *layoutState) outer(a Axis) float32 {
	return l.size[a] + l.margin[startEdge(a)] + l.margin[endEdge(a)]
}

// inset returns how far the given boundary lies inside the border box on
// the start and end edge of a.
func (l *layoutState) inset(a Axis, b Boundary) (start, end float32) {
	s, e := startEdge(a), endEdge(a)
	switch b {
	case BoundaryInnerBorder:
		return l.border[s], l.border[e]
	case BoundaryInner:
		return l.border[s] + l.padding[s], l.border[e] + l.padding[e]
	}
	return 0, 0
}

func (l *layoutState) insets(b Boundary) [4]float32 {
	var out [4]float32
	for _, a := range [2]Axis{AxisHorizontal, AxisVertical} {
		out[startEdge(a)], out[endEdge(a)] = l.inset(a, b)
	}
	return out
}

// decoration returns border plus padding on both edges of a.
func (l *layoutState) decoration(a Axis) float32 {
	s, e := l.inset(a, BoundaryInner)
	return s + e
}

func (l *layoutState) absRect() Rect {
	return XYWH(l.abs[0], l.abs[1], l.size[0], l.size[1])
}

// textState is the optional text sub-object of an element.
type textState struct {
	text     string
	font     FontHandle
	fontSpec FontSpec
	measured [2]float32
}

// element is a node of the GUI tree.
type element struct {
	handle ElementHandle
	id     string
	seq    uint64 // creation order, slots are reused

	parent      *element
	firstChild  *element
	lastChild   *element
	prevSibling *element
	nextSibling *element

	surface *surface

	style    Style
	layout   layoutState
	text     *textState
	handlers []*eventHandler
}

func (e *element) isAuto() bool {
	return e.style.Positioning == PositionAuto
}

// inFlow reports whether the element takes part in its parent's auto flow.
func (e *element) inFlow() bool {
	return e.style.Positioning == PositionAuto && e.style.Visible
}

// isAncestorOf reports whether e is a strict ancestor of o.
func (e *element) isAncestorOf(o *element) bool {
	for p := o.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

func (e *element) hasText() bool {
	return e.text != nil && e.text.text != ""
}

// ============================================================================
// Sibling list
// ============================================================================

func (e *element) linkLast(child *element) {
	child.parent = e
	child.prevSibling = e.lastChild
	child.nextSibling = nil
	if e.lastChild != nil {
		e.lastChild.nextSibling = child
	} else {
		e.firstChild = child
	}
	e.lastChild = child
}

func (e *element) linkFirst(child *element) {
	child.parent = e
	child.prevSibling = nil
	child.nextSibling = e.firstChild
	if e.firstChild != nil {
		e.firstChild.prevSibling = child
	} else {
		e.lastChild = child
	}
	e.firstChild = child
}

// linkAfter inserts o directly after e in e's parent.
func (e *element) linkAfter(o *element) {
	p := e.parent
	o.parent = p
	o.prevSibling = e
	o.nextSibling = e.nextSibling
	if e.nextSibling != nil {
		e.nextSibling.prevSibling = o
	} else {
		p.lastChild = o
	}
	e.nextSibling = o
}

// linkBefore inserts o directly before e in e's parent.
func (e *element) linkBefore(o *element) {
	p := e.parent
	o.parent = p
	o.nextSibling = e
	o.prevSibling = e.prevSibling
	if e.prevSibling != nil {
		e.prevSibling.nextSibling = o
	} else {
		p.firstChild = o
	}
	e.prevSibling = o
}

// unlink removes e from its parent's child list.
func (e *element) unlink() {
	p := e.parent
	if p == nil {
		return
	}
	if e.prevSibling != nil {
		e.prevSibling.nextSibling = e.nextSibling
	} else {
		p.firstChild = e.nextSibling
	}
	if e.nextSibling != nil {
		e.nextSibling.prevSibling = e.prevSibling
	} else {
		p.lastChild = e.prevSibling
	}
	e.parent = nil
	e.prevSibling = nil
	e.nextSibling = nil
}

// flowNeighbor returns the nearest auto-positioned sibling, preferring the
// following one.
func (e *element) flowNeighbor() *element {
	for s := e.nextSibling; s != nil; s = s.nextSibling {
		if s.isAuto() {
			return s
		}
	}
	for s := e.prevSibling; s != nil; s = s.prevSibling {
		if s.isAuto() {
			return s
		}
	}
	return nil
}
