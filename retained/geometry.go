package retained

import "math"

// Axis selects the horizontal or vertical dimension.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) other() Axis { return 1 - a }

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Edge indexes the four sides of a box. The order is also the order borders
// are painted in.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
)

// Axis returns the axis the edge lies across: left/right are horizontal.
func (e Edge) Axis() Axis { return Axis(e & 1) }

func startEdge(a Axis) Edge { return Edge(a) }
func endEdge(a Axis) Edge   { return Edge(a) + 2 }

// Rect is an axis-aligned rectangle in device units. A rect with
// Right <= Left or Bottom <= Top is degenerate (empty).
type Rect struct {
	Left, Top, Right, Bottom float32
}

// XYWH builds a rect from an origin and a size.
func XYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Width() float32  { return r.Right - r.Left }
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Empty reports whether the rect has no positive area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether the point lies inside the rect. The right and
// bottom edges are exclusive.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersect returns the overlap of two rects, which may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
}

// Union returns the smallest rect containing both. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Inset pulls each edge inward by the given amounts.
func (r Rect) Inset(edges [4]float32) Rect {
	return Rect{
		Left:   r.Left + edges[EdgeLeft],
		Top:    r.Top + edges[EdgeTop],
		Right:  r.Right - edges[EdgeRight],
		Bottom: r.Bottom - edges[EdgeBottom],
	}
}

var unbounded = float32(math.Inf(1))
