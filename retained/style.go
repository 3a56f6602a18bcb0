package retained

import "fmt"

// ============================================================================
// Units and Dimensions
// ============================================================================

// Unit tags how a Dimension's value is interpreted.
type Unit uint8

const (
	// UnitAbsolute is a raw device-unit value.
	UnitAbsolute Unit = iota

	// UnitPixels is treated exactly like UnitAbsolute.
	UnitPixels

	// UnitPoints is multiplied by the current DPI scale factor of the axis.
	UnitPoints

	// UnitPercent is a ratio (0.5 == 50%) of a reference dimension. For
	// children of a flexing parent it is a weight instead.
	UnitPercent

	// UnitAuto is resolved from children or text content. For min sizes it
	// means 0, for max sizes it means unbounded.
	UnitAuto
)

func (u Unit) String() string {
	switch u {
	case UnitAbsolute:
		return "abs"
	case UnitPixels:
		return "px"
	case UnitPoints:
		return "pt"
	case UnitPercent:
		return "%"
	case UnitAuto:
		return "auto"
	}
	return fmt.Sprintf("Unit(%d)", uint8(u))
}

// Dimension is a value together with its unit type.
type Dimension struct {
	Value float32
	Unit  Unit
}

// Abs returns an absolute device-unit dimension.
func Abs(v float32) Dimension { return Dimension{Value: v, Unit: UnitAbsolute} }

// Px returns a pixel dimension.
func Px(v float32) Dimension { return Dimension{Value: v, Unit: UnitPixels} }

// Pt returns a DPI-scaled point dimension.
func Pt(v float32) Dimension { return Dimension{Value: v, Unit: UnitPoints} }

// Percent returns a ratio dimension; Percent(0.5) is 50%.
func Percent(ratio float32) Dimension { return Dimension{Value: ratio, Unit: UnitPercent} }

// Auto returns the automatic dimension.
func Auto() Dimension { return Dimension{Unit: UnitAuto} }

func (d Dimension) IsAuto() bool    { return d.Unit == UnitAuto }
func (d Dimension) IsPercent() bool { return d.Unit == UnitPercent }

func (d Dimension) String() string {
	switch d.Unit {
	case UnitAuto:
		return "auto"
	case UnitPercent:
		return fmt.Sprintf("%g%%", d.Value*100)
	}
	return fmt.Sprintf("%g%s", d.Value, d.Unit)
}

// ============================================================================
// Enumerations
// ============================================================================

// Positioning selects how an element is placed inside its parent.
type Positioning uint8

const (
	// PositionAuto places the element in flow order among its siblings.
	PositionAuto Positioning = iota

	// PositionRelative offsets the element from a corner of its parent.
	PositionRelative

	// PositionAbsolute offsets the element from a corner of its surface.
	PositionAbsolute
)

// Boundary selects one of the three nested rectangles of a box.
type Boundary uint8

const (
	BoundaryOuter       Boundary = iota // border box
	BoundaryInnerBorder                 // inside the border
	BoundaryInner                       // inside border and padding
)

// ClippingMode controls whether an element is clipped by its parent.
type ClippingMode uint8

const (
	// ClipAuto clips unless the element is absolutely positioned.
	ClipAuto ClippingMode = iota
	ClipEnabled
	ClipDisabled
)

// Alignment positions flowed children inside the parent. For the horizontal
// axis Start/End mean left/right, for the vertical axis top/bottom.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// FontWeight is a CSS-style numeric weight.
type FontWeight uint16

const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// FontSlant selects upright or slanted glyphs.
type FontSlant uint8

const (
	SlantNormal FontSlant = iota
	SlantItalic
	SlantOblique
)

// Color is a packed 0xRRGGBBAA value. Alpha 0 means nothing is drawn.
type Color uint32

const Transparent Color = 0

// RGBA packs four channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color { return RGBA(r, g, b, 0xff) }

// Channels unpacks the color.
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c Color) Alpha() uint8 { return uint8(c) }

// ============================================================================
// Style Record
// ============================================================================

// Style holds every layout- and paint-relevant property of an element.
// It is plain data: changing a copy has no effect on the tree. Use the
// Context setters so the right parts of the layout are invalidated.
type Style struct {
	Width, MinWidth, MaxWidth    Dimension
	Height, MinHeight, MaxHeight Dimension

	// Offset is indexed by Edge and used by relative and absolute
	// positioning. RightPriority/BottomPriority select the authoritative
	// edge per axis.
	Offset         [4]Dimension
	RightPriority  bool
	BottomPriority bool

	Margin      [4]Dimension
	Padding     [4]Dimension
	BorderWidth [4]Dimension
	BorderColor [4]Color
	Background  Color

	Positioning    Positioning
	PositionOrigin Boundary

	Clipping         ClippingMode
	ClippingBoundary Boundary

	ChildAxis            Axis
	HAlign, VAlign       Alignment
	ChildrenSizeBoundary Boundary
	FlexChildWidth       bool
	FlexChildHeight      bool

	Visible bool

	FontFamily string
	FontWeight FontWeight
	FontSlant  FontSlant
	FontSize   Dimension
	TextColor  Color
}

// DefaultStyle returns the style of a freshly created element: auto sized,
// auto positioned, min 0, max unbounded, visible, vertical child axis.
func DefaultStyle(fontFamily string, fontSize Dimension) Style {
	s := Style{
		Width:      Auto(),
		MinWidth:   Abs(0),
		MaxWidth:   Auto(),
		Height:     Auto(),
		MinHeight:  Abs(0),
		MaxHeight:  Auto(),
		ChildAxis:  AxisVertical,
		Visible:    true,
		FontFamily: fontFamily,
		FontWeight: WeightNormal,
		FontSize:   fontSize,
		TextColor:  RGB(0, 0, 0),
	}
	for i := range s.Offset {
		s.Offset[i] = Abs(0)
		s.Margin[i] = Abs(0)
		s.Padding[i] = Abs(0)
		s.BorderWidth[i] = Abs(0)
	}
	return s
}

// Size returns Width or Height.
func (s *Style) Size(a Axis) Dimension {
	if a == AxisHorizontal {
		return s.Width
	}
	return s.Height
}

func (s *Style) MinSize(a Axis) Dimension {
	if a == AxisHorizontal {
		return s.MinWidth
	}
	return s.MinHeight
}

func (s *Style) MaxSize(a Axis) Dimension {
	if a == AxisHorizontal {
		return s.MaxWidth
	}
	return s.MaxHeight
}

// Alignment returns HAlign or VAlign.
func (s *Style) Alignment(a Axis) Alignment {
	if a == AxisHorizontal {
		return s.HAlign
	}
	return s.VAlign
}

// FlexChildren reports whether percent-sized children are flexed on a.
func (s *Style) FlexChildren(a Axis) bool {
	if a == AxisHorizontal {
		return s.FlexChildWidth
	}
	return s.FlexChildHeight
}

// EndPriority reports whether the right (or bottom) offset is authoritative.
func (s *Style) EndPriority(a Axis) bool {
	if a == AxisHorizontal {
		return s.RightPriority
	}
	return s.BottomPriority
}

// EscapesClip reports whether the element ignores its parent's clip rect.
func (s *Style) EscapesClip() bool {
	return s.Clipping == ClipDisabled ||
		(s.Clipping == ClipAuto && s.Positioning == PositionAbsolute)
}

func (s *Style) setSize(a Axis, d Dimension) {
	if a == AxisHorizontal {
		s.Width = d
	} else {
		s.Height = d
	}
}

func (s *Style) setMinSize(a Axis, d Dimension) {
	if a == AxisHorizontal {
		s.MinWidth = d
	} else {
		s.MinHeight = d
	}
}

func (s *Style) setMaxSize(a Axis, d Dimension) {
	if a == AxisHorizontal {
		s.MaxWidth = d
	} else {
		s.MaxHeight = d
	}
}

// sizeDependsOnParent reports whether the resolved size on a reads the
// parent's dimension, directly or through min/max.
func (s *Style) sizeDependsOnParent(a Axis) bool {
	return s.Size(a).IsPercent() || s.MinSize(a).IsPercent() || s.MaxSize(a).IsPercent()
}

// boxDependsOnParent extends sizeDependsOnParent with percentage margins,
// padding and border widths on the edges of a.
func (s *Style) boxDependsOnParent(a Axis) bool {
	if s.sizeDependsOnParent(a) {
		return true
	}
	for _, edge := range [2]Edge{startEdge(a), endEdge(a)} {
		if s.Margin[edge].IsPercent() || s.Padding[edge].IsPercent() || s.BorderWidth[edge].IsPercent() {
			return true
		}
	}
	return false
}

// offsetDependsOnContainer reports whether the position on a reads the
// container size: anchored to the far edge, or given as a percentage.
func (s *Style) offsetDependsOnContainer(a Axis) bool {
	if s.Positioning == PositionAuto {
		return false
	}
	if s.EndPriority(a) {
		return true
	}
	return s.Offset[startEdge(a)].IsPercent()
}
