package retained

// Style setters. Each one updates the style record and raises the smallest
// set of invalidation flags that keeps the layout correct. Setting a value
// equal to the current one does nothing.

// mutate runs fn on a live element inside a batch.
func (ctx *Context) mutate(h ElementHandle, fn func(e *element)) {
	e, ok := ctx.element(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()
	fn(e)
}

// ============================================================================
// Size
// ============================================================================

// SetSize sets the width (AxisHorizontal) or height of the element.
func (ctx *Context) SetSize(h ElementHandle, a Axis, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.Size(a) == d {
			return
		}
		e.style.setSize(a, d)
		ctx.sizeStyleChanged(e, a)
	})
}

// SetMinSize sets the lower clamp of the width or height. Auto means 0.
func (ctx *Context) SetMinSize(h ElementHandle, a Axis, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.MinSize(a) == d {
			return
		}
		e.style.setMinSize(a, d)
		ctx.sizeStyleChanged(e, a)
	})
}

// SetMaxSize sets the upper clamp of the width or height. Auto means
// unbounded.
func (ctx *Context) SetMaxSize(h ElementHandle, a Axis, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.MaxSize(a) == d {
			return
		}
		e.style.setMaxSize(a, d)
		ctx.sizeStyleChanged(e, a)
	})
}

func (ctx *Context) SetWidth(h ElementHandle, d Dimension)     { ctx.SetSize(h, AxisHorizontal, d) }
func (ctx *Context) SetHeight(h ElementHandle, d Dimension)    { ctx.SetSize(h, AxisVertical, d) }
func (ctx *Context) SetMinWidth(h ElementHandle, d Dimension)  { ctx.SetMinSize(h, AxisHorizontal, d) }
func (ctx *Context) SetMinHeight(h ElementHandle, d Dimension) { ctx.SetMinSize(h, AxisVertical, d) }
func (ctx *Context) SetMaxWidth(h ElementHandle, d Dimension)  { ctx.SetMaxSize(h, AxisHorizontal, d) }
func (ctx *Context) SetMaxHeight(h ElementHandle, d Dimension) { ctx.SetMaxSize(h, AxisVertical, d) }

// sizeStyleChanged dirties e's size on a. A new flex weight also moves the
// shares of e's flexed siblings.
func (ctx *Context) sizeStyleChanged(e *element, a Axis) {
	ctx.invalidateSize(e, a)
	ctx.invalidateFlexSiblings(e, a)
}

// ============================================================================
// Position
// ============================================================================

// SetOffset sets the offset of one edge for relative and absolute
// positioning.
func (ctx *Context) SetOffset(h ElementHandle, edge Edge, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.Offset[edge] == d {
			return
		}
		e.style.Offset[edge] = d
		if !e.isAuto() {
			ctx.invalidatePosition(e, edge.Axis())
		}
	})
}

// SetPositionPriority selects whether the end edge (right or bottom) is
// authoritative on axis a.
func (ctx *Context) SetPositionPriority(h ElementHandle, a Axis, end bool) {
	ctx.mutate(h, func(e *element) {
		if e.style.EndPriority(a) == end {
			return
		}
		if a == AxisHorizontal {
			e.style.RightPriority = end
		} else {
			e.style.BottomPriority = end
		}
		if !e.isAuto() {
			ctx.invalidatePosition(e, a)
		}
	})
}

// SetPositioning switches between auto flow, relative and absolute
// positioning.
func (ctx *Context) SetPositioning(h ElementHandle, p Positioning) {
	ctx.mutate(h, func(e *element) {
		if e.style.Positioning == p {
			return
		}
		ctx.invalidateFlowMembership(e)
		ctx.invalidateSubtreeRect(e)
		e.style.Positioning = p
		ctx.invalidateFlowMembership(e)
		ctx.invalidateLayout(e)
	})
}

// SetPositionOrigin selects the parent boundary relative offsets are
// measured from.
func (ctx *Context) SetPositionOrigin(h ElementHandle, b Boundary) {
	ctx.mutate(h, func(e *element) {
		if e.style.PositionOrigin == b {
			return
		}
		e.style.PositionOrigin = b
		if e.style.Positioning == PositionRelative {
			ctx.invalidate(e, positionInvalid)
		}
	})
}

// ============================================================================
// Box edges
// ============================================================================

// SetMargin sets the margin of one edge.
func (ctx *Context) SetMargin(h ElementHandle, edge Edge, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.Margin[edge] == d {
			return
		}
		e.style.Margin[edge] = d
		ctx.invalidateSize(e, edge.Axis())
	})
}

// SetPadding sets the padding of one edge.
func (ctx *Context) SetPadding(h ElementHandle, edge Edge, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.Padding[edge] == d {
			return
		}
		e.style.Padding[edge] = d
		ctx.invalidateSize(e, edge.Axis())
	})
}

// SetBorderWidth sets the border width of one edge.
func (ctx *Context) SetBorderWidth(h ElementHandle, edge Edge, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.BorderWidth[edge] == d {
			return
		}
		e.style.BorderWidth[edge] = d
		ctx.invalidateSize(e, edge.Axis())
	})
}

// SetBorderColor sets the border color of one edge. Only paint is affected.
func (ctx *Context) SetBorderColor(h ElementHandle, edge Edge, c Color) {
	ctx.mutate(h, func(e *element) {
		if e.style.BorderColor[edge] == c {
			return
		}
		e.style.BorderColor[edge] = c
		ctx.invalidateElementRect(e)
	})
}

// SetBackgroundColor sets the background color. Only paint is affected.
func (ctx *Context) SetBackgroundColor(h ElementHandle, c Color) {
	ctx.mutate(h, func(e *element) {
		if e.style.Background == c {
			return
		}
		e.style.Background = c
		ctx.invalidateElementRect(e)
	})
}

// ============================================================================
// Children
// ============================================================================

// SetAlignment sets the alignment of flowed children along axis a.
func (ctx *Context) SetAlignment(h ElementHandle, a Axis, al Alignment) {
	ctx.mutate(h, func(e *element) {
		if e.style.Alignment(a) == al {
			return
		}
		if a == AxisHorizontal {
			e.style.HAlign = al
		} else {
			e.style.VAlign = al
		}
		ctx.invalidateFlowGroup(e, a)
	})
}

// SetChildAxis sets the axis flowed children are stacked along.
func (ctx *Context) SetChildAxis(h ElementHandle, a Axis) {
	ctx.mutate(h, func(e *element) {
		if e.style.ChildAxis == a {
			return
		}
		e.style.ChildAxis = a
		ctx.invalidateAutoSize(e)
		for _, x := range axes {
			ctx.invalidateFlowGroup(e, x)
			if e.style.FlexChildren(x) {
				ctx.invalidatePercentChildren(e, x)
			}
		}
	})
}

// SetFlexChildren turns percentage sizes of flowed children along axis a
// into flex weights.
func (ctx *Context) SetFlexChildren(h ElementHandle, a Axis, flex bool) {
	ctx.mutate(h, func(e *element) {
		if e.style.FlexChildren(a) == flex {
			return
		}
		if a == AxisHorizontal {
			e.style.FlexChildWidth = flex
		} else {
			e.style.FlexChildHeight = flex
		}
		if e.style.ChildAxis == a {
			ctx.invalidatePercentChildren(e, a)
		}
	})
}

func (ctx *Context) invalidatePercentChildren(e *element, a Axis) {
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if c.isAuto() && c.style.Size(a).IsPercent() {
			ctx.invalidateSize(c, a)
		}
	}
}

// SetChildrenSizeBoundary selects the box children's percentages refer to.
func (ctx *Context) SetChildrenSizeBoundary(h ElementHandle, b Boundary) {
	ctx.mutate(h, func(e *element) {
		if e.style.ChildrenSizeBoundary == b {
			return
		}
		e.style.ChildrenSizeBoundary = b
		for c := e.firstChild; c != nil; c = c.nextSibling {
			for _, a := range axes {
				if c.style.boxDependsOnParent(a) {
					ctx.invalidateSize(c, a)
				}
				if c.style.Positioning == PositionRelative && c.style.offsetDependsOnContainer(a) {
					ctx.invalidatePosition(c, a)
				}
			}
		}
	})
}

// ============================================================================
// Clipping and visibility
// ============================================================================

// SetClipping selects whether the element is clipped by its parent.
func (ctx *Context) SetClipping(h ElementHandle, m ClippingMode) {
	ctx.mutate(h, func(e *element) {
		if e.style.Clipping == m {
			return
		}
		e.style.Clipping = m
		ctx.invalidateSubtreeRect(e)
	})
}

// SetClippingBoundary selects the box that clips the element's children.
func (ctx *Context) SetClippingBoundary(h ElementHandle, b Boundary) {
	ctx.mutate(h, func(e *element) {
		if e.style.ClippingBoundary == b {
			return
		}
		e.style.ClippingBoundary = b
		ctx.invalidateSubtreeRect(e)
	})
}

// SetVisible shows or hides the element and its subtree. Hidden elements
// leave the flow of their parent.
func (ctx *Context) SetVisible(h ElementHandle, visible bool) {
	ctx.mutate(h, func(e *element) {
		if e.style.Visible == visible {
			return
		}
		e.style.Visible = visible
		ctx.invalidateFlowMembership(e)
		ctx.invalidateSubtreeRect(e)
	})
}

// ============================================================================
// Text
// ============================================================================

func (ctx *Context) SetFontFamily(h ElementHandle, family string) {
	ctx.mutate(h, func(e *element) {
		if e.style.FontFamily != family {
			e.style.FontFamily = family
			ctx.invalidate(e, textInvalid)
		}
	})
}

func (ctx *Context) SetFontWeight(h ElementHandle, w FontWeight) {
	ctx.mutate(h, func(e *element) {
		if e.style.FontWeight != w {
			e.style.FontWeight = w
			ctx.invalidate(e, textInvalid)
		}
	})
}

func (ctx *Context) SetFontSlant(h ElementHandle, s FontSlant) {
	ctx.mutate(h, func(e *element) {
		if e.style.FontSlant != s {
			e.style.FontSlant = s
			ctx.invalidate(e, textInvalid)
		}
	})
}

// SetFontSize sets the text size. Percentages are of the default font size.
func (ctx *Context) SetFontSize(h ElementHandle, d Dimension) {
	ctx.mutate(h, func(e *element) {
		if e.style.FontSize != d {
			e.style.FontSize = d
			ctx.invalidate(e, textInvalid)
		}
	})
}

// SetTextColor sets the text color. Only paint is affected.
func (ctx *Context) SetTextColor(h ElementHandle, c Color) {
	ctx.mutate(h, func(e *element) {
		if e.style.TextColor == c {
			return
		}
		e.style.TextColor = c
		if e.hasText() {
			ctx.invalidateElementRect(e)
		}
	})
}
