package retained

// layoutChange is a size or move notification collected after a pass.
type layoutChange struct {
	handle ElementHandle
	sized  bool
	moved  bool
	size   [2]float32
	pos    [2]float32
}

// ValidateElementLayouts drains the invalid-element queue to a fixed point,
// recomputes absolute positions and posts EventSize/EventMove for every
// element whose size or position changed. It does not paint.
func (ctx *Context) ValidateElementLayouts() {
	changes := ctx.validateLayouts()
	ctx.BeginBatch()
	ctx.postLayoutEvents(changes)
	ctx.EndBatch()
}

// PendingValidations returns the number of elements waiting for validation.
func (ctx *Context) PendingValidations() int {
	return ctx.invalid.Len()
}

func (ctx *Context) validateLayouts() []layoutChange {
	steps := 0
	for front := ctx.invalid.Front(); front != nil; front = ctx.invalid.Front() {
		steps++
		if steps > ctx.opts.ValidationLimit {
			ctx.assert(false, "layout did not converge after %d steps", ctx.opts.ValidationLimit)
			ctx.abandonQueue()
			break
		}

		e := front.Value.(*element)
		ctx.validateElement(e)

		// re-invalidated by its own validation: give the rest of the queue a turn
		if e.layout.queued != nil {
			ctx.invalid.MoveToBack(e.layout.queued)
		}
	}
	if steps > 0 {
		layoutLogger.Debug("validation pass", "steps", steps, "changed", ctx.validated.Size())
	}

	ctx.updateAbsolutePositions()
	return ctx.collectChanges()
}

func (ctx *Context) abandonQueue() {
	for front := ctx.invalid.Front(); front != nil; front = ctx.invalid.Front() {
		e := front.Value.(*element)
		ctx.clearFlags(e, e.layout.flags)
	}
}

// validateElement validates whatever is flagged on e. Each flag is cleared
// before the matching step runs so that the step may raise it again.
func (ctx *Context) validateElement(e *element) {
	if e.layout.flags&textInvalid != 0 {
		ctx.clearFlags(e, textInvalid)
		ctx.validateText(e)
	}
	if e.layout.flags&widthInvalid != 0 {
		ctx.clearFlags(e, widthInvalid)
		ctx.validateSize(e, AxisHorizontal)
	}
	if e.layout.flags&heightInvalid != 0 {
		ctx.clearFlags(e, heightInvalid)
		ctx.validateSize(e, AxisVertical)
	}
	if e.layout.flags&positionInvalid != 0 {
		ctx.clearFlags(e, positionInvalid)
		ctx.validatePosition(e)
	}
}

// ============================================================================
// Size resolution
// ============================================================================

func (ctx *Context) validateSize(e *element, a Axis) {
	l := &e.layout
	oldSize, oldOuter := l.size[a], l.outer(a)
	oldMargin, oldBorder, oldPadding := l.margin, l.border, l.padding

	ctx.resolveEdges(e, a)
	if l.margin != oldMargin {
		ctx.invalidatePosition(e, a)
	}
	if l.border != oldBorder || l.padding != oldPadding {
		b := BoundaryInner
		if l.border != oldBorder {
			b = BoundaryInnerBorder
		}
		ctx.invalidateInnerDependents(e, a, b)
		ctx.invalidateElementRect(e)
	}
	raw := ctx.calculateSize(e, a, e.style.Size(a), true)
	l.unclamped[a] = raw
	l.size[a] = ctx.clampSize(e, a, raw)

	sized := l.size[a] != oldSize
	outer := l.outer(a) != oldOuter
	if sized || outer {
		ctx.sizeChanged(e, a, sized, outer)
	}
}

// resolveEdges converts margin, border and padding on both edges of a.
func (ctx *Context) resolveEdges(e *element, a Axis) {
	ref := ctx.referenceSize(e, a)
	for _, edge := range [2]Edge{startEdge(a), endEdge(a)} {
		e.layout.margin[edge] = ctx.resolveLength(a, e.style.Margin[edge], ref)
		e.layout.border[edge] = ctx.resolveLength(a, e.style.BorderWidth[edge], ref)
		e.layout.padding[edge] = ctx.resolveLength(a, e.style.Padding[edge], ref)
	}
}

// resolveLength converts a dimension to device units. Percentages are taken
// of ref; auto resolves to 0.
func (ctx *Context) resolveLength(a Axis, d Dimension, ref float32) float32 {
	switch d.Unit {
	case UnitAbsolute, UnitPixels:
		return d.Value
	case UnitPoints:
		return d.Value * ctx.scale[a]
	case UnitPercent:
		return d.Value * ref
	}
	return 0
}

// referenceSize is the dimension percentages of e are taken of: the parent's
// children-size boundary, the surface for roots, 0 when detached.
func (ctx *Context) referenceSize(e *element, a Axis) float32 {
	if p := e.parent; p != nil {
		s, end := p.layout.inset(a, p.style.ChildrenSizeBoundary)
		return max(p.layout.size[a]-s-end, 0)
	}
	if e.surface != nil {
		return e.surface.size[a]
	}
	return 0
}

func (ctx *Context) calculateSize(e *element, a Axis, d Dimension, allowFlex bool) float32 {
	switch d.Unit {
	case UnitAuto:
		return ctx.autoSize(e, a)
	case UnitPercent:
		if allowFlex && isFlexed(e, a) {
			return ctx.flexSize(e, a)
		}
	}
	return ctx.resolveLength(a, d, ctx.referenceSize(e, a))
}

func (ctx *Context) clampSize(e *element, a Axis, v float32) float32 {
	lo, hi := float32(0), unbounded
	if m := e.style.MinSize(a); !m.IsAuto() {
		lo = ctx.calculateSize(e, a, m, false)
	}
	if m := e.style.MaxSize(a); !m.IsAuto() {
		hi = ctx.calculateSize(e, a, m, false)
	}
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// isFlexed reports whether e's percentage on a is a flex weight.
func isFlexed(e *element, a Axis) bool {
	p := e.parent
	return p != nil &&
		p.style.FlexChildren(a) &&
		p.style.ChildAxis == a &&
		e.isAuto() &&
		e.style.Size(a).IsPercent()
}

// flexSize hands e its weighted share of the space left over by the fixed
// parts of all flowed siblings. Margins, borders and padding of flexed
// siblings count as fixed.
func (ctx *Context) flexSize(e *element, a Axis) float32 {
	var fixed, weights float32
	for c := e.parent.firstChild; c != nil; c = c.nextSibling {
		if !c.inFlow() {
			continue
		}
		if d := c.style.Size(a); d.IsPercent() {
			weights += d.Value
			fixed += c.layout.margin[startEdge(a)] + c.layout.margin[endEdge(a)] + c.layout.decoration(a)
		} else {
			fixed += c.layout.outer(a)
		}
	}

	deco := e.layout.decoration(a)
	weight := e.style.Size(a).Value
	if weights <= 0 || weight <= 0 {
		return deco
	}
	avail := max(ctx.referenceSize(e, a)-fixed, 0)
	return avail*(weight/weights) + deco
}

// autoSize sizes e to its flowed children, or to its text when it has none.
// Along the child axis outer sizes add up, across it the largest wins.
func (ctx *Context) autoSize(e *element, a Axis) float32 {
	var content float32
	hasChildren := false
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if !c.inFlow() {
			continue
		}
		hasChildren = true
		o := c.layout.outer(a)
		if e.style.ChildAxis == a {
			content += o
		} else {
			content = max(content, o)
		}
	}
	if !hasChildren && e.hasText() {
		content = e.text.measured[a]
	}
	return e.layout.decoration(a) + content
}

// sizeChanged propagates a changed size (sized) or outer size (outer) of e
// on axis a to everything whose layout reads it.
func (ctx *Context) sizeChanged(e *element, a Axis, sized, outer bool) {
	ctx.markValidated(e)
	layoutLogger.Debug("size changed", "element", e.handle, "axis", a, "size", e.layout.size[a])

	if sized {
		for c := e.firstChild; c != nil; c = c.nextSibling {
			if c.style.boxDependsOnParent(a) {
				ctx.invalidateSize(c, a)
			}
			if c.style.Positioning == PositionRelative && c.style.offsetDependsOnContainer(a) {
				ctx.invalidatePosition(c, a)
			}
		}
		if e.style.Alignment(a) != AlignStart {
			ctx.invalidateFlowGroup(e, a)
		}
	}

	if p := e.parent; outer && p != nil && e.inFlow() {
		// a percentage child of an auto parent would only chase its own tail
		if p.style.Size(a).IsAuto() && !e.style.Size(a).IsPercent() {
			ctx.invalidateSize(p, a)
		}
		ctx.invalidateFlexSiblings(e, a)
		if p.style.ChildAxis == a || p.style.Alignment(a) != AlignStart {
			ctx.invalidateFlowGroup(p, a)
		}
	}

	if !e.isAuto() && e.style.EndPriority(a) {
		ctx.invalidatePosition(e, a)
	}
}

// ============================================================================
// Post-validation
// ============================================================================

// collectChanges repaints the old and new rects of every element validated
// in this pass and returns the ones whose reported size or position moved.
func (ctx *Context) collectChanges() []layoutChange {
	if ctx.validated.Empty() {
		return nil
	}
	changes := make([]layoutChange, 0, ctx.validated.Size())
	for _, v := range ctx.validated.Values() {
		e := v.(*element)
		ctx.repaintElement(e)

		l := &e.layout
		c := layoutChange{
			handle: e.handle,
			sized:  l.size != l.reportedSize,
			moved:  l.abs != l.reportedPos,
			size:   l.size,
			pos:    l.abs,
		}
		l.reportedSize, l.reportedPos = l.size, l.abs
		if c.sized || c.moved {
			changes = append(changes, c)
		}
	}
	ctx.validated.Clear()
	return changes
}

// postLayoutEvents posts size and move events. Handlers may delete elements
// listed later; postEvent skips those.
func (ctx *Context) postLayoutEvents(changes []layoutChange) {
	for _, c := range changes {
		if c.sized {
			ctx.postEvent(&Event{Type: EventSize, Element: c.handle, Width: c.size[0], Height: c.size[1]})
		}
		if c.moved {
			ctx.postEvent(&Event{Type: EventMove, Element: c.handle, X: c.pos[0], Y: c.pos[1]})
		}
	}
}
