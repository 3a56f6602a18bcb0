package retained

import "github.com/agiangrant/boxtree/internal/handle"

func (ctx *Context) element(h ElementHandle) (*element, bool) {
	return ctx.elements.Get(handle.Handle(h))
}

func (ctx *Context) elementValid(h ElementHandle) bool {
	return h != 0 && ctx.elements.Valid(handle.Handle(h))
}

// ============================================================================
// Invalid-element queue
// ============================================================================

// invalidate raises flags on e and enqueues it if it was clean.
func (ctx *Context) invalidate(e *element, f dirtyFlags) {
	if e.text == nil {
		f &^= textInvalid
	}
	if f == 0 {
		return
	}
	e.layout.flags |= f
	if e.layout.queued == nil {
		e.layout.queued = ctx.invalid.PushBack(e)
	}
}

// clearFlags lowers flags on e and drops it from the queue once clean.
func (ctx *Context) clearFlags(e *element, f dirtyFlags) {
	e.layout.flags &^= f
	if e.layout.flags == 0 && e.layout.queued != nil {
		ctx.invalid.Remove(e.layout.queued)
		e.layout.queued = nil
	}
}

// forget removes every reference the layout context holds to e.
func (ctx *Context) forget(e *element) {
	ctx.clearFlags(e, e.layout.flags)
	ctx.absPending.Remove(e)
	ctx.validated.Remove(e)
}

func (ctx *Context) invalidateSize(e *element, a Axis) {
	ctx.invalidate(e, sizeFlag(a))
}

func (ctx *Context) invalidatePosition(e *element, a Axis) {
	ctx.invalidate(e, positionFlag(a))
}

// invalidateLayout marks size, position and text of e dirty.
func (ctx *Context) invalidateLayout(e *element) {
	ctx.invalidate(e, layoutInvalid|textInvalid)
	ctx.queueAbsoluteUpdate(e)
}

func (ctx *Context) invalidateSubtreeLayout(e *element) {
	ctx.invalidateLayout(e)
	for c := e.firstChild; c != nil; c = c.nextSibling {
		ctx.invalidateSubtreeLayout(c)
	}
}

// invalidateFlowGroup dirties the auto-flow positions of p's children on a.
// Invalidating one member is enough: validating it places the whole group.
func (ctx *Context) invalidateFlowGroup(p *element, a Axis) {
	if p == nil {
		return
	}
	for c := p.firstChild; c != nil; c = c.nextSibling {
		if c.isAuto() {
			ctx.invalidatePosition(c, a)
			return
		}
	}
}

// invalidateAutoSize dirties the axes of e that are sized from children.
func (ctx *Context) invalidateAutoSize(e *element) {
	if e == nil {
		return
	}
	for _, a := range axes {
		if e.style.Size(a).IsAuto() {
			ctx.invalidateSize(e, a)
		}
	}
}

// invalidateFlexSiblings dirties the flexed siblings of e on a.
func (ctx *Context) invalidateFlexSiblings(e *element, a Axis) {
	p := e.parent
	if p == nil || !p.style.FlexChildren(a) || p.style.ChildAxis != a {
		return
	}
	for c := p.firstChild; c != nil; c = c.nextSibling {
		if c != e && c.isAuto() && c.style.Size(a).IsPercent() {
			ctx.invalidateSize(c, a)
		}
	}
}

// invalidateFlowMembership is used when e joins or leaves its parent's
// auto flow, by reparenting, repositioning or a visibility change.
func (ctx *Context) invalidateFlowMembership(e *element) {
	p := e.parent
	if p == nil {
		return
	}
	ctx.invalidateAutoSize(p)
	for _, a := range axes {
		ctx.invalidateFlexSiblings(e, a)
		ctx.invalidateFlowGroup(p, a)
	}
}

// invalidateInnerDependents handles a resolved border (b ==
// BoundaryInnerBorder) or padding (b == BoundaryInner) change on axis a of e:
// children measuring or positioning against an inner box are dirtied.
func (ctx *Context) invalidateInnerDependents(e *element, a Axis, b Boundary) {
	refChanged := e.style.ChildrenSizeBoundary >= b
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if refChanged && c.style.boxDependsOnParent(a) {
			ctx.invalidateSize(c, a)
		}
		if c.style.Positioning == PositionRelative &&
			(c.style.PositionOrigin >= b || (refChanged && c.style.offsetDependsOnContainer(a))) {
			ctx.invalidatePosition(c, a)
		}
	}
	ctx.invalidateFlowGroup(e, a)
}

// ============================================================================
// Absolute position bookkeeping
// ============================================================================

// queueAbsoluteUpdate schedules e's surface-relative position, and that of
// its descendants, for recomputation after the queue drains. The pending set
// never holds an element together with one of its ancestors.
func (ctx *Context) queueAbsoluteUpdate(e *element) {
	if ctx.absPending.Contains(e) {
		return
	}
	for p := e.parent; p != nil; p = p.parent {
		if ctx.absPending.Contains(p) {
			return
		}
	}
	for _, v := range ctx.absPending.Values() {
		if m := v.(*element); e.isAncestorOf(m) {
			ctx.absPending.Remove(m)
		}
	}
	ctx.absPending.Add(e)
}

// markValidated records that e changed size or position in this pass.
func (ctx *Context) markValidated(e *element) {
	ctx.validated.Add(e)
}

var axes = [2]Axis{AxisHorizontal, AxisVertical}
