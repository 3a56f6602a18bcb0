package retained

// container describes the box an element is anchored in.
type container struct {
	size  [2]float32
	inset [4]float32
	ref   [2]float32 // percentage reference for offsets
}

func (ctx *Context) validatePosition(e *element) {
	switch e.style.Positioning {
	case PositionAbsolute:
		ctx.validateAnchoredPosition(e, surfaceContainer(e))
	case PositionRelative:
		ctx.validateAnchoredPosition(e, ctx.parentContainer(e))
	default:
		if e.parent != nil {
			ctx.validateFlowGroup(e.parent)
			return
		}
		// roots do not flow; margins offset them from the surface corner
		ctx.setRelativePosition(e, [2]float32{e.layout.margin[EdgeLeft], e.layout.margin[EdgeTop]})
	}
}

func surfaceContainer(e *element) container {
	var c container
	if e.surface != nil {
		c.size = e.surface.size
		c.ref = e.surface.size
	}
	return c
}

func (ctx *Context) parentContainer(e *element) container {
	p := e.parent
	if p == nil {
		return surfaceContainer(e)
	}
	return container{
		size:  p.layout.size,
		inset: p.layout.insets(e.style.PositionOrigin),
		ref:   [2]float32{ctx.referenceSize(e, AxisHorizontal), ctx.referenceSize(e, AxisVertical)},
	}
}

// validateAnchoredPosition places e by its authoritative edge per axis. A
// far-edge anchor subtracts e's own size and trailing margin.
func (ctx *Context) validateAnchoredPosition(e *element, c container) {
	l := &e.layout
	var pos [2]float32
	for _, a := range axes {
		s, end := startEdge(a), endEdge(a)
		if e.style.EndPriority(a) {
			off := ctx.resolveLength(a, e.style.Offset[end], c.ref[a])
			pos[a] = c.size[a] - c.inset[end] - off - l.size[a] - l.margin[end]
		} else {
			off := ctx.resolveLength(a, e.style.Offset[s], c.ref[a])
			pos[a] = c.inset[s] + off + l.margin[s]
		}
	}
	ctx.setRelativePosition(e, pos)
}

// validateFlowGroup places every auto-positioned child of p in one go and
// marks all of them clean, whichever member triggered the call.
//
// The first pass measures the flow extent of the visible members, the
// second assigns running positions along the child axis and aligned
// positions across it. Hidden members are placed but do not advance the
// flow.
func (ctx *Context) validateFlowGroup(p *element) {
	sp := flowMembers(p)
	defer releaseFlowMembers(sp)
	members := *sp

	flow := p.style.ChildAxis
	cross := flow.other()
	fs, fe := p.layout.inset(flow, BoundaryInner)
	cs, ce := p.layout.inset(cross, BoundaryInner)
	flowAvail := p.layout.size[flow] - fs - fe
	crossAvail := p.layout.size[cross] - cs - ce

	var total float32
	for _, c := range members {
		if c.style.Visible {
			total += c.layout.outer(flow)
		}
	}

	cursor := fs + alignOffset(p.style.Alignment(flow), flowAvail, total)
	for _, c := range members {
		var pos [2]float32
		pos[flow] = cursor + c.layout.margin[startEdge(flow)]
		if c.style.Visible {
			cursor += c.layout.outer(flow)
		}
		pos[cross] = cs +
			alignOffset(p.style.Alignment(cross), crossAvail, c.layout.outer(cross)) +
			c.layout.margin[startEdge(cross)]

		ctx.clearFlags(c, positionInvalid)
		ctx.setRelativePosition(c, pos)
	}
}

func alignOffset(al Alignment, avail, used float32) float32 {
	switch al {
	case AlignCenter:
		return (avail - used) / 2
	case AlignEnd:
		return avail - used
	}
	return 0
}

func (ctx *Context) setRelativePosition(e *element, pos [2]float32) {
	if e.layout.rel == pos {
		return
	}
	e.layout.rel = pos
	ctx.queueAbsoluteUpdate(e)
	ctx.markValidated(e)
}

// ============================================================================
// Absolute positions
// ============================================================================

// updateAbsolutePositions recomputes surface-relative positions of every
// pending element and its descendants.
func (ctx *Context) updateAbsolutePositions() {
	for _, v := range ctx.absPending.Values() {
		ctx.updateAbsolute(v.(*element))
	}
	ctx.absPending.Clear()
}

// updateAbsolute applies abs = rel + parent.abs, except for absolutely
// positioned elements whose rel is already surface-relative.
func (ctx *Context) updateAbsolute(e *element) {
	l := &e.layout
	abs := l.rel
	if p := e.parent; p != nil && e.style.Positioning != PositionAbsolute {
		abs[0] += p.layout.abs[0]
		abs[1] += p.layout.abs[1]
	}
	if abs != l.abs {
		l.abs = abs
		ctx.markValidated(e)
	}
	for c := e.firstChild; c != nil; c = c.nextSibling {
		ctx.updateAbsolute(c)
	}
}
