package retained

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentWidthResolvesAgainstParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	a := ctx.CreateElement()
	ctx.SetWidth(a, Percent(0.5))

	p := ctx.CreateElement()
	ctx.SetWidth(p, Abs(200))
	ctx.AppendChild(p, a)
	ctx.AttachToSurface(p, env.surf)

	assert.Equal(t, float32(100), env.layout(t, a).Width)
	env.requireQuiescent(t)
}

func TestPercentUsesChildrenSizeBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(200), Abs(100))
	for _, edge := range []Edge{EdgeLeft, EdgeRight} {
		ctx.SetPadding(p, edge, Abs(10))
		ctx.SetBorderWidth(p, edge, Abs(5))
	}
	a := env.child(p, Percent(0.5), Abs(10))
	assert.Equal(t, float32(100), env.layout(t, a).Width)

	ctx.SetChildrenSizeBoundary(p, BoundaryInnerBorder)
	assert.Equal(t, float32(95), env.layout(t, a).Width)

	ctx.SetChildrenSizeBoundary(p, BoundaryInner)
	assert.Equal(t, float32(85), env.layout(t, a).Width)

	ctx.SetPadding(p, EdgeLeft, Abs(0))
	assert.Equal(t, float32(90), env.layout(t, a).Width)
	env.requireQuiescent(t)
}

func TestCenteredHorizontalFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(200), Abs(100))
	ctx.SetChildAxis(p, AxisHorizontal)
	ctx.SetAlignment(p, AxisHorizontal, AlignCenter)

	a := env.child(p, Abs(40), Abs(10))
	b := env.child(p, Abs(60), Abs(10))

	assert.Equal(t, float32(50), env.layout(t, a).X)
	assert.Equal(t, float32(90), env.layout(t, b).X)
	assert.Equal(t, float32(0), env.layout(t, a).Y)

	ctx.SetAlignment(p, AxisVertical, AlignCenter)
	assert.Equal(t, float32(45), env.layout(t, a).Y)
	assert.Equal(t, float32(45), env.layout(t, b).Y)

	ctx.SetAlignment(p, AxisHorizontal, AlignEnd)
	assert.Equal(t, float32(100), env.layout(t, a).X)
	assert.Equal(t, float32(140), env.layout(t, b).X)
	env.requireQuiescent(t)
}

func TestFlexChildrenShareAvailableSpace(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(300), Abs(50))
	ctx.SetChildAxis(p, AxisHorizontal)
	ctx.SetFlexChildren(p, AxisHorizontal, true)

	a := env.child(p, Percent(0.1), Abs(10))
	b := env.child(p, Percent(0.2), Abs(10))

	assert.InDelta(t, 100, env.layout(t, a).Width, 1e-3)
	assert.InDelta(t, 200, env.layout(t, b).Width, 1e-3)
	assert.InDelta(t, 100, env.layout(t, b).X, 1e-3)

	// without flexing the percentages are plain ratios again
	ctx.SetFlexChildren(p, AxisHorizontal, false)
	assert.InDelta(t, 30, env.layout(t, a).Width, 1e-3)
	assert.InDelta(t, 60, env.layout(t, b).Width, 1e-3)
	env.requireQuiescent(t)
}

func TestFlexChildrenSubtractFixedSiblings(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(300), Abs(50))
	ctx.SetChildAxis(p, AxisHorizontal)
	ctx.SetFlexChildren(p, AxisHorizontal, true)

	fixed := env.child(p, Abs(60), Abs(10))
	a := env.child(p, Percent(0.5), Abs(10))
	b := env.child(p, Percent(0.5), Abs(10))

	assert.InDelta(t, 120, env.layout(t, a).Width, 1e-3)
	assert.InDelta(t, 120, env.layout(t, b).Width, 1e-3)
	assert.InDelta(t, 180, env.layout(t, b).X, 1e-3)

	ctx.SetWidth(fixed, Abs(100))
	assert.InDelta(t, 100, env.layout(t, a).Width, 1e-3)
	assert.InDelta(t, 100, env.layout(t, b).Width, 1e-3)

	ctx.SetVisible(fixed, false)
	assert.InDelta(t, 150, env.layout(t, a).Width, 1e-3)
	assert.InDelta(t, 0, env.layout(t, a).X, 1e-3)
	env.requireQuiescent(t)
}

func TestAutoSizeSumsAlongChildAxis(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Auto(), Auto())
	for edge := EdgeLeft; edge <= EdgeBottom; edge++ {
		ctx.SetPadding(p, edge, Abs(2))
	}
	a := env.child(p, Abs(30), Abs(20))
	b := env.child(p, Abs(50), Abs(10))
	ctx.SetMargin(b, EdgeTop, Abs(5))

	pl := env.layout(t, p)
	assert.Equal(t, float32(54), pl.Width)
	assert.Equal(t, float32(39), pl.Height)

	assert.Equal(t, [2]float32{2, 2}, [2]float32{env.layout(t, a).X, env.layout(t, a).Y})
	assert.Equal(t, [2]float32{2, 27}, [2]float32{env.layout(t, b).X, env.layout(t, b).Y})

	ctx.SetChildAxis(p, AxisHorizontal)
	pl = env.layout(t, p)
	assert.Equal(t, float32(84), pl.Width)
	assert.Equal(t, float32(24), pl.Height)
	assert.Equal(t, float32(32), env.layout(t, b).X)
	env.requireQuiescent(t)
}

func TestPercentChildOfAutoParentSettles(t *testing.T) {
	env := newTestEnv(t)

	p := env.root(Auto(), Auto())
	fixed := env.child(p, Abs(50), Abs(10))
	pct := env.child(p, Percent(0.5), Abs(10))

	assert.Equal(t, float32(50), env.layout(t, p).Width)
	assert.Equal(t, float32(25), env.layout(t, pct).Width)
	assert.Equal(t, float32(50), env.layout(t, fixed).Width)
	env.requireQuiescent(t)
}

func TestMinMaxClamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(200), Abs(100))
	a := env.child(p, Percent(0.5), Abs(10))
	ctx.SetMaxWidth(a, Abs(80))

	l := env.layout(t, a)
	assert.Equal(t, float32(80), l.Width)
	assert.Equal(t, float32(100), l.UnclampedWidth)

	ctx.SetMaxWidth(a, Auto())
	ctx.SetMinWidth(a, Abs(120))
	assert.Equal(t, float32(120), env.layout(t, a).Width)

	ctx.SetMinWidth(a, Percent(0.25))
	assert.Equal(t, float32(100), env.layout(t, a).Width)
	env.requireQuiescent(t)
}

func TestRelativePositioning(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(200), Abs(100))
	for edge := EdgeLeft; edge <= EdgeBottom; edge++ {
		ctx.SetBorderWidth(p, edge, Abs(5))
	}
	c := env.child(p, Abs(30), Abs(30))
	ctx.SetPositioning(c, PositionRelative)
	ctx.SetPositionOrigin(c, BoundaryInnerBorder)
	ctx.SetPositionPriority(c, AxisHorizontal, true)
	ctx.SetOffset(c, EdgeRight, Abs(10))
	ctx.SetOffset(c, EdgeTop, Abs(20))

	l := env.layout(t, c)
	assert.Equal(t, float32(155), l.X)
	assert.Equal(t, float32(25), l.Y)

	// far-edge anchoring follows the element's own size
	ctx.SetWidth(c, Abs(40))
	assert.Equal(t, float32(145), env.layout(t, c).X)

	// and the parent's
	ctx.SetWidth(p, Abs(300))
	assert.Equal(t, float32(245), env.layout(t, c).X)

	ctx.SetPositionOrigin(c, BoundaryOuter)
	assert.Equal(t, float32(250), env.layout(t, c).X)
	assert.Equal(t, float32(20), env.layout(t, c).Y)
	env.requireQuiescent(t)
}

func TestAbsolutePositioningAnchorsToSurface(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(100), Abs(100))
	ctx.SetMargin(p, EdgeLeft, Abs(20))

	c := env.child(p, Abs(100), Abs(50))
	ctx.SetPositioning(c, PositionAbsolute)
	ctx.SetOffset(c, EdgeLeft, Percent(0.1))
	ctx.SetOffset(c, EdgeTop, Abs(5))
	ctx.SetPositionPriority(c, AxisVertical, true)
	ctx.SetOffset(c, EdgeBottom, Abs(10))

	l := env.layout(t, c)
	assert.Equal(t, float32(80), l.X)
	assert.Equal(t, float32(540), l.Y)
	assert.Equal(t, l.X, l.AbsX)
	assert.Equal(t, l.Y, l.AbsY)

	ctx.ResizeSurface(env.surf, 1000, 700)
	l = env.layout(t, c)
	assert.Equal(t, float32(100), l.AbsX)
	assert.Equal(t, float32(640), l.AbsY)
	env.requireQuiescent(t)
}

func TestAbsolutePositionsFollowAncestors(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(100), Abs(100))
	ctx.SetMargin(p, EdgeLeft, Abs(20))
	mid := env.child(p, Abs(50), Abs(50))
	ctx.SetMargin(mid, EdgeTop, Abs(7))
	leaf := env.child(mid, Abs(10), Abs(10))

	l := env.layout(t, leaf)
	assert.Equal(t, float32(20), l.AbsX)
	assert.Equal(t, float32(7), l.AbsY)
	assert.Equal(t, float32(0), l.X)

	ctx.SetMargin(p, EdgeLeft, Abs(40))
	ctx.SetMargin(p, EdgeTop, Abs(3))
	l = env.layout(t, leaf)
	assert.Equal(t, float32(40), l.AbsX)
	assert.Equal(t, float32(10), l.AbsY)
	assert.Equal(t, XYWH(40, 10, 10, 10), ctx.AbsoluteRect(leaf))
	env.requireQuiescent(t)
}

func TestTextDrivesAutoSize(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	e := env.root(Auto(), Auto())
	ctx.SetText(e, "hello")

	l := env.layout(t, e)
	assert.Equal(t, float32(25), l.Width)
	assert.Equal(t, float32(10), l.Height)

	ctx.SetPadding(e, EdgeLeft, Abs(2))
	assert.Equal(t, float32(27), env.layout(t, e).Width)

	ctx.SetFontSize(e, Pt(20))
	l = env.layout(t, e)
	assert.Equal(t, float32(52), l.Width)
	assert.Equal(t, float32(20), l.Height)
	assert.Equal(t, 1, env.fonts.live(), "old font must be released")

	// flowed children take precedence over text
	env.child(e, Abs(5), Abs(5))
	assert.Equal(t, float32(7), env.layout(t, e).Width)
	env.requireQuiescent(t)
}

func TestHiddenChildLeavesFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(50), Auto())
	env.child(p, Abs(10), Abs(10))
	mid := env.child(p, Abs(10), Abs(10))
	last := env.child(p, Abs(10), Abs(10))
	assert.Equal(t, float32(30), env.layout(t, p).Height)
	assert.Equal(t, float32(20), env.layout(t, last).Y)

	ctx.SetVisible(mid, false)
	assert.Equal(t, float32(20), env.layout(t, p).Height)
	assert.Equal(t, float32(10), env.layout(t, last).Y)

	ctx.SetVisible(mid, true)
	assert.Equal(t, float32(20), env.layout(t, last).Y)
	env.requireQuiescent(t)
}

func TestPositionedChildLeavesFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(50), Auto())
	first := env.child(p, Abs(10), Abs(10))
	last := env.child(p, Abs(10), Abs(10))
	assert.Equal(t, float32(10), env.layout(t, last).Y)

	ctx.SetPositioning(first, PositionRelative)
	assert.Equal(t, float32(0), env.layout(t, last).Y)
	assert.Equal(t, float32(10), env.layout(t, p).Height)

	ctx.SetPositioning(first, PositionAuto)
	assert.Equal(t, float32(10), env.layout(t, last).Y)
	assert.Equal(t, float32(20), env.layout(t, p).Height)
	env.requireQuiescent(t)
}

func TestBackgroundChangeDoesNotRevalidateAncestors(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Auto(), Auto())
	mid := env.child(p, Auto(), Auto())
	leaf := env.child(mid, Abs(10), Abs(10))
	env.requireQuiescent(t)

	ctx.BeginBatch()
	ctx.SetBackgroundColor(leaf, RGB(255, 0, 0))
	env.requireQuiescent(t)
	assert.Equal(t, XYWH(0, 0, 10, 10), ctx.SurfaceInvalidRect(env.surf))
	ctx.EndBatch()

	assert.True(t, ctx.SurfaceInvalidRect(env.surf).Empty())
}

func TestBatchCoalescesLayoutEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(100), Abs(100))
	var sizes []float32
	ctx.AddEventHandler(p, EventSize, func(ev *Event) {
		sizes = append(sizes, ev.Width)
	})

	ctx.BeginBatch()
	ctx.SetWidth(p, Abs(10))
	ctx.SetWidth(p, Abs(20))
	ctx.BeginBatch()
	ctx.SetWidth(p, Abs(30))
	ctx.EndBatch()
	assert.Empty(t, sizes)
	assert.True(t, ctx.InBatch())
	ctx.EndBatch()

	assert.Equal(t, []float32{30}, sizes)
	assert.False(t, ctx.InBatch())
}

func TestMoveEventReportsAbsolutePosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(100), Abs(100))
	c := env.child(p, Abs(10), Abs(10))

	var moves [][2]float32
	ctx.AddEventHandler(c, EventMove, func(ev *Event) {
		moves = append(moves, [2]float32{ev.X, ev.Y})
	})
	ctx.SetMargin(p, EdgeTop, Abs(15))
	assert.Equal(t, [][2]float32{{0, 15}}, moves)
}

func TestEndBatchUnderflowPanicsWithAssertions(t *testing.T) {
	env := newTestEnv(t)
	require.Panics(t, func() { env.ctx.EndBatch() })
}

func TestValidateElementLayoutsInsideBatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	p := env.root(Abs(100), Abs(100))
	ctx.BeginBatch()
	ctx.SetWidth(p, Abs(60))
	assert.Equal(t, 1, ctx.PendingValidations())
	ctx.ValidateElementLayouts()
	assert.Equal(t, float32(60), env.layout(t, p).Width)
	assert.Zero(t, ctx.PendingValidations())
	ctx.EndBatch()
}

func TestValidationLimitAbandonsQueue(t *testing.T) {
	opts := DefaultOptions()
	opts.ValidationLimit = 2
	ctx := NewContext(opts, nil, nil)

	var hs []ElementHandle
	ctx.BeginBatch()
	for range 5 {
		h := ctx.CreateElement()
		ctx.SetWidth(h, Abs(10))
		hs = append(hs, h)
	}
	require.Equal(t, 5, ctx.PendingValidations())
	ctx.EndBatch()

	assert.Zero(t, ctx.PendingValidations(), "queue dropped once the limit is hit")
	last, ok := ctx.Layout(hs[4])
	require.True(t, ok)
	assert.Zero(t, last.Width, "abandoned elements keep their old layout")

	// a later, smaller pass validates normally
	ctx.SetWidth(hs[4], Abs(30))
	last, _ = ctx.Layout(hs[4])
	assert.Equal(t, float32(30), last.Width)

	opts.DebugAssertions = true
	strict := NewContext(opts, nil, nil)
	strict.BeginBatch()
	for range 5 {
		strict.CreateElement()
	}
	assert.Panics(t, strict.EndBatch)
}
