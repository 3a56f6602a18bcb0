package retained

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/agiangrant/boxtree/internal/handle"
	"github.com/stretchr/testify/require"
)

// drawCall is one recorded Renderer call.
type drawCall struct {
	op    string
	rect  Rect
	color Color
	text  string
	x, y  float32
}

func (c drawCall) String() string {
	return fmt.Sprintf("%s %v", c.op, c.rect)
}

// recordingRenderer records every call instead of drawing.
type recordingRenderer struct {
	calls   []drawCall
	noText  bool
	surface SurfaceHandle
	depth   int
}

func (r *recordingRenderer) BeginPaintSurface(s SurfaceHandle, w, h float32) {
	r.surface = s
	r.depth++
	r.calls = append(r.calls, drawCall{op: "begin", rect: XYWH(0, 0, w, h)})
}

func (r *recordingRenderer) EndPaintSurface() {
	r.depth--
	r.calls = append(r.calls, drawCall{op: "end"})
}

func (r *recordingRenderer) Clear(rect Rect) {
	r.calls = append(r.calls, drawCall{op: "clear", rect: rect})
}

func (r *recordingRenderer) SetClippingRect(rect Rect) {
	r.calls = append(r.calls, drawCall{op: "clip", rect: rect})
}

func (r *recordingRenderer) DrawRectangle(rect Rect, c Color) {
	r.calls = append(r.calls, drawCall{op: "rect", rect: rect, color: c})
}

func (r *recordingRenderer) CanDrawText(FontHandle) bool { return !r.noText }

func (r *recordingRenderer) DrawText(run TextRun) {
	r.calls = append(r.calls, drawCall{op: "text", text: run.Text, x: run.X, y: run.Y, color: run.Color})
}

func (r *recordingRenderer) reset() { r.calls = nil }

func (r *recordingRenderer) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.op
	}
	return out
}

func (r *recordingRenderer) callsOf(op string) []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

// fixedFonts measures every rune as half the font size wide and one font
// size high.
type fixedFonts struct {
	next  FontHandle
	specs map[FontHandle]FontSpec
	refs  map[FontHandle]int
}

func newFixedFonts() *fixedFonts {
	return &fixedFonts{specs: map[FontHandle]FontSpec{}, refs: map[FontHandle]int{}}
}

func (f *fixedFonts) AcquireFont(spec FontSpec) FontHandle {
	f.next++
	f.specs[f.next] = spec
	f.refs[f.next] = 1
	return f.next
}

func (f *fixedFonts) ReleaseFont(h FontHandle) {
	f.refs[h]--
	if f.refs[h] <= 0 {
		delete(f.refs, h)
	}
}

func (f *fixedFonts) MeasureString(h FontHandle, s string) (float32, float32) {
	size := f.specs[h].Size
	return float32(utf8.RuneCountInString(s)) * size / 2, size
}

func (f *fixedFonts) Metrics(h FontHandle) FontMetrics {
	size := f.specs[h].Size
	return FontMetrics{Ascent: size * 0.8, Descent: size * 0.2, LineHeight: size}
}

func (f *fixedFonts) live() int { return len(f.refs) }

// testEnv bundles a context with one 800x600 surface.
type testEnv struct {
	ctx   *Context
	surf  SurfaceHandle
	rend  *recordingRenderer
	fonts *fixedFonts
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	opts := DefaultOptions()
	opts.DebugAssertions = true
	rend := &recordingRenderer{}
	fonts := newFixedFonts()
	ctx := NewContext(opts, rend, fonts)
	s := ctx.CreateSurface(800, 600)
	require.NotZero(t, s)
	return &testEnv{ctx: ctx, surf: s, rend: rend, fonts: fonts}
}

// root creates a top-level element of the given size on the surface.
func (env *testEnv) root(w, h Dimension) ElementHandle {
	e := env.ctx.CreateElement()
	env.ctx.SetWidth(e, w)
	env.ctx.SetHeight(e, h)
	env.ctx.AttachToSurface(e, env.surf)
	return e
}

// child creates an element of the given size appended to parent.
func (env *testEnv) child(parent ElementHandle, w, h Dimension) ElementHandle {
	e := env.ctx.CreateElement()
	env.ctx.SetWidth(e, w)
	env.ctx.SetHeight(e, h)
	env.ctx.AppendChild(parent, e)
	return e
}

func (env *testEnv) layout(t *testing.T, h ElementHandle) LayoutInfo {
	t.Helper()
	l, ok := env.ctx.Layout(h)
	require.True(t, ok, "element %v not valid", h)
	return l
}

// requireQuiescent checks that no element carries dirty flags.
func (env *testEnv) requireQuiescent(t *testing.T) {
	t.Helper()
	require.Zero(t, env.ctx.PendingValidations())
	env.ctx.elements.Each(func(_ handle.Handle, e *element) bool {
		require.Zero(t, e.layout.flags, "element %v still dirty", e.handle)
		require.Nil(t, e.layout.queued)
		return true
	})
}
