// Package retained implements a retained-mode GUI element tree with a
// CSS-like box layout engine.
//
// A Context owns elements and surfaces, addressed by generation-checked
// handles. Mutations raise layout invalidation flags; when the outermost
// batch closes the layout engine validates the dirty elements to a fixed
// point, invalid surface rectangles are repainted through a Renderer, and
// size/move events are posted to handlers.
//
// A Context is not safe for concurrent use. Callers that share one across
// goroutines must serialize all access.
package retained

import (
	"container/list"
	"fmt"
	"log/slog"
	"os"

	"github.com/agiangrant/boxtree/internal/handle"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// logLevel is shared by all loggers of this package.
var logLevel = func() *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(slog.LevelWarn)
	return v
}()

var (
	layoutLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).With("subsystem", "layout")
	paintLogger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).With("subsystem", "paint")
	eventLogger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).With("subsystem", "event")
)

// SetLogLevel changes the level of the package loggers.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// Options configures a Context.
type Options struct {
	// BaseDPI is the DPI at which one point equals one device unit.
	BaseDPI float32

	// DPIX and DPIY are the initial display DPI per axis.
	DPIX, DPIY float32

	// DefaultFontFamily and DefaultFontSize seed the style of new elements.
	DefaultFontFamily string
	DefaultFontSize   Dimension

	// PaintingMode is the mode new surfaces start in.
	PaintingMode PaintingMode

	// MaxElements and MaxSurfaces cap the handle tables. 0 means unbounded.
	MaxElements int
	MaxSurfaces int

	// ValidationLimit caps the number of queue steps per validation pass.
	ValidationLimit int

	// DebugAssertions turns broken invariants into panics.
	DebugAssertions bool
}

// DefaultOptions returns 96 DPI, a 10pt sans font and immediate painting.
func DefaultOptions() Options {
	return Options{
		BaseDPI:           96,
		DPIX:              96,
		DPIY:              96,
		DefaultFontFamily: "sans",
		DefaultFontSize:   Pt(10),
		PaintingMode:      PaintImmediate,
		ValidationLimit:   1 << 20,
	}
}

// Context is the root object of the GUI core.
type Context struct {
	opts Options

	elements *handle.Table[element]
	surfaces *handle.Table[surface]

	renderer Renderer
	fonts    FontManager

	dpi   [2]float32
	scale [2]float32

	// Layout context
	invalid    *list.List         // *element with flags != 0
	absPending *linkedhashset.Set // *element whose absolute position must be recomputed
	validated  *linkedhashset.Set // *element whose size or position changed this pass

	nextSeq uint64 // element creation counter

	batchDepth int
	flushing   bool

	globalHandlers []*eventHandler
	nextHandlerID  HandlerID
}

// NewContext creates a context. The renderer and the font manager may be
// nil; without a renderer nothing is drawn, without a font manager text
// measures as zero.
func NewContext(opts Options, renderer Renderer, fonts FontManager) *Context {
	def := DefaultOptions()
	if opts.BaseDPI <= 0 {
		opts.BaseDPI = def.BaseDPI
	}
	if opts.DPIX <= 0 {
		opts.DPIX = opts.BaseDPI
	}
	if opts.DPIY <= 0 {
		opts.DPIY = opts.BaseDPI
	}
	if opts.DefaultFontFamily == "" {
		opts.DefaultFontFamily = def.DefaultFontFamily
	}
	if opts.DefaultFontSize.Unit == UnitAuto || opts.DefaultFontSize.Value <= 0 {
		opts.DefaultFontSize = def.DefaultFontSize
	}
	if opts.ValidationLimit <= 0 {
		opts.ValidationLimit = def.ValidationLimit
	}

	ctx := &Context{
		opts:       opts,
		elements:   handle.NewTable[element](opts.MaxElements),
		surfaces:   handle.NewTable[surface](opts.MaxSurfaces),
		renderer:   renderer,
		fonts:      fonts,
		invalid:    list.New(),
		absPending: linkedhashset.New(),
		validated:  linkedhashset.New(),
	}
	ctx.dpi = [2]float32{opts.DPIX, opts.DPIY}
	ctx.scale = [2]float32{opts.DPIX / opts.BaseDPI, opts.DPIY / opts.BaseDPI}
	return ctx
}

// Options returns the options the context was created with, with DPI
// reflecting the current values.
func (ctx *Context) Options() Options {
	o := ctx.opts
	o.DPIX, o.DPIY = ctx.dpi[0], ctx.dpi[1]
	return o
}

// Renderer returns the renderer the context paints through.
func (ctx *Context) Renderer() Renderer { return ctx.renderer }

// ============================================================================
// Batching
// ============================================================================

// BeginBatch opens a batch. Batches nest; layout validation, painting and
// event posting are deferred until the outermost batch is closed.
func (ctx *Context) BeginBatch() {
	ctx.batchDepth++
}

// EndBatch closes a batch. Closing the outermost one validates all dirty
// elements, repaints immediate-mode surfaces and posts size/move events.
func (ctx *Context) EndBatch() {
	if ctx.batchDepth == 0 {
		ctx.assert(false, "EndBatch without BeginBatch")
		return
	}
	ctx.batchDepth--
	if ctx.batchDepth > 0 || ctx.flushing {
		return
	}
	ctx.flush()
}

// InBatch reports whether a batch is open.
func (ctx *Context) InBatch() bool {
	return ctx.batchDepth > 0
}

// maxFlushRounds bounds how often event handlers may re-dirty the tree from
// within a single flush.
const maxFlushRounds = 64

// flush runs validation, painting and event posting until handlers stop
// producing new work.
func (ctx *Context) flush() {
	ctx.flushing = true
	defer func() { ctx.flushing = false }()

	for round := 0; ; round++ {
		changes := ctx.validateLayouts()

		ctx.batchDepth++
		ctx.paintInvalidSurfaces()
		ctx.postLayoutEvents(changes)
		ctx.batchDepth--

		if ctx.invalid.Len() == 0 && !ctx.hasPendingPaint() {
			return
		}
		if round >= maxFlushRounds {
			layoutLogger.Warn("flush did not settle, giving up", "rounds", round)
			return
		}
	}
}

// ============================================================================
// Invariants
// ============================================================================

// assert reports a broken internal invariant. With DebugAssertions it
// panics, otherwise it logs and execution continues.
func (ctx *Context) assert(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if ctx.opts.DebugAssertions {
		panic("retained: " + msg)
	}
	layoutLogger.Error("invariant violated", "detail", msg)
}
