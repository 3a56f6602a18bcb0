package retained

// FontHandle identifies a font acquired from a FontManager. 0 is no font.
type FontHandle uint32

// FontSpec selects a font. Size is in device units (pixels) at DPI.
type FontSpec struct {
	Family string
	Weight FontWeight
	Slant  FontSlant
	Size   float32
	DPI    float32
}

// FontMetrics are vertical metrics in device units.
type FontMetrics struct {
	Ascent     float32
	Descent    float32
	LineHeight float32
}

// FontManager is the glyph-metrics capability the core consumes. Fonts are
// reference counted: every AcquireFont is paired with one ReleaseFont.
type FontManager interface {
	AcquireFont(spec FontSpec) FontHandle
	ReleaseFont(f FontHandle)
	MeasureString(f FontHandle, s string) (width, height float32)
	Metrics(f FontHandle) FontMetrics
}

// SetText sets the text content of an element. Text takes part in auto
// sizing when the element has no flowed children.
func (ctx *Context) SetText(h ElementHandle, text string) {
	e, ok := ctx.element(h)
	if !ok {
		return
	}
	if e.text == nil {
		e.text = &textState{}
	} else if e.text.text == text {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	e.text.text = text
	ctx.invalidate(e, textInvalid)
}

// Text returns the text content of an element.
func (ctx *Context) Text(h ElementHandle) string {
	if e, ok := ctx.element(h); ok && e.text != nil {
		return e.text.text
	}
	return ""
}

// ElementFont returns the font currently acquired for the element's text.
func (ctx *Context) ElementFont(h ElementHandle) FontHandle {
	if e, ok := ctx.element(h); ok && e.text != nil {
		return e.text.font
	}
	return 0
}

// validateText re-acquires the font if the style or DPI changed, measures
// the text and dirties auto-sized axes.
func (ctx *Context) validateText(e *element) {
	t := e.text
	if t == nil {
		return
	}
	ctx.refreshFont(e)

	var measured [2]float32
	if t.text != "" && t.font != 0 {
		measured[0], measured[1] = ctx.fonts.MeasureString(t.font, t.text)
	}
	t.measured = measured

	for _, a := range axes {
		if e.style.Size(a).IsAuto() {
			ctx.invalidateSize(e, a)
		}
	}
	ctx.invalidateElementRect(e)
}

func (ctx *Context) refreshFont(e *element) {
	if ctx.fonts == nil {
		return
	}
	t := e.text
	spec := ctx.fontSpec(e)
	if t.font != 0 && t.fontSpec == spec {
		return
	}
	if t.font != 0 {
		ctx.fonts.ReleaseFont(t.font)
	}
	t.font = ctx.fonts.AcquireFont(spec)
	t.fontSpec = spec
}

func (ctx *Context) releaseFont(e *element) {
	if e.text == nil || e.text.font == 0 || ctx.fonts == nil {
		return
	}
	ctx.fonts.ReleaseFont(e.text.font)
	e.text.font = 0
}

// fontSpec resolves the element's font style. Percent sizes are taken of the
// default font size.
func (ctx *Context) fontSpec(e *element) FontSpec {
	def := ctx.resolveLength(AxisVertical, ctx.opts.DefaultFontSize, 0)
	size := def
	if d := e.style.FontSize; !d.IsAuto() {
		size = ctx.resolveLength(AxisVertical, d, def)
	}
	return FontSpec{
		Family: e.style.FontFamily,
		Weight: e.style.FontWeight,
		Slant:  e.style.FontSlant,
		Size:   size,
		DPI:    ctx.dpi[AxisVertical],
	}
}
