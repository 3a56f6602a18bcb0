package retained

import "github.com/agiangrant/boxtree/internal/handle"

// SetDPI changes the display DPI. Every point-based measurement is rescaled
// by dpi / base DPI, which re-lays out every element and re-acquires fonts.
func (ctx *Context) SetDPI(x, y float32) {
	if x <= 0 || y <= 0 {
		return
	}
	if ctx.dpi == [2]float32{x, y} {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	ctx.dpi = [2]float32{x, y}
	ctx.scale = [2]float32{x / ctx.opts.BaseDPI, y / ctx.opts.BaseDPI}
	layoutLogger.Info("dpi changed", "x", x, "y", y, "scale_x", ctx.scale[0], "scale_y", ctx.scale[1])

	ctx.elements.Each(func(_ handle.Handle, e *element) bool {
		ctx.invalidateLayout(e)
		return true
	})
	ctx.postEvent(&Event{Type: EventDPIChange, X: x, Y: y})
}

// DPI returns the current display DPI per axis.
func (ctx *Context) DPI() (x, y float32) {
	return ctx.dpi[0], ctx.dpi[1]
}

// ScaleFactor returns the point-to-device-unit factor per axis.
func (ctx *Context) ScaleFactor() (x, y float32) {
	return ctx.scale[0], ctx.scale[1]
}
