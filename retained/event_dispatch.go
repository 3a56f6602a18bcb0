package retained

import "slices"

// ============================================================================
// Handler registration
// ============================================================================

// Handler describes a registered handler to IterateLocalEventHandlers and
// IterateGlobalEventHandlers visitors.
type Handler struct {
	ID   HandlerID
	Type EventType
	Func HandlerFunc
}

func (ctx *Context) newHandler(t EventType, fn HandlerFunc) *eventHandler {
	ctx.nextHandlerID++
	return &eventHandler{id: ctx.nextHandlerID, eventType: t, fn: fn}
}

// AddEventHandler registers fn for events of type t posted to element h.
// Handlers run in registration order. It returns 0 for a stale handle.
func (ctx *Context) AddEventHandler(h ElementHandle, t EventType, fn HandlerFunc) HandlerID {
	e, ok := ctx.element(h)
	if !ok || fn == nil {
		return 0
	}
	eh := ctx.newHandler(t, fn)
	e.handlers = append(e.handlers, eh)
	return eh.id
}

// RemoveEventHandler unregisters a local handler. It reports whether the
// handler was found.
func (ctx *Context) RemoveEventHandler(h ElementHandle, id HandlerID) bool {
	e, ok := ctx.element(h)
	if !ok {
		return false
	}
	return removeHandler(&e.handlers, id)
}

// AddGlobalEventHandler registers fn for events of type t posted anywhere.
// Global handlers run after the target's local handlers.
func (ctx *Context) AddGlobalEventHandler(t EventType, fn HandlerFunc) HandlerID {
	if fn == nil {
		return 0
	}
	eh := ctx.newHandler(t, fn)
	ctx.globalHandlers = append(ctx.globalHandlers, eh)
	return eh.id
}

// RemoveGlobalEventHandler unregisters a global handler.
func (ctx *Context) RemoveGlobalEventHandler(id HandlerID) bool {
	return removeHandler(&ctx.globalHandlers, id)
}

// removeHandler builds a new slice so that a list captured by an iteration
// in progress is never modified underneath it.
func removeHandler(list *[]*eventHandler, id HandlerID) bool {
	i := slices.IndexFunc(*list, func(h *eventHandler) bool { return h.id == id })
	if i < 0 {
		return false
	}
	*list = slices.Concat((*list)[:i], (*list)[i+1:])
	return true
}

// ============================================================================
// Mutation-safe iteration
// ============================================================================

// iterateHandlers calls visit for every handler returned by list, tolerating
// handlers that add or remove handlers or delete the target while running.
//
// After each call the list is re-read. If the handler just visited still
// sits at the current index iteration advances; otherwise it resumes just
// past the last processed handler still present. Every handler present
// before and after a call runs exactly once. Iteration stops when the target
// element becomes stale or visit returns false, and the result reports
// whether it ran to completion.
func (ctx *Context) iterateHandlers(target ElementHandle, list func() []*eventHandler, visit func(*eventHandler) bool) bool {
	processed := make(map[HandlerID]struct{})
	cur := list()
	for i := 0; i < len(cur); {
		h := cur[i]
		if _, done := processed[h.id]; done {
			i++
			continue
		}
		processed[h.id] = struct{}{}

		cont := visit(h)
		if target != 0 && !ctx.elementValid(target) {
			return false
		}
		if !cont {
			return false
		}

		cur = list()
		if i < len(cur) && cur[i] == h {
			i++
			continue
		}
		i = 0
		for j := len(cur) - 1; j >= 0; j-- {
			if _, done := processed[cur[j].id]; done {
				i = j + 1
				break
			}
		}
	}
	return true
}

func (ctx *Context) localHandlers(h ElementHandle) func() []*eventHandler {
	return func() []*eventHandler {
		if e, ok := ctx.element(h); ok {
			return e.handlers
		}
		return nil
	}
}

func (ctx *Context) globalHandlerList() []*eventHandler {
	return ctx.globalHandlers
}

// IterateLocalEventHandlers visits the handlers of element h in order until
// visit returns false. visit may mutate the tree and the handler lists.
func (ctx *Context) IterateLocalEventHandlers(h ElementHandle, visit func(Handler) bool) bool {
	if !ctx.elementValid(h) {
		return false
	}
	return ctx.iterateHandlers(h, ctx.localHandlers(h), func(eh *eventHandler) bool {
		return visit(Handler{ID: eh.id, Type: eh.eventType, Func: eh.fn})
	})
}

// IterateGlobalEventHandlers visits the global handlers in order until
// visit returns false.
func (ctx *Context) IterateGlobalEventHandlers(visit func(Handler) bool) bool {
	return ctx.iterateHandlers(0, ctx.globalHandlerList, func(eh *eventHandler) bool {
		return visit(Handler{ID: eh.id, Type: eh.eventType, Func: eh.fn})
	})
}

// ============================================================================
// Posting
// ============================================================================

// PostEvent delivers ev to the local handlers of ev.Element, then to the
// global handlers. Events addressed to a stale element are dropped.
func (ctx *Context) PostEvent(ev *Event) {
	if ev == nil {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()
	ctx.postEvent(ev)
}

func (ctx *Context) postEvent(ev *Event) {
	target := ev.Element
	if target != 0 {
		e, ok := ctx.element(target)
		if !ok {
			eventLogger.Debug("event dropped for stale element", "type", ev.Type, "element", target)
			return
		}
		if ev.Surface == 0 && e.surface != nil {
			ev.Surface = e.surface.handle
		}
	}

	deliver := func(eh *eventHandler) bool {
		if eh.eventType == ev.Type {
			eh.fn(ev)
		}
		return !ev.stopped
	}
	if target != 0 && !ctx.iterateHandlers(target, ctx.localHandlers(target), deliver) {
		return
	}
	ctx.iterateHandlers(target, ctx.globalHandlerList, deliver)
}

// ============================================================================
// Mouse routing
// ============================================================================

// mouseEvent builds a mouse event in the element's local coordinates.
func (ctx *Context) mouseEvent(t EventType, s SurfaceHandle, target ElementHandle, x, y float32, b MouseButton) *Event {
	ev := &Event{Type: t, Element: target, Surface: s, X: x, Y: y, Button: b}
	if e, ok := ctx.element(target); ok {
		ev.X -= e.layout.abs[0]
		ev.Y -= e.layout.abs[1]
	}
	return ev
}

// OnMouseMove routes a pointer move on surface h: it updates the tracked
// element under the mouse with leave/enter events, then posts
// EventMouseMove to the capturing element, or to the element hit.
func (ctx *Context) OnMouseMove(h SurfaceHandle, x, y float32) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	hit := ctx.FindElementUnderPoint(h, x, y)
	if old := s.underMouse; hit != old {
		eventLogger.Debug("hover change", "surface", h, "from", old, "to", hit)
		if ctx.elementValid(old) {
			ctx.postEvent(ctx.mouseEvent(EventMouseLeave, h, old, x, y, MouseButtonNone))
		}
		if hit != 0 {
			ctx.postEvent(ctx.mouseEvent(EventMouseEnter, h, hit, x, y, MouseButtonNone))
		}
		if s, ok = ctx.surface(h); !ok {
			return
		}
		s.underMouse = 0
		if ctx.elementValid(hit) {
			s.underMouse = hit
		}
	}

	if target := ctx.mouseTarget(s, hit); target != 0 {
		ctx.postEvent(ctx.mouseEvent(EventMouseMove, h, target, x, y, MouseButtonNone))
	}
}

// OnMouseDown posts EventMouseDown to the capturing element or the element
// under the point.
func (ctx *Context) OnMouseDown(h SurfaceHandle, x, y float32, b MouseButton) {
	ctx.mouseButton(EventMouseDown, h, x, y, b)
}

// OnMouseUp posts EventMouseUp to the capturing element or the element
// under the point.
func (ctx *Context) OnMouseUp(h SurfaceHandle, x, y float32, b MouseButton) {
	ctx.mouseButton(EventMouseUp, h, x, y, b)
}

func (ctx *Context) mouseButton(t EventType, h SurfaceHandle, x, y float32, b MouseButton) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	if target := ctx.mouseTarget(s, ctx.FindElementUnderPoint(h, x, y)); target != 0 {
		ctx.postEvent(ctx.mouseEvent(t, h, target, x, y, b))
	}
}

// OnMouseLeaveSurface tells the surface the pointer left it. The tracked
// element receives EventMouseLeave.
func (ctx *Context) OnMouseLeaveSurface(h SurfaceHandle) {
	s, ok := ctx.surface(h)
	if !ok {
		return
	}
	ctx.BeginBatch()
	defer ctx.EndBatch()

	old := s.underMouse
	s.underMouse = 0
	if ctx.elementValid(old) {
		ctx.postEvent(&Event{Type: EventMouseLeave, Element: old, Surface: h})
	}
}

func (ctx *Context) mouseTarget(s *surface, hit ElementHandle) ElementHandle {
	if ctx.elementValid(s.capture) {
		return s.capture
	}
	return hit
}
