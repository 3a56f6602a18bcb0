package retained

import "fmt"

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of event.
type EventType uint8

const (
	// Layout events, posted after validation
	EventSize EventType = iota + 1
	EventMove

	// Posted while a surface is being painted, before the renderer's paint
	// batch ends
	EventPaint

	// Mouse events
	EventMouseEnter
	EventMouseLeave
	EventMouseMove
	EventMouseDown
	EventMouseUp

	// Surface and display events, delivered to global handlers only
	EventSurfaceSize
	EventDPIChange
)

var eventTypeNames = [...]string{
	EventSize:        "size",
	EventMove:        "move",
	EventPaint:       "paint",
	EventMouseEnter:  "mouse-enter",
	EventMouseLeave:  "mouse-leave",
	EventMouseMove:   "mouse-move",
	EventMouseDown:   "mouse-down",
	EventMouseUp:     "mouse-up",
	EventSurfaceSize: "surface-size",
	EventDPIChange:   "dpi-change",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) && eventTypeNames[t] != "" {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// ============================================================================
// Event
// ============================================================================

// Event carries one notification. Which fields are meaningful depends on
// Type:
//
//	EventSize         Element, Width, Height
//	EventMove         Element, X, Y (surface-relative)
//	EventPaint        Surface, Rect
//	EventMouse*       Element, Surface, X, Y (element-local), Button
//	EventSurfaceSize  Surface, Width, Height
//	EventDPIChange    X, Y (new DPI per axis)
type Event struct {
	Type    EventType
	Element ElementHandle
	Surface SurfaceHandle

	X, Y          float32
	Width, Height float32
	Button        MouseButton
	Rect          Rect

	stopped bool
}

// StopPropagation prevents handlers after the current one from running.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether a handler stopped the event.
func (e *Event) Stopped() bool { return e.stopped }

// HandlerFunc receives events. It may freely mutate the tree, including
// deleting the element it is registered on.
type HandlerFunc func(ev *Event)

// HandlerID identifies a registered handler. IDs are never reused within a
// Context.
type HandlerID uint64

type eventHandler struct {
	id        HandlerID
	eventType EventType
	fn        HandlerFunc
}
