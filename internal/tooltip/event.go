package tooltip

// ElementID identifies an element in the host's render tree.
type ElementID string

// Point is a pointer position in host cells.
type Point struct {
	X, Y int
}

// EventKind enumerates the inputs the controller reacts to.
type EventKind int

const (
	EventPointerEnter EventKind = iota
	EventPointerLeave
	EventClick
	EventMouseDown
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventPointerEnter:
		return "enter"
	case EventPointerLeave:
		return "leave"
	case EventClick:
		return "click"
	case EventMouseDown:
		return "mousedown"
	case EventScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, bool) {
	for k := EventPointerEnter; k <= EventScroll; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Event is a pointer notification from the host. Target is the innermost
// element the event was dispatched on; Pointer is set for enter events.
type Event struct {
	Kind    EventKind
	Target  ElementID
	Pointer Point
}
