package dom

// Listener handles a dispatched event.
type Listener func(ev *Event)

type listener struct {
	fn      Listener
	removed bool
}

// nonBubbling lists event types that do not bubble.
var nonBubbling = map[string]bool{
	"blur":       true,
	"focus":      true,
	"scroll":     true,
	"load":       true,
	"mouseenter": true,
	"mouseleave": true,
}

// Event is a DOM event.
type Event struct {
	// Type is the event name without the "on" prefix (e.g., "click").
	Type string

	// Target is the element the event was dispatched on.
	Target *Element

	// CurrentTarget is the element whose listeners are running.
	CurrentTarget *Element

	// Bubbles reports whether the event propagates to ancestors.
	Bubbles bool

	// Detail carries event-specific data.
	Detail map[string]any

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates an event, bubbling unless the type never bubbles.
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: !nonBubbling[typ]}
}

// PreventDefault cancels the event's default action.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation prevents further propagation to ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

// AddEventListener registers fn for events of type typ on e.
// The returned function removes the listener.
func (e *Element) AddEventListener(typ string, fn Listener) (remove func()) {
	byType := e.doc.listeners[e.node]
	if byType == nil {
		byType = make(map[string][]*listener)
		e.doc.listeners[e.node] = byType
	}
	l := &listener{fn: fn}
	byType[typ] = append(byType[typ], l)
	return func() {
		l.removed = true
		list := e.doc.listeners[e.node][typ]
		for i, x := range list {
			if x == l {
				e.doc.listeners[e.node][typ] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of listeners of type typ on e.
func (e *Element) ListenerCount(typ string) int {
	return len(e.doc.listeners[e.node][typ])
}

// Dispatch delivers ev to e and, if it bubbles, to e's ancestors.
// It returns false when a listener called PreventDefault.
func (e *Element) Dispatch(ev *Event) bool {
	ev.Target = e
	path := []*Element{e}
	if ev.Bubbles {
		for p := e.Parent(); p != nil; p = p.Parent() {
			path = append(path, p)
		}
	}
	for _, cur := range path {
		ev.CurrentTarget = cur
		invoke(e.doc.listeners[cur.node][ev.Type], ev)
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

func invoke(list []*listener, ev *Event) {
	// Listeners added during dispatch wait for the next event.
	snapshot := append([]*listener(nil), list...)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		l.fn(ev)
	}
}

// Click dispatches a click event and reports whether the default action ran.
func (e *Element) Click() bool {
	return e.Dispatch(NewEvent("click"))
}

// Blur dispatches a blur event.
func (e *Element) Blur() {
	e.Dispatch(NewEvent("blur"))
}

// RequestSubmit dispatches a submit event on a form and reports whether the
// submission would proceed.
func (e *Element) RequestSubmit() bool {
	return e.Dispatch(NewEvent("submit"))
}
