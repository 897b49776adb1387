package dom

import (
	"container/heap"
	"time"
)

// FrameInterval is the virtual duration of one animation frame.
const FrameInterval = 16 * time.Millisecond

// Window holds scroll position, location and the virtual clock.
type Window struct {
	doc         *Document
	now         time.Duration
	seq         int
	timers      timerQueue
	byID        map[int]*timer
	scrollY     float64
	innerHeight float64
	hash        string
	history     []string
	listeners   map[string][]*listener
}

func newWindow(d *Document) *Window {
	return &Window{
		doc:         d,
		byID:        make(map[int]*timer),
		innerHeight: 800,
		listeners:   make(map[string][]*listener),
	}
}

// Now returns the virtual time elapsed since the document loaded.
func (w *Window) Now() time.Duration { return w.now }

// SetTimeout schedules fn to run after d and returns a timer id.
func (w *Window) SetTimeout(d time.Duration, fn func()) int {
	if d < 0 {
		d = 0
	}
	w.seq++
	t := &timer{id: w.seq, at: w.now + d, fn: fn}
	heap.Push(&w.timers, t)
	w.byID[t.id] = t
	return t.id
}

// ClearTimeout cancels a pending timer.
func (w *Window) ClearTimeout(id int) {
	if t, ok := w.byID[id]; ok {
		t.cancelled = true
		delete(w.byID, id)
	}
}

// RequestAnimationFrame schedules fn for the next frame. fn receives the
// frame timestamp.
func (w *Window) RequestAnimationFrame(fn func(ts time.Duration)) int {
	return w.SetTimeout(FrameInterval, func() { fn(w.now) })
}

// Pending returns the number of scheduled timers.
func (w *Window) Pending() int { return len(w.byID) }

// Advance moves the clock forward by d, running due timers in order.
// Timers scheduled by callbacks run in the same call when they fall due.
func (w *Window) Advance(d time.Duration) {
	end := w.now + d
	for w.timers.Len() > 0 {
		next := w.timers[0]
		if next.at > end {
			break
		}
		heap.Pop(&w.timers)
		if next.cancelled {
			continue
		}
		delete(w.byID, next.id)
		w.now = next.at
		next.fn()
	}
	w.now = end
}

// Flush runs every pending timer, including ones scheduled while flushing.
func (w *Window) Flush() {
	for w.timers.Len() > 0 {
		w.Advance(w.timers[0].at - w.now)
	}
}

// ScrollY returns the vertical scroll offset.
func (w *Window) ScrollY() float64 { return w.scrollY }

// InnerHeight returns the viewport height.
func (w *Window) InnerHeight() float64 { return w.innerHeight }

// SetInnerHeight sets the viewport height.
func (w *Window) SetInnerHeight(h float64) { w.innerHeight = h }

// ScrollTo sets the vertical offset and dispatches a scroll event.
func (w *Window) ScrollTo(y float64) {
	if y < 0 {
		y = 0
	}
	w.scrollY = y
	w.Dispatch(NewEvent("scroll"))
}

// Hash returns the location fragment including the leading "#".
func (w *Window) Hash() string { return w.hash }

// PushState records a history entry for hash and updates the location.
func (w *Window) PushState(hash string) {
	w.hash = hash
	w.history = append(w.history, hash)
}

// History returns the pushed history entries.
func (w *Window) History() []string {
	return append([]string(nil), w.history...)
}

// AddEventListener registers fn for window events of type typ.
func (w *Window) AddEventListener(typ string, fn Listener) (remove func()) {
	l := &listener{fn: fn}
	w.listeners[typ] = append(w.listeners[typ], l)
	return func() {
		l.removed = true
		list := w.listeners[typ]
		for i, x := range list {
			if x == l {
				w.listeners[typ] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers ev to window listeners.
func (w *Window) Dispatch(ev *Event) bool {
	invoke(w.listeners[ev.Type], ev)
	return !ev.defaultPrevented
}

type timer struct {
	id        int
	at        time.Duration
	fn        func()
	cancelled bool
	index     int
}

// timerQueue orders timers by due time, then by creation order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].id < q[j].id
	}
	return q[i].at < q[j].at
}
func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
