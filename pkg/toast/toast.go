package toast

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vango-dev/sitekit/pkg/dom"
)

// EventName is the event dispatched on the body for every toast.
const EventName = "sitekit:toast"

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

var icons = map[Type]string{
	TypeSuccess: "fa-check",
	TypeError:   "fa-exclamation-circle",
	TypeWarning: "fa-exclamation-triangle",
	TypeInfo:    "fa-info-circle",
}

// Default timings.
const (
	DefaultShowDelay = 10 * time.Millisecond
	DefaultDuration  = 3 * time.Second
	DefaultFade      = 300 * time.Millisecond
)

// Notifier shows toasts in a document.
type Notifier struct {
	doc       *dom.Document
	showDelay time.Duration
	duration  time.Duration
	fade      time.Duration
	logger    *slog.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithDuration sets how long a toast stays visible.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) { n.duration = d }
}

// WithFade sets the delay between hiding a toast and removing its node.
func WithFade(d time.Duration) Option {
	return func(n *Notifier) { n.fade = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) { n.logger = l }
}

// New creates a Notifier for doc.
func New(doc *dom.Document, opts ...Option) *Notifier {
	n := &Notifier{
		doc:       doc,
		showDelay: DefaultShowDelay,
		duration:  DefaultDuration,
		fade:      DefaultFade,
		logger:    slog.Default().With("component", "toast"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show appends a notification and schedules its lifecycle.
// It returns the notification element, whose id is a fresh UUID.
func (n *Notifier) Show(level Type, message string) *dom.Element {
	body := n.doc.Body()
	if body == nil {
		return nil
	}

	el := body.Append("div")
	el.SetAttr("id", "toast-"+uuid.NewString())
	el.AddClass("notification")
	el.AddClass("notification-" + string(level))
	icon := el.Append("i")
	icon.AddClass("fas")
	icon.AddClass(iconFor(level))
	el.Append("span").SetText(message)

	w := n.doc.Window()
	w.SetTimeout(n.showDelay, func() { el.AddClass("show") })
	w.SetTimeout(n.duration, func() {
		el.RemoveClass("show")
		w.SetTimeout(n.fade, el.Remove)
	})

	ev := dom.NewEvent(EventName)
	ev.Detail = map[string]any{
		"id":      el.ID(),
		"level":   string(level),
		"message": message,
	}
	body.Dispatch(ev)

	n.logger.Debug("toast shown", "level", level, "message", message)
	return el
}

func iconFor(level Type) string {
	if icon, ok := icons[level]; ok {
		return icon
	}
	return icons[TypeInfo]
}

// Success shows a success toast.
func (n *Notifier) Success(message string) *dom.Element {
	return n.Show(TypeSuccess, message)
}

// Error shows an error toast.
func (n *Notifier) Error(message string) *dom.Element {
	return n.Show(TypeError, message)
}
