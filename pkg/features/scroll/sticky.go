package scroll

import "github.com/vango-dev/sitekit/pkg/dom"

// DefaultStickyThreshold is the scroll offset past which the header sticks.
const DefaultStickyThreshold = 100

// StickyHeader toggles the "scrolled" class on #header.
type StickyHeader struct {
	win       *dom.Window
	header    *dom.Element
	threshold float64
	remove    func()
}

// NewStickyHeader binds #header to window scrolling. It returns nil when the
// page has no header.
func NewStickyHeader(doc *dom.Document, threshold float64) *StickyHeader {
	header := doc.GetElementByID("header")
	if header == nil {
		return nil
	}
	h := &StickyHeader{win: doc.Window(), header: header, threshold: threshold}
	h.remove = h.win.AddEventListener("scroll", func(*dom.Event) { h.Update() })
	return h
}

// Update applies the class for the current scroll offset.
func (h *StickyHeader) Update() {
	if h.win.ScrollY() > h.threshold {
		h.header.AddClass("scrolled")
	} else {
		h.header.RemoveClass("scrolled")
	}
}

// Detach stops listening to scroll events.
func (h *StickyHeader) Detach() { h.remove() }
