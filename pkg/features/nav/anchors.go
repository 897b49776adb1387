package nav

import (
	"log/slog"

	"github.com/vango-dev/sitekit/pkg/dom"
	"github.com/vango-dev/sitekit/pkg/features/scroll"
)

// DefaultHeaderOffset keeps anchor targets clear of the fixed header.
const DefaultHeaderOffset = 80

// AnchorLinks selects in-page links.
const AnchorLinks = `a[href^="#"]`

// Anchors scrolls to the target of in-page links.
type Anchors struct {
	doc      *dom.Document
	scroller *scroll.Scroller
	menu     *MobileMenu
	offset   float64
	logger   *slog.Logger
	removers []func()
}

// NewAnchors binds every in-page link. menu may be nil.
func NewAnchors(doc *dom.Document, scroller *scroll.Scroller, menu *MobileMenu, offset float64) *Anchors {
	a := &Anchors{
		doc:      doc,
		scroller: scroller,
		menu:     menu,
		offset:   offset,
		logger:   slog.Default().With("component", "anchors"),
	}
	for _, link := range doc.QueryAll(AnchorLinks) {
		a.removers = append(a.removers, link.AddEventListener("click", func(ev *dom.Event) {
			a.follow(link, ev)
		}))
	}
	return a
}

func (a *Anchors) follow(link *dom.Element, ev *dom.Event) {
	href := link.GetAttr("href")
	if href == "#" {
		return
	}
	target := a.doc.Query(href)
	if target == nil {
		a.logger.Debug("anchor target not found", "href", href)
		return
	}

	ev.PreventDefault()
	a.scroller.To(target.OffsetTop() - a.offset)
	if a.menu != nil {
		a.menu.Close()
	}
	a.doc.Window().PushState(href)
}

// Detach removes the click handlers.
func (a *Anchors) Detach() {
	for _, remove := range a.removers {
		remove()
	}
	a.removers = nil
}
