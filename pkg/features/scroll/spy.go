package scroll

import "github.com/vango-dev/sitekit/pkg/dom"

// DefaultSpyOffset is how far above a section the spy switches to it.
const DefaultSpyOffset = 200

// NavLinks selects the links the spy highlights.
const NavLinks = ".main-nav ul li a"

// Spy marks the navigation link of the section currently in view.
type Spy struct {
	doc     *dom.Document
	offset  float64
	current string
	remove  func()
}

// NewSpy binds the scroll spy to window scrolling.
func NewSpy(doc *dom.Document, offset float64) *Spy {
	s := &Spy{doc: doc, offset: offset}
	s.remove = doc.Window().AddEventListener("scroll", func(*dom.Event) { s.Update() })
	return s
}

// Update recomputes the current section and moves the active link.
// The current section is the last one whose top minus the offset has
// been scrolled past.
func (s *Spy) Update() {
	y := s.doc.Window().ScrollY()
	current := ""
	for _, section := range s.doc.QueryAll("section") {
		if y >= section.OffsetTop()-s.offset {
			current = section.ID()
		}
	}
	s.current = current

	for _, link := range s.doc.QueryAll(NavLinks) {
		link.RemoveClass("active")
		if link.GetAttr("href") == "#"+current {
			link.AddClass("active")
		}
	}
}

// Current returns the id of the current section, or "" before any.
func (s *Spy) Current() string { return s.current }

// Detach stops listening to scroll events.
func (s *Spy) Detach() { s.remove() }
