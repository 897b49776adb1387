package nav

import "github.com/vango-dev/sitekit/pkg/dom"

// Selectors used by the mobile menu.
const (
	MenuButton = ".mobile-menu-btn"
	MainNav    = ".main-nav"
)

// MobileMenu toggles the main navigation on small screens.
// A page without the button or the nav gets an inert menu.
type MobileMenu struct {
	button *dom.Element
	nav    *dom.Element
	remove func()
}

// NewMobileMenu binds the menu button.
func NewMobileMenu(doc *dom.Document) *MobileMenu {
	m := &MobileMenu{
		button: doc.Query(MenuButton),
		nav:    doc.Query(MainNav),
	}
	if m.button != nil && m.nav != nil {
		m.remove = m.button.AddEventListener("click", func(*dom.Event) { m.Toggle() })
	}
	return m
}

// Toggle opens a closed menu and closes an open one.
func (m *MobileMenu) Toggle() {
	if m.nav == nil {
		return
	}
	open := m.nav.ToggleClass("active")
	if icon := m.icon(); icon != nil {
		if open {
			icon.AddClass("fa-times")
		} else {
			icon.RemoveClass("fa-times")
		}
	}
}

// Close closes the menu if it is open.
func (m *MobileMenu) Close() {
	if !m.Open() {
		return
	}
	m.nav.RemoveClass("active")
	if icon := m.icon(); icon != nil {
		icon.RemoveClass("fa-times")
	}
}

// Open reports whether the menu is open.
func (m *MobileMenu) Open() bool {
	return m.nav != nil && m.nav.HasClass("active")
}

func (m *MobileMenu) icon() *dom.Element {
	if m.button == nil {
		return nil
	}
	return m.button.Query("i")
}

// Detach removes the click handler.
func (m *MobileMenu) Detach() {
	if m.remove != nil {
		m.remove()
		m.remove = nil
	}
}
