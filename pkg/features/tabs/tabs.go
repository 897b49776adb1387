// Package tabs switches between the menu categories of a page.
package tabs

import "github.com/vango-dev/sitekit/pkg/dom"

// Selectors used by the tab set.
const (
	Button  = ".tab-btn"
	Content = ".category-content"
)

// Tabs activates one category at a time.
type Tabs struct {
	doc      *dom.Document
	active   string
	removers []func()
}

// New binds every tab button in doc.
func New(doc *dom.Document) *Tabs {
	t := &Tabs{doc: doc}
	for _, btn := range doc.QueryAll(Button) {
		if btn.HasClass("active") {
			t.active = btn.GetAttr("data-category")
		}
		t.removers = append(t.removers, btn.AddEventListener("click", func(*dom.Event) {
			t.activate(btn)
		}))
	}
	return t
}

// Select activates the button whose data-category is category.
// It reports whether such a button exists.
func (t *Tabs) Select(category string) bool {
	for _, btn := range t.doc.QueryAll(Button) {
		if btn.GetAttr("data-category") == category {
			t.activate(btn)
			return true
		}
	}
	return false
}

func (t *Tabs) activate(btn *dom.Element) {
	category := btn.GetAttr("data-category")
	for _, b := range t.doc.QueryAll(Button) {
		b.RemoveClass("active")
	}
	for _, c := range t.doc.QueryAll(Content) {
		c.RemoveClass("active")
	}
	btn.AddClass("active")
	if content := t.doc.GetElementByID(category); content != nil {
		content.AddClass("active")
	}
	t.active = category
}

// Active returns the current category.
func (t *Tabs) Active() string { return t.active }

// Detach removes the click handlers.
func (t *Tabs) Detach() {
	for _, remove := range t.removers {
		remove()
	}
	t.removers = nil
}
