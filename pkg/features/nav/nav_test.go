package nav

import (
	"testing"
	"time"

	"github.com/vango-dev/sitekit/pkg/dom"
	"github.com/vango-dev/sitekit/pkg/features/scroll"
)

const page = `<html><body>
<header id="header">
  <button class="mobile-menu-btn"><i class="fas fa-bars"></i></button>
  <nav class="main-nav"><ul>
    <li><a id="to-menu" href="#menu">Menu</a></li>
    <li><a id="top" href="#">Top</a></li>
    <li><a id="broken" href="#missing">Missing</a></li>
  </ul></nav>
</header>
<section id="menu" data-offset-top="1000"></section>
</body></html>`

func newDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestMobileMenuToggle(t *testing.T) {
	doc := newDoc(t)
	m := NewMobileMenu(doc)
	btn := doc.Query(MenuButton)
	nav := doc.Query(MainNav)
	icon := btn.Query("i")

	btn.Click()
	if !nav.HasClass("active") || !icon.HasClass("fa-times") || !m.Open() {
		t.Fatalf("after first click nav=%v icon=%v", nav.Classes(), icon.Classes())
	}

	btn.Click()
	if nav.HasClass("active") || icon.HasClass("fa-times") || m.Open() {
		t.Fatalf("after second click nav=%v icon=%v", nav.Classes(), icon.Classes())
	}
	if !icon.HasClass("fa-bars") {
		t.Error("original icon class should be kept")
	}
}

func TestMobileMenuClose(t *testing.T) {
	doc := newDoc(t)
	m := NewMobileMenu(doc)

	m.Close()
	if m.Open() {
		t.Fatal("Close on a closed menu should keep it closed")
	}

	m.Toggle()
	m.Close()
	if m.Open() || doc.Query(MenuButton+" i").HasClass("fa-times") {
		t.Error("Close should remove both classes")
	}

	m.Detach()
	doc.Query(MenuButton).Click()
	if m.Open() {
		t.Error("detached menu should ignore clicks")
	}
}

func TestMobileMenuMissing(t *testing.T) {
	doc, _ := dom.ParseString(`<html><body></body></html>`)
	m := NewMobileMenu(doc)
	m.Toggle()
	m.Close()
	m.Detach()
	if m.Open() {
		t.Error("inert menu should never be open")
	}
}

func TestAnchors(t *testing.T) {
	doc := newDoc(t)
	w := doc.Window()
	menu := NewMobileMenu(doc)
	a := NewAnchors(doc, scroll.NewScroller(w), menu, DefaultHeaderOffset)

	menu.Toggle()
	if proceed := doc.GetElementByID("to-menu").Click(); proceed {
		t.Error("expected default action to be prevented")
	}
	if menu.Open() {
		t.Error("anchor click should close the menu")
	}
	if w.Hash() != "#menu" {
		t.Errorf("Hash() = %q, want #menu", w.Hash())
	}

	w.Advance(800 * time.Millisecond)
	if w.ScrollY() != 920 {
		t.Errorf("ScrollY = %v, want 920", w.ScrollY())
	}

	a.Detach()
	w.ScrollTo(0)
	doc.GetElementByID("to-menu").Click()
	w.Flush()
	if w.ScrollY() != 0 {
		t.Error("detached anchors should not scroll")
	}
}

func TestAnchorsIgnored(t *testing.T) {
	doc := newDoc(t)
	w := doc.Window()
	NewAnchors(doc, scroll.NewScroller(w), nil, DefaultHeaderOffset)

	for _, id := range []string{"top", "broken"} {
		t.Run(id, func(t *testing.T) {
			if proceed := doc.GetElementByID(id).Click(); !proceed {
				t.Error("default action should not be prevented")
			}
			if w.Pending() != 0 || w.Hash() != "" {
				t.Errorf("pending=%d hash=%q", w.Pending(), w.Hash())
			}
		})
	}
}
