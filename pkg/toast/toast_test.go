package toast_test

import (
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/sitekit/pkg/dom"
	"github.com/vango-dev/sitekit/pkg/toast"
)

const page = `<html><body>
<button class="add-to-cart" data-item="Paella" data-price="18.50">Add</button>
<button class="add-to-cart" data-item="Tortilla" data-price="9">Add</button>
</body></html>`

func newDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestShowLifecycle(t *testing.T) {
	doc := newDoc(t)
	n := toast.New(doc)
	w := doc.Window()

	el := n.Success("Saved")
	if el == nil {
		t.Fatal("expected notification element")
	}
	if !el.HasClass("notification") || !el.HasClass("notification-success") {
		t.Errorf("classes = %v", el.Classes())
	}
	if !strings.HasPrefix(el.ID(), "toast-") {
		t.Errorf("id = %q, want toast- prefix", el.ID())
	}
	if icon := el.Query("i"); icon == nil || !icon.HasClass("fa-check") {
		t.Error("expected fa-check icon")
	}
	if got := el.Query("span").Text(); got != "Saved" {
		t.Errorf("text = %q", got)
	}
	if el.HasClass("show") {
		t.Error("show should not be added synchronously")
	}

	w.Advance(10 * time.Millisecond)
	if !el.HasClass("show") {
		t.Error("show should be added after 10ms")
	}

	w.Advance(2990 * time.Millisecond)
	if el.HasClass("show") {
		t.Error("show should be removed at 3000ms")
	}
	if !el.Connected() {
		t.Error("node should stay during fade-out")
	}

	w.Advance(300 * time.Millisecond)
	if el.Connected() {
		t.Error("node should be removed 300ms after hiding")
	}
}

func TestShowDispatchesEvent(t *testing.T) {
	doc := newDoc(t)
	var got *dom.Event
	doc.Body().AddEventListener(toast.EventName, func(ev *dom.Event) { got = ev })

	el := toast.New(doc).Error("Failed")

	if got == nil {
		t.Fatal("expected toast event")
	}
	if got.Detail["level"] != "error" || got.Detail["message"] != "Failed" || got.Detail["id"] != el.ID() {
		t.Errorf("detail = %v", got.Detail)
	}
	if icon := el.Query("i"); !icon.HasClass("fa-exclamation-circle") {
		t.Errorf("icon classes = %v", icon.Classes())
	}
}

func TestLevels(t *testing.T) {
	doc := newDoc(t)
	n := toast.New(doc)

	tests := []struct {
		show func(string) *dom.Element
		cls  string
	}{
		{n.Success, "notification-success"},
		{n.Error, "notification-error"},
		{func(m string) *dom.Element { return n.Show(toast.TypeWarning, m) }, "notification-warning"},
		{func(m string) *dom.Element { return n.Show(toast.TypeInfo, m) }, "notification-info"},
	}
	for _, tt := range tests {
		t.Run(tt.cls, func(t *testing.T) {
			if el := tt.show("x"); !el.HasClass(tt.cls) {
				t.Errorf("classes = %v, want %s", el.Classes(), tt.cls)
			}
		})
	}
}

func TestCustomTimings(t *testing.T) {
	doc := newDoc(t)
	n := toast.New(doc, toast.WithDuration(time.Second), toast.WithFade(100*time.Millisecond))
	el := n.Success("hi")

	doc.Window().Advance(time.Second)
	if el.HasClass("show") {
		t.Error("show should be removed after 1s")
	}
	doc.Window().Advance(100 * time.Millisecond)
	if el.Connected() {
		t.Error("node should be removed after fade")
	}
}

func TestAddToCart(t *testing.T) {
	doc := newDoc(t)
	var added []toast.Item
	cart := toast.AddToCart(doc, toast.New(doc), func(item toast.Item) {
		added = append(added, item)
	})

	buttons := doc.QueryAll(".add-to-cart")
	buttons[0].Click()

	if len(added) != 1 || added[0] != (toast.Item{Name: "Paella", Price: "18.50"}) {
		t.Fatalf("added = %v", added)
	}
	notes := doc.QueryAll(".notification")
	if len(notes) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notes))
	}
	if got := notes[0].Query("span").Text(); got != "Paella added to cart" {
		t.Errorf("text = %q", got)
	}

	cart.SetMessage("Añadido: {item}")
	buttons[1].Click()
	if got := doc.QueryAll(".notification span")[1].Text(); got != "Añadido: Tortilla" {
		t.Errorf("text = %q", got)
	}

	cart.Detach()
	buttons[0].Click()
	if len(added) != 2 {
		t.Errorf("clicks after Detach should be ignored, added = %d", len(added))
	}
}

func TestAddToCartWithoutHook(t *testing.T) {
	doc := newDoc(t)
	toast.AddToCart(doc, toast.New(doc), nil)

	doc.Query(".add-to-cart").Click()
	if doc.Query(".notification") == nil {
		t.Error("expected notification without a cart hook")
	}
}
