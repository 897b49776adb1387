package dom

import "strconv"

// Layout supplies geometry for a headless document.
type Layout interface {
	OffsetTop(e *Element) float64
	Height(e *Element) float64
}

// AttrLayout reads geometry from data-offset-top and data-height attributes.
// Missing or malformed values are zero.
type AttrLayout struct{}

// OffsetTop implements Layout.
func (AttrLayout) OffsetTop(e *Element) float64 { return floatAttr(e, "data-offset-top") }

// Height implements Layout.
func (AttrLayout) Height(e *Element) float64 { return floatAttr(e, "data-height") }

func floatAttr(e *Element, name string) float64 {
	v, err := strconv.ParseFloat(e.GetAttr(name), 64)
	if err != nil {
		return 0
	}
	return v
}

// OffsetTop returns the element's top offset from the document layout.
func (e *Element) OffsetTop() float64 { return e.doc.Layout.OffsetTop(e) }

// Height returns the element's height from the document layout.
func (e *Element) Height() float64 { return e.doc.Layout.Height(e) }

// ScrollIntoView scrolls the window so the element is vertically centered.
func (e *Element) ScrollIntoView() {
	w := e.doc.window
	w.ScrollTo(e.OffsetTop() - (w.InnerHeight()-e.Height())/2)
}
