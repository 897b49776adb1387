package dom

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a handle to an element node in a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Equal reports whether e and o refer to the same node.
func (e *Element) Equal(o *Element) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.node == o.node
}

func (e *Element) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.node).Selection
}

// Tag returns the lowercase tag name.
func (e *Element) Tag() string { return e.node.Data }

// ID returns the id attribute.
func (e *Element) ID() string { return attrValue(e.node, "id") }

// Attr returns the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel().Attr(name)
}

// GetAttr returns the named attribute or "".
func (e *Element) GetAttr(name string) string {
	return attrValue(e.node, name)
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) {
	e.sel().SetAttr(name, value)
}

// RemoveAttr removes the named attribute.
func (e *Element) RemoveAttr(name string) {
	e.sel().RemoveAttr(name)
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	return strings.Fields(attrValue(e.node, "class"))
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	return e.sel().HasClass(name)
}

// AddClass adds name to the class list. A space-separated name adds each
// class. Empty names are ignored.
func (e *Element) AddClass(name string) {
	if name == "" {
		return
	}
	e.sel().AddClass(name)
}

// RemoveClass removes every class in the space-separated name from the
// class list, dropping the attribute when the list becomes empty.
func (e *Element) RemoveClass(name string) {
	removed := false
	for _, c := range strings.Fields(name) {
		if e.HasClass(c) {
			e.sel().RemoveClass(c)
			removed = true
		}
	}
	if removed && strings.TrimSpace(attrValue(e.node, "class")) == "" {
		e.RemoveAttr("class")
	}
}

// ToggleClass flips name in the class list and reports whether it is now present.
func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

// Text returns the combined text content.
func (e *Element) Text() string {
	return e.sel().Text()
}

// SetText replaces the children with a single text node.
func (e *Element) SetText(text string) {
	e.sel().SetText(text)
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	s, err := e.sel().Html()
	if err != nil {
		return ""
	}
	return s
}

// OuterHTML renders the element.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return ""
	}
	return buf.String()
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Query returns the first descendant matching selector, or nil.
func (e *Element) Query(selector string) *Element {
	m := e.doc.matcher(selector)
	if m == nil {
		return nil
	}
	found := e.sel().FindMatcher(m)
	if found.Length() == 0 {
		return nil
	}
	return e.doc.wrap(found.Nodes[0])
}

// QueryAll returns every descendant matching selector in document order.
func (e *Element) QueryAll(selector string) []*Element {
	m := e.doc.matcher(selector)
	if m == nil {
		return nil
	}
	return e.doc.wrapAll(e.sel().FindMatcher(m).Nodes)
}

// Closest returns the nearest inclusive ancestor matching selector, or nil.
func (e *Element) Closest(selector string) *Element {
	m := e.doc.matcher(selector)
	if m == nil {
		return nil
	}
	found := e.sel().ClosestMatcher(m)
	if found.Length() == 0 {
		return nil
	}
	return e.doc.wrap(found.Nodes[0])
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) bool {
	m := e.doc.matcher(selector)
	return m != nil && m.Match(e.node)
}

// Contains reports whether o is e or one of its descendants.
func (e *Element) Contains(o *Element) bool {
	for n := o.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Append creates a new element with tag and appends it.
func (e *Element) Append(tag string) *Element {
	child := e.doc.CreateElement(tag)
	e.AppendChild(child)
	return child
}

// After inserts sibling immediately after e.
func (e *Element) After(sibling *Element) {
	parent := e.node.Parent
	if parent == nil {
		return
	}
	if sibling.node.Parent != nil {
		sibling.node.Parent.RemoveChild(sibling.node)
	}
	parent.InsertBefore(sibling.node, e.node.NextSibling)
}

// Remove detaches e from its parent and drops its listeners.
func (e *Element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
	walk(e.node, func(n *html.Node) bool {
		delete(e.doc.listeners, n)
		return true
	})
}

// Connected reports whether e is attached to its document.
func (e *Element) Connected() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// Style returns one declaration from the style attribute.
func (e *Element) Style(prop string) string {
	for _, decl := range strings.Split(attrValue(e.node, "style"), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == prop {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// SetStyle sets one declaration in the style attribute.
func (e *Element) SetStyle(prop, value string) {
	var decls []string
	replaced := false
	for _, decl := range strings.Split(attrValue(e.node, "style"), ";") {
		k, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == prop {
			decls = append(decls, prop+": "+value)
			replaced = true
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if !replaced {
		decls = append(decls, prop+": "+value)
	}
	e.SetAttr("style", strings.Join(decls, "; "))
}
