package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page with listeners and a window.
type Document struct {
	root      *html.Node
	listeners map[*html.Node]map[string][]*listener
	selectors map[string]cascadia.Selector
	nextID    int

	// Layout supplies element geometry. Defaults to AttrLayout.
	Layout Layout

	window *Window
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	d := &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]*listener),
		selectors: make(map[string]cascadia.Selector),
		Layout:    AttrLayout{},
	}
	d.window = newWindow(d)
	return d, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Window returns the document's window.
func (d *Document) Window() *Window {
	return d.window
}

// Compile compiles and caches a CSS selector.
func (d *Document) Compile(selector string) (cascadia.Selector, error) {
	if s, ok := d.selectors[selector]; ok {
		return s, nil
	}
	s, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: selector %q: %w", selector, err)
	}
	d.selectors[selector] = s
	return s, nil
}

// matcher returns a compiled selector or nil when the selector is invalid.
func (d *Document) matcher(selector string) cascadia.Selector {
	s, err := d.Compile(selector)
	if err != nil {
		return nil
	}
	return s
}

// wrap returns an Element for n, or nil for a nil node.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

func (d *Document) selection() *goquery.Selection {
	return goquery.NewDocumentFromNode(d.root).Selection
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.Query("body")
}

// Query returns the first element matching selector, or nil.
// An invalid selector matches nothing.
func (d *Document) Query(selector string) *Element {
	m := d.matcher(selector)
	if m == nil {
		return nil
	}
	return d.wrap(m.MatchFirst(d.root))
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []*Element {
	m := d.matcher(selector)
	if m == nil {
		return nil
	}
	return d.wrapAll(d.selection().FindMatcher(m).Nodes)
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

// GetElementByID returns the first element whose id attribute equals id.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attrValue(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.wrap(found)
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return ""
	}
	return buf.String()
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
