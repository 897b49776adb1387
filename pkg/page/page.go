package page

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/vango-dev/sitekit/internal/config"
	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/dom"
	"github.com/vango-dev/sitekit/pkg/features/nav"
	"github.com/vango-dev/sitekit/pkg/features/scroll"
	"github.com/vango-dev/sitekit/pkg/features/tabs"
	"github.com/vango-dev/sitekit/pkg/features/validate"
	"github.com/vango-dev/sitekit/pkg/toast"
)

// Page is a document with every behavior mounted.
type Page struct {
	Doc      *dom.Document
	Scroller *scroll.Scroller
	Menu     *nav.MobileMenu
	Anchors  *nav.Anchors
	Header   *scroll.StickyHeader
	Spy      *scroll.Spy
	Tabs     *tabs.Tabs
	Toasts   *toast.Notifier
	Cart     *toast.Cart
	Forms    []*validate.Binding

	cfg    *config.Config
	logger *slog.Logger
}

type options struct {
	observer validate.Observer
	onCart   func(toast.Item)
	logger   *slog.Logger
}

// Option configures Mount.
type Option func(*options)

// WithObserver receives every validation result of every form.
func WithObserver(o validate.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithCart is called for every item added to the cart.
func WithCart(fn func(toast.Item)) Option {
	return func(opts *options) { opts.onCart = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(opts *options) { opts.logger = l }
}

// Load reads and parses an HTML page.
func Load(path string) (*dom.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E401").WithDetailf("read %s", path).Wrap(err)
	}
	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("E401").WithDetailf("parse %s", path).Wrap(err)
	}
	return doc, nil
}

// Mount wires every behavior onto doc. A nil cfg uses config.New().
func Mount(doc *dom.Document, cfg *config.Config, opts ...Option) (*Page, error) {
	if cfg == nil {
		cfg = config.New()
	}
	o := options{logger: slog.Default().With("component", "page")}
	for _, opt := range opts {
		opt(&o)
	}

	b := cfg.Behavior
	p := &Page{Doc: doc, cfg: cfg, logger: o.logger}

	p.preloader()

	p.Scroller = scroll.NewScroller(doc.Window())
	p.Scroller.SetDuration(b.ScrollDuration.D())
	p.Menu = nav.NewMobileMenu(doc)
	p.Anchors = nav.NewAnchors(doc, p.Scroller, p.Menu, b.HeaderOffset)
	p.Header = scroll.NewStickyHeader(doc, b.StickyThreshold)
	p.Spy = scroll.NewSpy(doc, b.SpyOffset)
	p.Tabs = tabs.New(doc)

	p.Toasts = toast.New(doc, toast.WithDuration(b.ToastDuration.D()), toast.WithLogger(o.logger))
	p.Cart = toast.AddToCart(doc, p.Toasts, o.onCart)
	p.Cart.SetMessage(b.CartMessage)

	for _, form := range doc.QueryAll(cfg.Forms.Selector) {
		vc := cfg.ValidatorConfig()
		vc.Observer = o.observer
		vc.Logger = o.logger
		vc.OnSuccess = p.showSuccess
		vc.OnError = p.revealError
		binding, err := validate.Attach(form, vc)
		if err != nil {
			p.Detach()
			return nil, err
		}
		p.Forms = append(p.Forms, binding)
	}

	p.logger.Debug("page mounted", "forms", len(p.Forms))
	return p, nil
}

// preloader fades .preloader out after the configured delay and hides it
// once the fade has run.
func (p *Page) preloader() {
	el := p.Doc.Query(".preloader")
	if el == nil {
		return
	}
	w := p.Doc.Window()
	b := p.cfg.Behavior
	w.SetTimeout(b.PreloaderDelay.D(), func() {
		el.AddClass("fade-out")
		w.SetTimeout(b.PreloaderFade.D(), func() {
			el.SetStyle("display", "none")
		})
	})
}

// showSuccess replaces a valid form with the thank-you message.
func (p *Page) showSuccess(form *dom.Element) {
	msg := p.Doc.CreateElement("div")
	msg.AddClass("form-success-message")
	icon := msg.Append("i")
	icon.AddClass("fas")
	icon.AddClass("fa-check-circle")
	msg.Append("p").SetText(p.cfg.Forms.SuccessMessage)

	form.After(msg)
	form.SetStyle("display", "none")
}

// revealError scrolls the first failing wrapper into view and shows an
// error toast.
func (p *Page) revealError(form *dom.Element) {
	if first := form.Query(validate.ClassSelector(p.cfg.Forms.ErrorClass)); first != nil {
		p.Scroller.IntoView(first)
	}
	if p.cfg.Forms.ErrorMessage != "" {
		p.Toasts.Error(p.cfg.Forms.ErrorMessage)
	}
}

// Fill sets the value of every named control in form for which lookup
// returns a value.
func Fill(form *dom.Element, lookup func(name string) (string, bool)) {
	for _, c := range form.QueryAll(dom.Controls) {
		name := c.Name()
		if name == "" {
			continue
		}
		if v, ok := lookup(name); ok {
			c.SetValue(v)
		}
	}
}

// Form returns the binding of the index-th form, in document order.
func (p *Page) Form(index int) (*validate.Binding, error) {
	if index < 0 || index >= len(p.Forms) {
		return nil, errors.New("E402").WithDetailf("form %d (page has %d)", index, len(p.Forms))
	}
	return p.Forms[index], nil
}

// FindForm returns the binding of the first form matching selector.
func (p *Page) FindForm(selector string) (*validate.Binding, error) {
	el := p.Doc.Query(selector)
	if el != nil {
		for _, b := range p.Forms {
			if b.Form().Equal(el) {
				return b, nil
			}
		}
	}
	return nil, errors.New("E402").WithDetailf("no validated form matches %q", selector)
}

// Detach removes every listener the page registered.
func (p *Page) Detach() {
	for _, b := range p.Forms {
		b.Detach()
	}
	p.Forms = nil
	if p.Menu != nil {
		p.Menu.Detach()
	}
	if p.Anchors != nil {
		p.Anchors.Detach()
	}
	if p.Header != nil {
		p.Header.Detach()
	}
	if p.Spy != nil {
		p.Spy.Detach()
	}
	if p.Tabs != nil {
		p.Tabs.Detach()
	}
	if p.Cart != nil {
		p.Cart.Detach()
	}
}
