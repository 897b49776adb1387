// Package page mounts every site behavior onto a parsed document.
//
// Mount wires the preloader, mobile menu, anchor scrolling, sticky header,
// scroll spy, menu tabs, add-to-cart notifications and one validator per
// form, using the timings and classes from a config.Config:
//
//	doc, err := page.Load(cfg.PagePath())
//	if err != nil {
//	    return err
//	}
//	p, err := page.Mount(doc, cfg, page.WithObserver(metrics))
//
// The behaviors are independent; a page without a header, menu or tabs
// simply skips them.
package page
