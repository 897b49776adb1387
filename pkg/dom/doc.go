// Package dom provides a headless DOM for running page behavior on the server.
//
// A Document is parsed from HTML with golang.org/x/net/html and queried with
// CSS selectors compiled by cascadia. Elements are thin handles over the
// underlying *html.Node, so two Element values for the same node are Equal
// and share listeners, classes and attributes.
//
// # Events
//
// Listeners are registered per element with AddEventListener and invoked
// synchronously by Dispatch. Events that bubble in browsers (click, submit,
// input, change) bubble here too; blur, focus and scroll do not.
//
//	form.AddEventListener("submit", func(ev *dom.Event) {
//	    ev.PreventDefault()
//	})
//	form.RequestSubmit()
//
// # Time
//
// The Window owns a virtual clock. SetTimeout and RequestAnimationFrame
// schedule callbacks that run only when the clock is advanced with Advance,
// which keeps timer-driven behavior deterministic.
//
// # Layout
//
// There is no layout engine. Offsets and heights come from a Layout; the
// default AttrLayout reads data-offset-top and data-height attributes.
//
// A Document is not safe for concurrent use.
package dom
