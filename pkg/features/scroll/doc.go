// Package scroll implements the scroll-driven page behaviors: animated
// scrolling, the sticky header and the navigation scroll spy.
//
// All of them listen to the window's "scroll" event and read element
// offsets from the document layout, so they work on a headless
// dom.Document as long as its layout reports positions.
package scroll
