// Package toast renders transient notifications into a page.
//
// A Notifier appends a div.notification to the body, adds the "show" class
// on the next tick, and removes the node once the display duration and the
// fade-out have elapsed. Every toast is also dispatched to the body as a
// "sitekit:toast" event so hosts can mirror it elsewhere:
//
//	n := toast.New(doc)
//	n.Success("Reservation confirmed")
//
// AddToCart wires the .add-to-cart buttons of a menu page:
//
//	toast.AddToCart(doc, n, func(item Item) {
//	    cart = append(cart, item)
//	})
package toast
