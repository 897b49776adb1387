package toast

import (
	"strings"

	"github.com/vango-dev/sitekit/pkg/dom"
)

// DefaultCartMessage is the add-to-cart text; {item} is replaced by the item name.
const DefaultCartMessage = "{item} added to cart"

// Item is a menu item added to the cart.
type Item struct {
	Name  string
	Price string
}

// Cart wires .add-to-cart buttons to a Notifier.
type Cart struct {
	notifier *Notifier
	message  string
	onAdd    func(Item)
	removers []func()
}

// AddToCart registers click handlers on every .add-to-cart button in doc.
// Each click reads data-item and data-price, calls onAdd when set, and
// shows a success toast.
func AddToCart(doc *dom.Document, n *Notifier, onAdd func(Item)) *Cart {
	c := &Cart{notifier: n, message: DefaultCartMessage, onAdd: onAdd}
	for _, btn := range doc.QueryAll(".add-to-cart") {
		c.removers = append(c.removers, btn.AddEventListener("click", func(*dom.Event) {
			c.add(Item{Name: btn.GetAttr("data-item"), Price: btn.GetAttr("data-price")})
		}))
	}
	return c
}

// SetMessage changes the notification text template.
func (c *Cart) SetMessage(msg string) {
	if msg != "" {
		c.message = msg
	}
}

func (c *Cart) add(item Item) {
	if c.onAdd != nil {
		c.onAdd(item)
	}
	c.notifier.Success(strings.ReplaceAll(c.message, "{item}", item.Name))
}

// Detach removes the click handlers.
func (c *Cart) Detach() {
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil
}
