// Package cart holds per-session quantity state over a restaurant menu.
// A cart belongs to exactly one screen session: callers serialize access,
// so no internal locking is needed.
package cart

import (
	"fmt"

	"food-delivery/internal/domain"
)

// Line is one snapshot entry. Zero-quantity lines are included: the
// snapshot covers the whole menu in menu order.
type Line struct {
	ItemName string
	Quantity int
}

type Cart struct {
	names []string // menu order
	qty   map[string]int
}

// New builds a cart with every menu item at quantity zero. Menus with
// repeated item names are rejected: lines are keyed by name and a
// duplicate would collide silently.
func New(menu []domain.MenuItem) (*Cart, error) {
	return NewWithDefault(menu, 0)
}

// NewWithDefault is New with a starting quantity other than zero.
func NewWithDefault(menu []domain.MenuItem, defaultQty int) (*Cart, error) {
	if defaultQty < 0 {
		defaultQty = 0
	}
	c := &Cart{
		names: make([]string, 0, len(menu)),
		qty:   make(map[string]int, len(menu)),
	}
	for _, item := range menu {
		if _, dup := c.qty[item.Name]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateItemName, item.Name)
		}
		c.names = append(c.names, item.Name)
		c.qty[item.Name] = defaultQty
	}
	return c, nil
}

// SetQuantity sets the quantity for an item, clamped to a minimum of zero.
func (c *Cart) SetQuantity(itemName string, qty int) error {
	if _, ok := c.qty[itemName]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownItem, itemName)
	}
	if qty < 0 {
		qty = 0
	}
	c.qty[itemName] = qty
	return nil
}

func (c *Cart) Quantity(itemName string) int {
	return c.qty[itemName]
}

// Snapshot returns every line in menu order, including zero quantities.
func (c *Cart) Snapshot() []Line {
	lines := make([]Line, 0, len(c.names))
	for _, name := range c.names {
		lines = append(lines, Line{ItemName: name, Quantity: c.qty[name]})
	}
	return lines
}
