// Package order implements the order lifecycle: building an order from a
// cart, aggregating historical spend, and cloning past orders.
package order

import (
	"errors"

	"food-delivery/internal/cart"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
)

var errNilRestaurant = errors.New("restaurant is required")

// Build turns a cart plus delivery details into an unpersisted Order and
// computes the display total. Pure construction: persisting is a separate
// explicit step. The delivery address is carried through as-is, empty or
// not. Every cart line is kept, including zero quantities.
func Build(c *cart.Cart, restaurant *domain.Restaurant, deliveryAddress, specialInstructions, userID string, nowMs int64) (domain.Order, domain.Money, error) {
	if restaurant == nil {
		return domain.Order{}, 0, errNilRestaurant
	}

	prices := make(map[string]string, len(restaurant.Menu))
	for _, item := range restaurant.Menu {
		prices[item.Name] = item.Price
	}

	lines := c.Snapshot()
	items := make([]domain.OrderItem, 0, len(lines))
	var total domain.Money
	for _, line := range lines {
		price := prices[line.ItemName]
		items = append(items, domain.OrderItem{
			Name:     line.ItemName,
			Price:    price,
			Quantity: line.Quantity,
		})
		total += LineTotal(price, line.Quantity, nil)
	}

	return domain.Order{
		RestaurantName:      restaurant.Name,
		RestaurantAddress:   restaurant.Address,
		Items:               items,
		DeliveryAddress:     deliveryAddress,
		SpecialInstructions: specialInstructions,
		OrderTime:           nowMs,
		UserID:              userID,
	}, total, nil
}

// LineTotal computes price * quantity with the tolerant price parse shared
// by the builder and the spending aggregator: a malformed price string
// contributes zero and is logged, never an error.
func LineTotal(price string, quantity int, lg *logger.Logger) domain.Money {
	unit, ok := domain.ParsePrice(price)
	if !ok {
		if lg != nil {
			lg.Warn("malformed_price", map[string]any{"price": price})
		}
		return 0
	}
	return unit * domain.Money(quantity)
}
