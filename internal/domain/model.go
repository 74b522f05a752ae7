package domain

import "time"

// MenuItem is a single dish on a restaurant menu. Price is kept as the
// display-formatted string the store holds ("$10.00"); arithmetic goes
// through ParsePrice exactly once per boundary crossing.
type MenuItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Restaurant is keyed by name in the store.
type Restaurant struct {
	Name      string     `json:"name"`
	ImageURLs []string   `json:"image_urls"`
	Menu      []MenuItem `json:"menu"`
	Address   string     `json:"address"`
}

type OrderItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// Order is immutable once persisted; reordering creates a new Order.
// ID is assigned by the store on save and empty before that.
type Order struct {
	ID                  string      `json:"id"`
	RestaurantName      string      `json:"restaurant_name"`
	RestaurantAddress   string      `json:"restaurant_address"`
	Items               []OrderItem `json:"items"`
	DeliveryAddress     string      `json:"delivery_address"`
	SpecialInstructions string      `json:"special_instructions"`
	OrderTime           int64       `json:"order_time"` // epoch milliseconds
	UserID              string      `json:"user_id"`
}

// PlacedAt returns the order time as a time.Time in UTC.
func (o Order) PlacedAt() time.Time {
	return time.UnixMilli(o.OrderTime).UTC()
}

// Coordinate is a WGS 84 point. Produced by geocoding, never persisted.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
