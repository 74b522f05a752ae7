package order

import (
	"testing"
	"time"

	"food-delivery/internal/cart"
	"food-delivery/internal/domain"
)

var testRestaurant = &domain.Restaurant{
	Name:    "Burger Barn",
	Address: "1 Main St",
	Menu: []domain.MenuItem{
		{Name: "Burger", Price: "$10.00"},
		{Name: "Fries", Price: "$3.50"},
		{Name: "Mystery", Price: "free"},
	},
}

func newCart(t *testing.T, quantities map[string]int) *cart.Cart {
	t.Helper()
	c, err := cart.New(testRestaurant.Menu)
	if err != nil {
		t.Fatalf("cart.New: %v", err)
	}
	for name, qty := range quantities {
		if err := c.SetQuantity(name, qty); err != nil {
			t.Fatalf("SetQuantity(%q): %v", name, err)
		}
	}
	return c
}

func TestBuildTotal(t *testing.T) {
	c := newCart(t, map[string]int{"Burger": 2})
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()

	o, total, err := Build(c, testRestaurant, "2 Side Ave", "", "user-1", now)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if total != 2000 {
		t.Errorf("total = %v, want $20.00", total)
	}
	if o.RestaurantName != "Burger Barn" || o.RestaurantAddress != "1 Main St" {
		t.Errorf("restaurant fields = %q / %q", o.RestaurantName, o.RestaurantAddress)
	}
	if o.OrderTime != now || o.UserID != "user-1" {
		t.Errorf("order time/user = %d / %q", o.OrderTime, o.UserID)
	}
	if o.ID != "" {
		t.Errorf("unpersisted order has id %q", o.ID)
	}
}

func TestBuildKeepsZeroQuantityLines(t *testing.T) {
	c := newCart(t, map[string]int{"Fries": 1})
	o, total, err := Build(c, testRestaurant, "", "", "user-1", 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(o.Items) != 3 {
		t.Fatalf("items = %d, want all 3 menu lines", len(o.Items))
	}
	if total != 350 {
		t.Errorf("total = %v, want $3.50", total)
	}
}

func TestBuildMalformedPriceContributesZero(t *testing.T) {
	c := newCart(t, map[string]int{"Mystery": 4, "Burger": 1})
	_, total, err := Build(c, testRestaurant, "", "", "user-1", 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if total != 1000 {
		t.Errorf("total = %v, want $10.00 (unparseable price ignored)", total)
	}
}

func TestBuildEmptyDeliveryAddressCarriedThrough(t *testing.T) {
	c := newCart(t, nil)
	o, _, err := Build(c, testRestaurant, "", "ring twice", "user-1", 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if o.DeliveryAddress != "" || o.SpecialInstructions != "ring twice" {
		t.Errorf("delivery = %q, instructions = %q", o.DeliveryAddress, o.SpecialInstructions)
	}
}

func TestBuildNilRestaurant(t *testing.T) {
	c := newCart(t, nil)
	if _, _, err := Build(c, nil, "addr", "", "user-1", 0); err == nil {
		t.Fatal("Build(nil restaurant) succeeded, want error")
	}
}
