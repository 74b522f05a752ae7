package order

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"food-delivery/internal/domain"
)

func TestReorderCreatesFreshOrder(t *testing.T) {
	repo := &fakeOrders{}
	ctx := context.Background()

	previous := mkOrder("original-user", time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		domain.OrderItem{Name: "Burger", Price: "$10.00", Quantity: 2},
		domain.OrderItem{Name: "Fries", Price: "$3.50", Quantity: 0},
	)
	previous.DeliveryAddress = "2 Side Ave"
	previous.SpecialInstructions = "no onions"
	id, err := repo.Save(ctx, previous)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	previous.ID = id

	now := time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)
	svc := NewReorderService(repo)
	next, err := svc.Reorder(ctx, previous, "current-user", now)
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	if next.ID == "" || next.ID == previous.ID {
		t.Errorf("new id = %q, want fresh id distinct from %q", next.ID, previous.ID)
	}
	if !reflect.DeepEqual(next.Items, previous.Items) {
		t.Errorf("items = %+v, want identical to previous", next.Items)
	}
	if next.RestaurantName != previous.RestaurantName ||
		next.RestaurantAddress != previous.RestaurantAddress ||
		next.DeliveryAddress != previous.DeliveryAddress ||
		next.SpecialInstructions != previous.SpecialInstructions {
		t.Errorf("cloned fields differ: %+v", next)
	}
	if next.OrderTime != now.UnixMilli() {
		t.Errorf("order time = %d, want %d", next.OrderTime, now.UnixMilli())
	}
	if next.UserID != "current-user" {
		t.Errorf("user = %q, want current caller", next.UserID)
	}
}

func TestReorderDoesNotMutatePrevious(t *testing.T) {
	repo := &fakeOrders{}
	ctx := context.Background()
	previous := mkOrder("uid", time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		domain.OrderItem{Name: "Burger", Price: "$10.00", Quantity: 1})
	previous.ID = "order-keep"
	before := previous.OrderTime

	if _, err := NewReorderService(repo).Reorder(ctx, previous, "uid2", time.Now()); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if previous.OrderTime != before || previous.UserID != "uid" {
		t.Errorf("previous order mutated: %+v", previous)
	}
}

func TestReorderMissingRestaurantAddress(t *testing.T) {
	previous := domain.Order{
		ID:             "order-1",
		RestaurantName: "Burger Barn",
		Items:          []domain.OrderItem{{Name: "Burger", Price: "$10.00", Quantity: 1}},
		UserID:         "uid",
	}
	_, err := NewReorderService(&fakeOrders{}).Reorder(context.Background(), previous, "uid", time.Now())
	if !errors.Is(err, domain.ErrMissingAddress) {
		t.Errorf("err = %v, want ErrMissingAddress", err)
	}
}

func TestReorderSaveFailure(t *testing.T) {
	repo := &fakeOrders{saveErr: domain.ErrPersistence}
	previous := mkOrder("uid", time.Now(), domain.OrderItem{Name: "Burger", Price: "$10.00", Quantity: 1})
	_, err := NewReorderService(repo).Reorder(context.Background(), previous, "uid", time.Now())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("err = %v, want ErrPersistence", err)
	}
}
