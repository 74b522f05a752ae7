// Package repository defines the persistence contracts the core consumes
// and their Postgres implementations. The core never assumes a save
// succeeded and never retries: transient store failures surface to the
// immediate caller as typed errors.
package repository

import (
	"context"

	"food-delivery/internal/domain"
)

type Orders interface {
	// Save persists the order and returns the store-assigned id.
	// Any store failure is reported as domain.ErrPersistence.
	Save(ctx context.Context, order domain.Order) (string, error)
	// FindByID returns domain.ErrNotFound when no such order exists.
	FindByID(ctx context.Context, id string) (domain.Order, error)
	// FindLatest returns the user's most recent order.
	FindLatest(ctx context.Context, userID string) (domain.Order, error)
	// FindRecent returns up to limit orders, newest first.
	FindRecent(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	// FindInRange returns orders with startMs <= order_time < endMs.
	FindInRange(ctx context.Context, userID string, startMs, endMs int64) ([]domain.Order, error)
	// FindFavorites returns the distinct restaurant names across the
	// user's past orders. Derived, not stored.
	FindFavorites(ctx context.Context, userID string) ([]string, error)
}

type Restaurants interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	// FindByName returns domain.ErrNotFound when no such restaurant exists.
	FindByName(ctx context.Context, name string) (domain.Restaurant, error)
}
