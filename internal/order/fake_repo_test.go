package order

import (
	"context"
	"fmt"
	"sort"

	"food-delivery/internal/domain"
)

// fakeOrders is an in-memory repository.Orders used across the package tests.
type fakeOrders struct {
	saved   []domain.Order
	nextID  int
	saveErr error
}

func (f *fakeOrders) Save(ctx context.Context, o domain.Order) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.nextID++
	o.ID = fmt.Sprintf("order-%d", f.nextID)
	f.saved = append(f.saved, o)
	return o.ID, nil
}

func (f *fakeOrders) FindByID(ctx context.Context, id string) (domain.Order, error) {
	for _, o := range f.saved {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeOrders) FindLatest(ctx context.Context, userID string) (domain.Order, error) {
	orders, _ := f.FindRecent(ctx, userID, 1)
	if len(orders) == 0 {
		return domain.Order{}, domain.ErrNotFound
	}
	return orders[0], nil
}

func (f *fakeOrders) FindRecent(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.saved {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderTime > out[j].OrderTime })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeOrders) FindInRange(ctx context.Context, userID string, startMs, endMs int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.saved {
		if o.UserID == userID && o.OrderTime >= startMs && o.OrderTime < endMs {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) FindFavorites(ctx context.Context, userID string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, o := range f.saved {
		if o.UserID == userID && !seen[o.RestaurantName] {
			seen[o.RestaurantName] = true
			out = append(out, o.RestaurantName)
		}
	}
	return out, nil
}
