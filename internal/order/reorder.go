package order

import (
	"context"
	"fmt"
	"time"

	"food-delivery/internal/domain"
	"food-delivery/internal/repository"
)

// ReorderService clones a past order into a new pending order.
type ReorderService struct {
	orders repository.Orders
}

func NewReorderService(orders repository.Orders) *ReorderService {
	return &ReorderService{orders: orders}
}

// Reorder persists a new order with the same items and addresses as the
// previous one, a fresh order time, and the current caller as owner. The
// previous order is never mutated. A missing restaurant address is
// rejected up front: tracking the new order would be impossible.
func (s *ReorderService) Reorder(ctx context.Context, previous domain.Order, userID string, now time.Time) (domain.Order, error) {
	if previous.RestaurantAddress == "" {
		return domain.Order{}, fmt.Errorf("reorder %s: %w", previous.ID, domain.ErrMissingAddress)
	}

	items := make([]domain.OrderItem, len(previous.Items))
	copy(items, previous.Items)

	next := domain.Order{
		RestaurantName:      previous.RestaurantName,
		RestaurantAddress:   previous.RestaurantAddress,
		Items:               items,
		DeliveryAddress:     previous.DeliveryAddress,
		SpecialInstructions: previous.SpecialInstructions,
		OrderTime:           now.UnixMilli(),
		UserID:              userID,
	}

	id, err := s.orders.Save(ctx, next)
	if err != nil {
		return domain.Order{}, fmt.Errorf("save reorder: %w", err)
	}
	next.ID = id
	return next, nil
}
