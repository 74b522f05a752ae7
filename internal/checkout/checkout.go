// Package checkout orchestrates order submission: persist, then announce.
// At most one submission per user may be in flight at a time, so a
// double-tap can never place two orders.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/repository"
)

// EventPublisher announces a persisted order. Implementations must treat
// this as best-effort: the order is durable before it is called.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, o domain.Order) error
}

type Submitter struct {
	orders repository.Orders
	events EventPublisher // nil disables announcements
	lg     *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{} // users with a pending submission
}

func NewSubmitter(orders repository.Orders, events EventPublisher, lg *logger.Logger) *Submitter {
	return &Submitter{
		orders:   orders,
		events:   events,
		lg:       lg,
		inFlight: make(map[string]struct{}),
	}
}

// Submit persists the order and returns it with the store-assigned id.
// A second call for the same user while one is pending fails with
// ErrSubmitInFlight. If ctx is cancelled (the owning screen went away)
// the result is discarded and ctx.Err() returned; the caller must not
// navigate. On a persistence failure no id is returned, so the cart
// survives for a retry.
func (s *Submitter) Submit(ctx context.Context, order domain.Order) (domain.Order, error) {
	if !s.acquire(order.UserID) {
		return domain.Order{}, domain.ErrSubmitInFlight
	}
	defer s.release(order.UserID)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	id, err := s.orders.Save(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("submit order: %w", err)
	}
	order.ID = id
	s.lg.Info("order_saved", map[string]any{"order_id": id, "user_id": order.UserID})

	if err := ctx.Err(); err != nil {
		// Saved but the session is gone: the order stands, nobody navigates.
		return domain.Order{}, err
	}

	s.Announce(ctx, order)
	return order, nil
}

// Announce publishes the placed-order event for an already-durable order.
// Failures are logged, never returned: the order stands either way.
func (s *Submitter) Announce(ctx context.Context, o domain.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.OrderPlaced(ctx, o); err != nil {
		s.lg.Error("order_event_failed", err, map[string]any{"order_id": o.ID})
	}
}

func (s *Submitter) acquire(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *Submitter) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
