package order

import (
	"context"
	"fmt"
	"time"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/repository"
)

// SpendingAggregator computes a user's total spend for a calendar day.
type SpendingAggregator struct {
	orders repository.Orders
	lg     *logger.Logger
}

func NewSpendingAggregator(orders repository.Orders, lg *logger.Logger) *SpendingAggregator {
	return &SpendingAggregator{orders: orders, lg: lg}
}

// DayBounds returns the half-open [startOfDay, startOfNextDay) interval for
// the calendar date of t in the given zone, as epoch milliseconds.
func DayBounds(t time.Time, loc *time.Location) (startMs, endMs int64) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start.UnixMilli(), start.AddDate(0, 0, 1).UnixMilli()
}

// TotalSpend sums price * quantity across every line of every order the
// user placed on the given calendar day. A date with no orders yields
// zero, not an error. Malformed prices contribute zero.
func (a *SpendingAggregator) TotalSpend(ctx context.Context, userID string, date time.Time, loc *time.Location) (domain.Money, error) {
	startMs, endMs := DayBounds(date, loc)
	orders, err := a.orders.FindInRange(ctx, userID, startMs, endMs)
	if err != nil {
		return 0, fmt.Errorf("find orders in range: %w", err)
	}

	var total domain.Money
	for _, o := range orders {
		for _, item := range o.Items {
			total += LineTotal(item.Price, item.Quantity, a.lg)
		}
	}
	return total, nil
}
