// Package events publishes order lifecycle events for restaurant-side
// consumers. Publishing sits outside the durability path: an order is
// already saved by the time an event goes out.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"food-delivery/internal/connections/rabbitmq"
	"food-delivery/internal/domain"
)

const (
	Exchange       = "orders_topic"
	OrderPlacedKey = "order.placed"
)

type orderEvent struct {
	OrderID        string             `json:"order_id"`
	UserID         string             `json:"user_id"`
	RestaurantName string             `json:"restaurant_name"`
	Items          []domain.OrderItem `json:"items"`
	OrderTime      int64              `json:"order_time"`
}

type Publisher struct {
	mq *rabbitmq.Client
}

func NewPublisher(mq *rabbitmq.Client) (*Publisher, error) {
	if err := mq.DeclareExchange(Exchange); err != nil {
		return nil, fmt.Errorf("declare %s: %w", Exchange, err)
	}
	return &Publisher{mq: mq}, nil
}

func (p *Publisher) OrderPlaced(ctx context.Context, o domain.Order) error {
	return p.publish(ctx, OrderPlacedKey, o)
}

func (p *Publisher) publish(ctx context.Context, key string, o domain.Order) error {
	body, err := json.Marshal(orderEvent{
		OrderID:        o.ID,
		UserID:         o.UserID,
		RestaurantName: o.RestaurantName,
		Items:          o.Items,
		OrderTime:      o.OrderTime,
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.mq.PublishPersistent(ctx, Exchange, key, body); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}
