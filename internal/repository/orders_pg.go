package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery/internal/domain"
)

type OrdersPG struct {
	pool *pgxpool.Pool
}

func NewOrdersPG(pool *pgxpool.Pool) *OrdersPG {
	return &OrdersPG{pool: pool}
}

func (r *OrdersPG) Save(ctx context.Context, order domain.Order) (string, error) {
	id := uuid.NewString()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: begin: %v", domain.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders
			(id, user_id, restaurant_name, restaurant_address, delivery_address, special_instructions, order_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, order.UserID, order.RestaurantName, order.RestaurantAddress,
		order.DeliveryAddress, order.SpecialInstructions, order.OrderTime,
	)
	if err != nil {
		return "", fmt.Errorf("%w: insert order: %v", domain.ErrPersistence, err)
	}

	for pos, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, position, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			id, pos, item.Name, item.Price, item.Quantity,
		)
		if err != nil {
			return "", fmt.Errorf("%w: insert item %s: %v", domain.ErrPersistence, item.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("%w: commit: %v", domain.ErrPersistence, err)
	}
	return id, nil
}

func (r *OrdersPG) FindByID(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, restaurant_name, restaurant_address, delivery_address, special_instructions, order_time
		FROM orders WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.UserID, &o.RestaurantName, &o.RestaurantAddress, &o.DeliveryAddress, &o.SpecialInstructions, &o.OrderTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("find order %s: %w", id, err)
	}
	if err := r.loadItems(ctx, &o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrdersPG) FindLatest(ctx context.Context, userID string) (domain.Order, error) {
	orders, err := r.queryOrders(ctx, `
		SELECT id, user_id, restaurant_name, restaurant_address, delivery_address, special_instructions, order_time
		FROM orders WHERE user_id = $1
		ORDER BY order_time DESC LIMIT 1`,
		userID,
	)
	if err != nil {
		return domain.Order{}, err
	}
	if len(orders) == 0 {
		return domain.Order{}, fmt.Errorf("latest order for %s: %w", userID, domain.ErrNotFound)
	}
	return orders[0], nil
}

func (r *OrdersPG) FindRecent(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, user_id, restaurant_name, restaurant_address, delivery_address, special_instructions, order_time
		FROM orders WHERE user_id = $1
		ORDER BY order_time DESC LIMIT $2`,
		userID, limit,
	)
}

func (r *OrdersPG) FindInRange(ctx context.Context, userID string, startMs, endMs int64) ([]domain.Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, user_id, restaurant_name, restaurant_address, delivery_address, special_instructions, order_time
		FROM orders
		WHERE user_id = $1 AND order_time >= $2 AND order_time < $3
		ORDER BY order_time`,
		userID, startMs, endMs,
	)
}

func (r *OrdersPG) FindFavorites(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT restaurant_name FROM orders WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("find favorites: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *OrdersPG) queryOrders(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.RestaurantName, &o.RestaurantAddress, &o.DeliveryAddress, &o.SpecialInstructions, &o.OrderTime); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrdersPG) loadItems(ctx context.Context, o *domain.Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT name, price, quantity FROM order_items
		WHERE order_id = $1 ORDER BY position`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("load items for %s: %w", o.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.Name, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
