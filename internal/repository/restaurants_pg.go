package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery/internal/domain"
)

type RestaurantsPG struct {
	pool *pgxpool.Pool
}

func NewRestaurantsPG(pool *pgxpool.Pool) *RestaurantsPG {
	return &RestaurantsPG{pool: pool}
}

func (r *RestaurantsPG) List(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, address, image_urls FROM restaurants ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var out []domain.Restaurant
	for rows.Next() {
		var res domain.Restaurant
		if err := rows.Scan(&res.Name, &res.Address, &res.ImageURLs); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadMenu(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *RestaurantsPG) FindByName(ctx context.Context, name string) (domain.Restaurant, error) {
	var res domain.Restaurant
	err := r.pool.QueryRow(ctx, `
		SELECT name, address, image_urls FROM restaurants WHERE name = $1`,
		name,
	).Scan(&res.Name, &res.Address, &res.ImageURLs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Restaurant{}, fmt.Errorf("restaurant %q: %w", name, domain.ErrNotFound)
		}
		return domain.Restaurant{}, fmt.Errorf("find restaurant %q: %w", name, err)
	}
	if err := r.loadMenu(ctx, &res); err != nil {
		return domain.Restaurant{}, err
	}
	return res, nil
}

func (r *RestaurantsPG) loadMenu(ctx context.Context, res *domain.Restaurant) error {
	rows, err := r.pool.Query(ctx, `
		SELECT name, price FROM menu_items
		WHERE restaurant_name = $1 ORDER BY position`,
		res.Name,
	)
	if err != nil {
		return fmt.Errorf("load menu for %q: %w", res.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.Name, &item.Price); err != nil {
			return fmt.Errorf("scan menu item: %w", err)
		}
		res.Menu = append(res.Menu, item)
	}
	return rows.Err()
}
