// Package api exposes the order core over HTTP. Route shapes mirror the
// client's navigation parameters, so path segments arrive URL-escaped and
// are never trusted as pre-validated.
package api

import (
	"context"
	"strconv"

	"food-delivery/internal/checkout"
	"food-delivery/internal/common/httpx"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/geo"
	"food-delivery/internal/repository"
)

type Deps struct {
	Restaurants repository.Restaurants
	Orders      repository.Orders
	Estimator   *geo.Estimator
	Events      checkout.EventPublisher // nil disables order announcements
	Logger      *logger.Logger
}

func Run(ctx context.Context, port int, deps Deps) error {
	h := newHandler(deps)
	srv := httpx.New(":"+strconv.Itoa(port), h.router())
	deps.Logger.Info("http_listening", map[string]any{"port": port})
	return srv.Run(ctx)
}
