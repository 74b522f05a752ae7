package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"food-delivery/internal/app/api"
	"food-delivery/internal/checkout"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/config"
	"food-delivery/internal/connections/database"
	"food-delivery/internal/connections/rabbitmq"
	"food-delivery/internal/events"
	"food-delivery/internal/geo"
	"food-delivery/internal/repository"
)

func main() {
	mode := flag.String("mode", "api", "api | migrate")
	port := flag.Int("port", 0, "http port (overrides HTTP_PORT)")
	flag.Parse()

	lg := logger.New("bootstrap")
	cfg, err := config.Load()
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "migrate":
		if err := database.Migrate(cfg.Database); err != nil {
			lg.Error("migrate_failed", err, nil)
			os.Exit(1)
		}
		lg.Info("migrations_applied", nil)
	case "api":
		if *port == 0 {
			*port = cfg.HTTP.Port
		}
		if err := runAPI(ctx, cfg, *port); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be api or migrate")
		os.Exit(2)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, port int) error {
	lg := logger.New("api")

	pool, err := database.ConnectAndMigrate(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	var publisher checkout.EventPublisher
	if cfg.RabbitMQ.Host != "" {
		mq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("rabbitmq: %w", err)
		}
		defer mq.Close()
		p, err := events.NewPublisher(mq)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		publisher = p
	} else {
		lg.Info("events_disabled", map[string]any{"reason": "no RABBITMQ_HOST"})
	}

	estimator := geo.NewEstimator(
		geo.NewNominatimClient(cfg.Geocoder.BaseURL),
		cfg.Delivery.AvgSpeedKmh,
		lg,
	)

	lg.Info("service_started", map[string]any{"service": "api", "port": port})
	return api.Run(ctx, port, api.Deps{
		Restaurants: repository.NewRestaurantsPG(pool),
		Orders:      repository.NewOrdersPG(pool),
		Estimator:   estimator,
		Events:      publisher,
		Logger:      lg,
	})
}
