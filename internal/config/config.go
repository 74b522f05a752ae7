package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Geocoder GeocoderConfig
	HTTP     HTTPConfig
	Delivery DeliveryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RabbitMQConfig struct {
	Host     string // empty disables event publishing
	Port     int
	User     string
	Password string
	VHost    string
}

type GeocoderConfig struct {
	BaseURL string
}

type HTTPConfig struct {
	Port int
}

type DeliveryConfig struct {
	AvgSpeedKmh float64
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	mqPort, _ := strconv.Atoi(getEnv("RABBITMQ_PORT", "5672"))
	httpPort, _ := strconv.Atoi(getEnv("HTTP_PORT", "3000"))
	speed, err := strconv.ParseFloat(getEnv("AVG_SPEED_KMH", "40"), 64)
	if err != nil || speed <= 0 {
		speed = 40
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "fooddelivery"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", ""),
			Port:     mqPort,
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", "/"),
		},
		Geocoder: GeocoderConfig{
			BaseURL: getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		},
		HTTP: HTTPConfig{Port: httpPort},
		Delivery: DeliveryConfig{
			AvgSpeedKmh: speed,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
