package configs

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig - вся конфигурация сервиса, собранная из окружения.
type AppConfig struct {
	AppName string

	Database struct {
		URL string
	}

	RabbitMQ struct {
		URL string
	}

	Rest struct {
		PORT string
	}

	StdoutLogger struct {
		Level string
	}

	FluentBit struct {
		Enabled bool
		Host    string
		Port    int
		Level   string
	}
}

// LoadConfig читает .env (если он есть) и окружение.
// Обязательны только адреса внешних систем, у остального есть дефолты.
func LoadConfig() (*AppConfig, error) {
	// .env нужен для локальной разработки, в контейнере его нет
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.AppName = getEnvOrDefault("APP_NAME", "marketplace-service")

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	cfg.Rest.PORT = getEnvOrDefault("PORT", "8080")
	cfg.StdoutLogger.Level = getEnvOrDefault("LOG_LEVEL", "info")

	cfg.FluentBit.Enabled = getEnvOrDefault("FLUENT_ENABLED", "false") == "true"
	cfg.FluentBit.Host = getEnvOrDefault("FLUENT_HOST", "127.0.0.1")
	cfg.FluentBit.Level = getEnvOrDefault("FLUENT_LEVEL", "info")

	fluentPort, err := strconv.Atoi(getEnvOrDefault("FLUENT_PORT", "24224"))
	if err != nil {
		return nil, fmt.Errorf("FLUENT_PORT must be a number: %w", err)
	}
	cfg.FluentBit.Port = fluentPort

	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
