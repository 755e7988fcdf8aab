package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server  ServerConfig
	OTLP    OTLPConfig
	Log     LogConfig
	Catalog CatalogConfig
	Cart    CartConfig
}

type ServerConfig struct {
	Port string
	Host string
	// DurationMilliseconds enables the extra millisecond request histogram
	DurationMilliseconds bool
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

type LogConfig struct {
	Level slog.Level
}

type CatalogConfig struct {
	BaseURL string
	// Timeout of zero means requests never time out
	Timeout time.Duration
}

type CartConfig struct {
	ShippingFee decimal.Decimal
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first if present; variables already set in
// the environment take precedence over it.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:                 getEnv("SERVER_HOST", "0.0.0.0"),
			Port:                 getEnv("SERVER_PORT", "8080"),
			DurationMilliseconds: getEnvBool("METRICS_DURATION_MS", false),
		},
		OTLP: OTLPConfig{
			Enabled:     getEnvBool("OTEL_ENABLED", true),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront-api"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Log: LogConfig{
			Level: parseLevel(getEnv("LOG_LEVEL", "debug")),
		},
		Catalog: CatalogConfig{
			BaseURL: strings.TrimRight(getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"), "/"),
			Timeout: getEnvDuration("CATALOG_TIMEOUT", 0),
		},
		Cart: CartConfig{
			ShippingFee: getEnvDecimal("CART_SHIPPING_FEE", decimal.NewFromInt(30)),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(os.Getenv(key))
	if err != nil || d.IsNegative() {
		return defaultValue
	}
	return d
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
