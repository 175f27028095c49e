package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Stripe      StripeConfig
	Shipping    ShippingConfig
	CatalogPath string
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StripeConfig is used to call Stripe Checkout for payment sessions
type StripeConfig struct {
	SecretKey  string
	APIBaseURL string // override for testing; defaults to https://api.stripe.com
	SuccessURL string // may contain the {CHECKOUT_SESSION_ID} placeholder
	CancelURL  string
}

// ShippingConfig holds the per-delivery rate tables. The exception rates
// apply only when every item in the cart is an exception SKU.
type ShippingConfig struct {
	StandardRate         float64 // standard tier, regular carts
	ExpressRate          float64 // express tier, regular carts
	ExceptionRate        float64 // standard tier, exception-only carts
	ExceptionExpressRate float64 // express tier, exception-only carts
	ExceptionSKUs        []string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Stripe: StripeConfig{
			SecretKey:  strings.TrimSpace(getEnvOrViper("STRIPE_SECRET_KEY", "")),
			APIBaseURL: strings.TrimSpace(getEnvOrViper("STRIPE_API_BASE_URL", "https://api.stripe.com")),
			SuccessURL: strings.TrimSpace(getEnvOrViper("CHECKOUT_SUCCESS_URL", "https://preyesbaskets.com/checkout/success?session_id={CHECKOUT_SESSION_ID}")),
			CancelURL:  strings.TrimSpace(getEnvOrViper("CHECKOUT_CANCEL_URL", "https://preyesbaskets.com/checkout/cancel")),
		},
		Shipping: ShippingConfig{
			StandardRate:         getFloatOrViper("SHIPPING_STANDARD_RATE", 11),
			ExpressRate:          getFloatOrViper("SHIPPING_EXPRESS_RATE", 15),
			ExceptionRate:        getFloatOrViper("SHIPPING_EXCEPTION_RATE", 8),
			ExceptionExpressRate: getFloatOrViper("SHIPPING_EXCEPTION_EXPRESS_RATE", 12),
			ExceptionSKUs:        splitList(getEnvOrViper("SHIPPING_EXCEPTION_SKUS", "holiday-cheer,joyful-baskets")),
		},
		CatalogPath: getEnvOrViper("CATALOG_PATH", "./catalog.json"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.CatalogPath == "" {
		return nil, fmt.Errorf("CATALOG_PATH is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getFloatOrViper(key string, defaultValue float64) float64 {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
