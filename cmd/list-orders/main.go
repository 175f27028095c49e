package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/repository/postgres"
)

func main() {
	// Best effort .env load; env vars win
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	dbCfg := config.DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefront"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := postgres.NewConnection(dbCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	orders, err := repos.Order.List(context.Background(), 100, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📋 %d archived checkout sessions:\n\n", len(orders))
	for _, o := range orders {
		fmt.Printf("%s  %s\n", o.CreatedAt.Format("2006-01-02 15:04"), o.ID)
		fmt.Printf("  session: %s\n", o.SessionID)
		fmt.Printf("  total:   %.2f %s (subtotal %.2f + shipping %.2f)\n",
			o.Total, o.Currency, o.Subtotal, o.Shipping)
		fmt.Printf("  delivery: %d x %s on %s\n\n",
			o.DeliveryCount, o.DeliverySpeed, o.DeliveryDate)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
