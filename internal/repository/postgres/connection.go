package postgres

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
)

// NewConnection creates a new PostgreSQL database connection
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies the initial schema. Statements are idempotent
// (CREATE TABLE IF NOT EXISTS), so repeated startups are safe.
func RunMigrations(db *sql.DB) error {
	schema, err := os.ReadFile("migrations/000001_init_schema.up.sql")
	if err != nil {
		if os.IsNotExist(err) {
			// Deployed without the migrations dir; schema managed externally.
			return nil
		}
		return fmt.Errorf("failed to read migration file: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
