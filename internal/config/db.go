package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectDB establishes a connection pool to the PostgreSQL database
func ConnectDB(cfg *Config) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting a few times so the server survives the database
	// coming up slightly later (e.g. under docker-compose).
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('user', 'volunteer', 'admin')) DEFAULT 'user',
		volunteer_radius INTEGER NOT NULL DEFAULT 0, -- kilometers
		hours INTEGER NOT NULL DEFAULT 0,
		supplies INTEGER NOT NULL DEFAULT 0,
		center_lat DOUBLE PRECISION,
		center_lng DOUBLE PRECISION,
		created_at BIGINT NOT NULL -- epoch milliseconds
	);

	CREATE TABLE IF NOT EXISTS pins (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		details TEXT NOT NULL DEFAULT '',
		quantity TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('unverified', 'verified')) DEFAULT 'unverified',
		created_by TEXT,
		created_at BIGINT NOT NULL -- epoch milliseconds
	);

	CREATE INDEX IF NOT EXISTS idx_pins_type ON pins(type);
	CREATE INDEX IF NOT EXISTS idx_pins_created_at ON pins(created_at);
	CREATE INDEX IF NOT EXISTS idx_pins_created_by ON pins(created_by);
	CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}
