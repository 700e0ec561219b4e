package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime settings, loaded from environment variables
type Config struct {
	ServerPort string
	DSN        string

	JWTSecret  string
	JWTExpDays int64

	CORSAllowOrigins []string

	// InitialAdminEmail promotes a single known email to admin at
	// registration, so a fresh deployment can bootstrap its first admin.
	InitialAdminEmail string
}

// Load reads configuration from environment variables.
// JWT_SECRET_KEY and the DB_* variables are mandatory.
func Load() (*Config, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DSN:               dsn,
		JWTSecret:         jwtSecret,
		JWTExpDays:        getEnvAsInt64("JWT_EXPIRATION_DAYS", 7),
		InitialAdminEmail: os.Getenv("INITIAL_ADMIN_EMAIL"),
	}

	origins := getEnv("CORS_ALLOW_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return fallback
}
