package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is wrapped by every error returned from LoadConfig.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	DATASET_PATH=data/buyers.json
//	REFERENCE_PATH=reference.yaml
//	FUTURES_PRICE=4.4475        # optional, overrides reference futures.generate
//	MARKET_FUTURES_PRICE=4.48   # optional, overrides reference futures.market
//	RANDOM_SEED=2026
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=graindesk
//	POSTGRES_SSLMODE=disable
type Config struct {
	Dataset  DatasetConfig  // Buyer dataset and reference tables
	Market   MarketConfig   // Futures prices used by the generator and basis pass
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
}

// DatasetConfig locates the buyer dataset and the reference tables.
//
// Fields:
//   - Path: JSON array of buyer records read and written by every mode.
//   - ReferencePath: optional YAML file overriding the embedded reference tables.
//   - Seed: random seed for generation and phone placeholders (0 = time-seeded).
type DatasetConfig struct {
	Path          string
	ReferencePath string
	Seed          uint64
}

// MarketConfig holds the futures prices. A zero value means the price comes
// from the reference tables.
type MarketConfig struct {
	FuturesPrice       float64 // used when deriving basis during generation
	MarketFuturesPrice float64 // used by the market profile pass
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Command-line flags are applied on top by cmd/main.go.
//
// Returns:
//   - error wrapping ErrInvalidConfig when validateConfig rejects the result.
func LoadConfig() error {
	viper.SetDefault("DATASET_PATH", "data/buyers.json")
	viper.SetDefault("REFERENCE_PATH", "")
	// 0 defers to the futures section of the reference tables
	viper.SetDefault("FUTURES_PRICE", 0)
	viper.SetDefault("MARKET_FUTURES_PRICE", 0)
	viper.SetDefault("RANDOM_SEED", 0)

	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "graindesk")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Dataset: DatasetConfig{
			Path:          viper.GetString("DATASET_PATH"),
			ReferencePath: viper.GetString("REFERENCE_PATH"),
			Seed:          viper.GetUint64("RANDOM_SEED"),
		},
		Market: MarketConfig{
			FuturesPrice:       viper.GetFloat64("FUTURES_PRICE"),
			MarketFuturesPrice: viper.GetFloat64("MARKET_FUTURES_PRICE"),
		},
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}
	AppConfig.Postgres.URL = postgresURL(AppConfig.Postgres)

	return validateConfig()
}

func postgresURL(p PostgresConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// validateConfig ensures required variables are present and sane.
//
// Behavior:
//   - Collects every missing or invalid key instead of stopping at the first.
//   - Returns an error wrapping ErrInvalidConfig naming them all.
func validateConfig() error {
	var missing, invalid []string

	if AppConfig.Dataset.Path == "" {
		missing = append(missing, "DATASET_PATH")
	}
	if AppConfig.Market.FuturesPrice < 0 {
		invalid = append(invalid, "FUTURES_PRICE")
	}
	if AppConfig.Market.MarketFuturesPrice < 0 {
		invalid = append(invalid, "MARKET_FUTURES_PRICE")
	}
	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "must not be negative: "+strings.Join(invalid, ", "))
	}
	if len(parts) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(parts, "; "))
	}
	return nil
}
