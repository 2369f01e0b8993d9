package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// LedgerRowCap bounds the number of rows a single ledger derivation may
	// produce before the window is rejected.
	LedgerRowCap int

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// CORSAllowedOrigins is the comma-separated origin allowlist.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LEDGER_ROW_CAP", 10000)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.LedgerRowCap = viper.GetInt("LEDGER_ROW_CAP")
	if cfg.LedgerRowCap <= 0 {
		cfg.LedgerRowCap = 10000
		log.Printf("Warning: Invalid LEDGER_ROW_CAP. Defaulting to %d\n", cfg.LedgerRowCap)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
