package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Accounting policy
	BaseCurrency     string
	PostToLeavesOnly bool

	// Identity
	JWTSecret string
	JWTIssuer string

	// Rate limiting, e.g. "100-M" for 100 requests/minute
	RateLimit string

	// Posting retry
	PostingRetryMax      int
	PostingRetryInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BASE_CURRENCY", "SGD")
	viper.SetDefault("POST_TO_LEAVES_ONLY", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "bright-books-app")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("POSTING_RETRY_MAX", 3)
	viper.SetDefault("POSTING_RETRY_INTERVAL", "50ms")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	cfg.PostToLeavesOnly = viper.GetBool("POST_TO_LEAVES_ONLY")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.PostingRetryMax = viper.GetInt("POSTING_RETRY_MAX")
	retryIntervalStr := viper.GetString("POSTING_RETRY_INTERVAL")
	retryInterval, err := time.ParseDuration(retryIntervalStr)
	if err != nil {
		retryInterval = 50 * time.Millisecond
		log.Printf("Warning: Invalid value for POSTING_RETRY_INTERVAL ('%s'). Defaulting to %s.\n", retryIntervalStr, retryInterval)
	}
	cfg.PostingRetryInterval = retryInterval

	return cfg, nil
}
