package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL     string
	SearchURL string
	SearchKey string
	Port      string
}

// Load reads configuration from the environment, with a .env file as the
// development fallback.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	searchURL := os.Getenv("SEARCH_URL")
	if searchURL == "" {
		return nil, fmt.Errorf("SEARCH_URL environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		PGURL:     pgURL,
		SearchURL: searchURL,
		SearchKey: os.Getenv("SEARCH_KEY"),
		Port:      port,
	}, nil
}
