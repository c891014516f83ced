// Package config handles application configuration: API credentials from
// environment variables (populated by the .env file in main.go) and
// migration options from an optional YAML file.
package config

import (
	"errors"
	"os"
)

// Config holds the credentials for both API clients.
type Config struct {
	KaitenURL   string
	KaitenToken string
	PlankaURL   string
	PlankaToken string
}

// LoadConfig loads credentials from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		KaitenURL:   os.Getenv("KAITEN_API_URL"),
		KaitenToken: os.Getenv("KAITEN_API_KEY"),
		PlankaURL:   os.Getenv("PLANKA_API_URL"),
		PlankaToken: os.Getenv("PLANKA_API_KEY"),
	}

	if cfg.KaitenURL == "" {
		return nil, errors.New("KAITEN_API_URL environment variable not set")
	}
	if cfg.KaitenToken == "" {
		return nil, errors.New("KAITEN_API_KEY environment variable not set")
	}
	if cfg.PlankaURL == "" {
		return nil, errors.New("PLANKA_API_URL environment variable not set")
	}
	if cfg.PlankaToken == "" {
		return nil, errors.New("PLANKA_API_KEY environment variable not set")
	}

	return cfg, nil
}
