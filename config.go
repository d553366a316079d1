package main

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port            string   `env:"PORT" envDefault:":8080"`
	DSN             string   `env:"DSN" envDefault:"file:careheaven.db?cache=shared&mode=rwc"`
	JWTSecret       string   `env:"JWT_SECRET"`
	StripeSecretKey string   `env:"STRIPE_SECRET_KEY"`
	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174"`
	Env             string   `env:"ENV" envDefault:"development"`
}

// Production reports whether the server runs with production cookie settings.
func (c Config) Production() bool {
	return c.Env == "production"
}

// LoadConfig reads .env if present, then parses the environment.
func LoadConfig() (Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}
