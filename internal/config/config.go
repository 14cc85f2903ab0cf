package config

import (
	"log"
	"os"
	"strings"
)

const (
	defaultDBPath   = "./retail-calculator.db"
	defaultPort     = "8080"
	defaultEnv      = "dev"
	defaultLogLevel = "info"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env              string
	DBPath           string
	Port             string
	FormCookieSecret string
	LogLevel         string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Local development convenience; production injects real env vars.
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: read .env: %v", err)
	}

	cfg := Config{
		Env:              strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		DBPath:           os.Getenv("DB_PATH"),
		Port:             os.Getenv("PORT"),
		FormCookieSecret: os.Getenv("FORM_COOKIE_SECRET"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg
}

// IsDev reports whether the app runs in the local development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}
