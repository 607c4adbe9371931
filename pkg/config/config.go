// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Weather  WeatherConfig
}

type ServerConfig struct {
	Port               string
	RateLimitPerSecond int
	RateLimitBurst     int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type WeatherConfig struct {
	BaseURL string
	APIKey  string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               envOr("SERVER_PORT", "8080"),
			RateLimitPerSecond: envIntOr("RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:     envIntOr("RATE_LIMIT_BURST", 40),
		},
		Database: DatabaseConfig{
			Host:     envOr("DB_HOST", "localhost"),
			Port:     envOr("DB_PORT", "5432"),
			User:     envOr("DB_USER", "postgres"),
			Password: envOr("DB_PASSWORD", "postgres"),
			Name:     envOr("DB_NAME", "tripscheduler"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		Weather: WeatherConfig{
			BaseURL: envOr("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
			APIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		},
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
