// Package config loads the service configuration from a YAML file with
// environment-variable overrides for anything secret or deploy-specific.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Application  ApplicationConfig  `yaml:"application"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Email        EmailConfig        `yaml:"email"`
	Subscription SubscriptionConfig `yaml:"subscription"`
	Feed         FeedConfig         `yaml:"feed"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ApplicationConfig holds externally visible application settings.
type ApplicationConfig struct {
	// BaseURL is the public root used to build confirmation links,
	// e.g. "https://newsletter.example.com".
	BaseURL string `yaml:"base_url"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the token-store connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// EmailConfig holds the outbound email provider settings.
type EmailConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Sender         string `yaml:"sender"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SubscriptionConfig holds subscription workflow settings.
type SubscriptionConfig struct {
	// TokenTTLHours bounds how long a confirmation token stays valid.
	TokenTTLHours int `yaml:"token_ttl_hours"`
}

// FeedConfig holds RSS issue-builder settings.
type FeedConfig struct {
	MaxItems       int `yaml:"max_items"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Load reads configuration from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromEnv loads .env (if present), then the YAML file, then applies
// environment overrides. Env vars win over file values.
func LoadFromEnv(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("EMAIL_API_KEY"); v != "" {
		cfg.Email.APIKey = v
	}
	if v := os.Getenv("APP_BASE_URL"); v != "" {
		cfg.Application.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Email.TimeoutSeconds == 0 {
		c.Email.TimeoutSeconds = 10
	}
	if c.Subscription.TokenTTLHours == 0 {
		c.Subscription.TokenTTLHours = 24
	}
	if c.Feed.MaxItems == 0 {
		c.Feed.MaxItems = 5
	}
	if c.Feed.TimeoutSeconds == 0 {
		c.Feed.TimeoutSeconds = 15
	}
}
