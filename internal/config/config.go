package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Notice  NoticeConfig
	CORS    CORSConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Port     int
	Env      string
	LogLevel string
}

// BackendConfig points at the HRMS REST API the console consumes.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// NoticeConfig signs the notification cookie.
type NoticeConfig struct {
	Secret string
	TTL    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// .env is optional; the process environment wins either way.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "HRMS Lite"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Backend configuration
	timeout, err := time.ParseDuration(getEnv("HRMS_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRMS_API_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		URL:     getEnv("HRMS_API_URL", "http://localhost:8000/api"),
		Timeout: timeout,
	}

	// Notice configuration
	noticeTTL, err := time.ParseDuration(getEnv("NOTICE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTICE_TTL: %w", err)
	}

	config.Notice = NoticeConfig{
		Secret: getEnv("NOTICE_SECRET", ""),
		TTL:    noticeTTL,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("HRMS_API_URL must be an absolute http(s) url")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("HRMS_API_TIMEOUT must be positive")
	}
	if c.Notice.Secret == "" {
		return fmt.Errorf("NOTICE_SECRET is required")
	}
	if c.Notice.TTL <= 0 {
		return fmt.Errorf("NOTICE_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
