package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the console.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	TokenStore  TokenStoreConfig
	Session     SessionConfig
	Bootstrap   BootstrapConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type APIConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	MaxConnsPerHost int
	ProbeInterval   time.Duration
}

type TokenStoreConfig struct {
	Path string
}

type SessionConfig struct {
	// ExpiryCheckSpec is a cron spec for the credential expiry watcher.
	ExpiryCheckSpec string
}

// BootstrapConfig optionally logs the console in at startup when no stored
// credential survives. Both fields empty disables it.
type BootstrapConfig struct {
	Username string
	Password string
}

type ContextConfig struct {
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the console can start in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "staffdesk-console"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:         getString("API_BASE_URL", "http://localhost:8080/api"),
			RequestTimeout:  getDuration("API_REQUEST_TIMEOUT", 10*time.Second),
			MaxConnsPerHost: getInt("API_MAX_CONNS_PER_HOST", 64),
			ProbeInterval:   getDuration("API_PROBE_INTERVAL", 30*time.Second),
		},
		TokenStore: TokenStoreConfig{
			Path: getString("TOKEN_STORE_PATH", "./data/credentials.db"),
		},
		Session: SessionConfig{
			ExpiryCheckSpec: getString("SESSION_EXPIRY_CHECK_SPEC", "@every 1m"),
		},
		Bootstrap: BootstrapConfig{
			Username: os.Getenv("CONSOLE_USERNAME"),
			Password: os.Getenv("CONSOLE_PASSWORD"),
		},
		Context: ContextConfig{
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return nil, fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", cfg.API.BaseURL)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
