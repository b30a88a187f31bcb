package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	Backend  BackendConfig
	Terminal TerminalConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	Journal  JournalConfig
	Session  SessionConfig
	Shell    ShellConfig
	Log      LogConfig
}

type BackendConfig struct {
	BaseURL       string
	StaticBaseURL string
	Timeout       time.Duration
}

type TerminalConfig struct {
	ID              string
	Addr            string
	RateLimit       string
	PaymentMethods  []string
	CheckoutTimeout time.Duration
}

type CatalogConfig struct {
	RefreshSpec string
	CacheTTL    time.Duration
}

type JournalConfig struct {
	DSN string
}

type SessionConfig struct {
	Store    string
	TokenKey string
}

type ShellConfig struct {
	DevURL     string
	BundleDir  string
	BackendCmd string
	BackendDir string
}

type LogConfig struct {
	Level string
	File  string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	backendURL := strings.TrimSuffix(getEnv("BACKEND_URL", "http://localhost:5000"), "/")

	return Config{
		Backend: BackendConfig{
			BaseURL:       backendURL,
			StaticBaseURL: strings.TrimSuffix(getEnv("STATIC_BASE_URL", backendURL), "/"),
			Timeout:       cast.ToDuration(getEnv("BACKEND_TIMEOUT", "30s")),
		},
		Terminal: TerminalConfig{
			ID:              getEnv("TERMINAL_ID", "terminal-1"),
			Addr:            getEnv("TERMINAL_ADDR", "127.0.0.1:8080"),
			RateLimit:       getEnv("RATE_LIMIT", "300-M"),
			PaymentMethods:  splitList(getEnv("PAYMENT_METHODS", "Cash,Card,E-Wallet")),
			CheckoutTimeout: cast.ToDuration(getEnv("CHECKOUT_TIMEOUT", "15s")),
		},
		Catalog: CatalogConfig{
			RefreshSpec: getEnv("CATALOG_REFRESH", "@every 5m"),
			CacheTTL:    cast.ToDuration(getEnv("CATALOG_CACHE_TTL", "30m")),
		},
		Redis: RedisConfig{
			Enabled:  cast.ToBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       cast.ToInt(getEnv("REDIS_DB", "0")),
		},
		Journal: JournalConfig{
			DSN: getEnv("JOURNAL_DSN", ""),
		},
		Session: SessionConfig{
			Store:    strings.ToLower(getEnv("SESSION_STORE", "memory")),
			TokenKey: getEnv("SESSION_TOKEN_KEY", "pos_access_token"),
		},
		Shell: ShellConfig{
			DevURL:     getEnv("DEV_URL", ""),
			BundleDir:  getEnv("BUNDLE_DIR", "dist"),
			BackendCmd: os.Getenv("BACKEND_CMD"),
			BackendDir: getEnv("BACKEND_DIR", "backend"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
