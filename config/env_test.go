package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"BACKEND_URL", "STATIC_BASE_URL", "BACKEND_TIMEOUT", "PAYMENT_METHODS", "REDIS_ENABLED", "BACKEND_CMD"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Backend.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.StaticBaseURL != cfg.Backend.BaseURL {
		t.Errorf("StaticBaseURL = %q, want backend url", cfg.Backend.StaticBaseURL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Backend.Timeout)
	}
	if want := []string{"Cash", "Card", "E-Wallet"}; !reflect.DeepEqual(cfg.Terminal.PaymentMethods, want) {
		t.Errorf("PaymentMethods = %v, want %v", cfg.Terminal.PaymentMethods, want)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
	if cfg.Shell.BackendCmd != "" {
		t.Errorf("BackendCmd = %q, want empty", cfg.Shell.BackendCmd)
	}
	if cfg.Session.TokenKey != "pos_access_token" {
		t.Errorf("TokenKey = %q", cfg.Session.TokenKey)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://pos.local:9000/")
	t.Setenv("CHECKOUT_TIMEOUT", "2s")
	t.Setenv("PAYMENT_METHODS", " Cash , GCash ,,")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_STORE", "Redis")

	cfg := LoadConfig()

	if cfg.Backend.BaseURL != "http://pos.local:9000" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.Backend.BaseURL)
	}
	if cfg.Terminal.CheckoutTimeout != 2*time.Second {
		t.Errorf("CheckoutTimeout = %v", cfg.Terminal.CheckoutTimeout)
	}
	if want := []string{"Cash", "GCash"}; !reflect.DeepEqual(cfg.Terminal.PaymentMethods, want) {
		t.Errorf("PaymentMethods = %v, want %v", cfg.Terminal.PaymentMethods, want)
	}
	if !cfg.Redis.Enabled || cfg.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Errorf("Addr = %q", cfg.Redis.Addr())
	}
	if cfg.Session.Store != "redis" {
		t.Errorf("Store = %q", cfg.Session.Store)
	}
}
