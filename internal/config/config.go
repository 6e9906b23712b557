package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr    = ":8080"
	defaultDatabaseURL   = "autoshop.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTAccessTTL  = "24h"
	defaultTaxRate       = "0.20"
	defaultInvoiceNetDue = "14"
)

type Config struct {
	AppEnv        string
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	TaxRate       float64
	InvoiceNetDue int // days until a generated invoice is due
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.TaxRate, err = parseFloatEnv("TAX_RATE", defaultTaxRate)
	if err != nil {
		return nil, err
	}
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return nil, fmt.Errorf("TAX_RATE must be in [0,1), got %v", cfg.TaxRate)
	}

	cfg.InvoiceNetDue, err = parseIntEnv("INVOICE_NET_DUE_DAYS", defaultInvoiceNetDue)
	if err != nil {
		return nil, err
	}
	if cfg.InvoiceNetDue <= 0 {
		return nil, fmt.Errorf("INVOICE_NET_DUE_DAYS must be positive, got %d", cfg.InvoiceNetDue)
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return d, nil
}

func parseFloatEnv(key, fallback string) (float64, error) {
	raw := getEnv(key, fallback)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return f, nil
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return n, nil
}
