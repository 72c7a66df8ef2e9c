package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr        string
	Environment string

	// Optional; when set, tax tables load from Postgres instead of CSV.
	DatabaseURL string

	// Optional; when set, the API requires bearer tokens.
	JWTSecret           string
	APIClientID         string
	APIClientSecretHash string
	TokenTTL            time.Duration

	TaxTablePath string
	TaxTableYear int

	PayslipDir   string
	MaxBodyBytes int64
}

func Load() Config {
	return Config{
		Addr:                getEnv("APP_ADDR", ":8080"),
		Environment:         getEnv("APP_ENV", "development"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		APIClientID:         getEnv("API_CLIENT_ID", ""),
		APIClientSecretHash: getEnv("API_CLIENT_SECRET_HASH", ""),
		TokenTTL:            getEnvDuration("TOKEN_TTL", time.Hour),
		TaxTablePath:        getEnv("TAX_TABLE_PATH", "data/maandtabel_2026.csv"),
		TaxTableYear:        getEnvInt("TAX_TABLE_YEAR", 2026),
		PayslipDir:          getEnv("PAYSLIP_DIR", "storage/payslips"),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) AuthEnabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}

func (c Config) Validate() error {
	if c.Environment == "production" && !c.AuthEnabled() {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.AuthEnabled() && (c.APIClientID == "" || c.APIClientSecretHash == "") {
		return fmt.Errorf("API_CLIENT_ID and API_CLIENT_SECRET_HASH must be set when JWT_SECRET is set")
	}
	if c.TaxTableYear < 2000 || c.TaxTableYear > 2100 {
		return fmt.Errorf("TAX_TABLE_YEAR out of range: %d", c.TaxTableYear)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
