package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	StorageDriver  string
	MigrationsPath string

	// Ledger behaviour
	TrialBalanceStatuses      []domain.EntryStatus
	EntryCreateMaxAttempts    int
	EntryCreateRetryBaseDelay time.Duration
	JournalCacheTTL           time.Duration

	// HTTP surface
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("TRIAL_BALANCE_STATUSES", "POSTED,VALIDATED")
	v.SetDefault("ENTRY_CREATE_MAX_ATTEMPTS", 5)
	v.SetDefault("ENTRY_CREATE_RETRY_BASE_DELAY", "10ms")
	v.SetDefault("JOURNAL_CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:            v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:          v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		StorageDriver:          strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:         v.GetString("MIGRATIONS_PATH"),
		EntryCreateMaxAttempts: v.GetInt("ENTRY_CREATE_MAX_ATTEMPTS"),
		RateLimit:              v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	statuses, err := parseStatuses(v.GetString("TRIAL_BALANCE_STATUSES"))
	if err != nil {
		return nil, err
	}
	cfg.TrialBalanceStatuses = statuses

	if cfg.EntryCreateRetryBaseDelay, err = parseDuration(v, "ENTRY_CREATE_RETRY_BASE_DELAY"); err != nil {
		return nil, err
	}
	if cfg.JournalCacheTTL, err = parseDuration(v, "JOURNAL_CACHE_TTL"); err != nil {
		return nil, err
	}
	if cfg.EntryCreateMaxAttempts < 1 {
		log.Printf("Warning: ENTRY_CREATE_MAX_ATTEMPTS=%d is below 1. Defaulting to 1.\n", cfg.EntryCreateMaxAttempts)
		cfg.EntryCreateMaxAttempts = 1
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func parseStatuses(raw string) ([]domain.EntryStatus, error) {
	var statuses []domain.EntryStatus
	for _, s := range splitList(raw) {
		status := domain.EntryStatus(strings.ToUpper(s))
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid entry status %q in TRIAL_BALANCE_STATUSES", s)
		}
		statuses = append(statuses, status)
	}
	if len(statuses) == 0 {
		return nil, fmt.Errorf("TRIAL_BALANCE_STATUSES must list at least one status")
	}
	return statuses, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
