package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable through STORE.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// LedgerConfig holds the posting policy of the ledger core.
type LedgerConfig struct {
	ReceivableAccountCode string
	RevenueAccountCode    string
	CashAccountCode       string
	EnforceFiscalYear     bool
	ReportConcurrency     int
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	Store              string
	MigrationsPath     string
	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	RateLimit          string // ulule formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
	Ledger             LedgerConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE", StorePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "ledger-core")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LEDGER_AR_ACCOUNT_CODE", "1200")
	v.SetDefault("LEDGER_REVENUE_ACCOUNT_CODE", "4000")
	v.SetDefault("LEDGER_CASH_ACCOUNT_CODE", "1000")
	v.SetDefault("LEDGER_ENFORCE_FISCAL_YEAR", false)
	v.SetDefault("REPORT_CONCURRENCY", 8)
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		Store:          strings.ToLower(v.GetString("STORE")),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		Ledger: LedgerConfig{
			ReceivableAccountCode: v.GetString("LEDGER_AR_ACCOUNT_CODE"),
			RevenueAccountCode:    v.GetString("LEDGER_REVENUE_ACCOUNT_CODE"),
			CashAccountCode:       v.GetString("LEDGER_CASH_ACCOUNT_CODE"),
			EnforceFiscalYear:     v.GetBool("LEDGER_ENFORCE_FISCAL_YEAR"),
			ReportConcurrency:     v.GetInt("REPORT_CONCURRENCY"),
		},
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		log.Printf("Warning: unknown STORE %q. Defaulting to %s.\n", cfg.Store, StorePostgres)
		cfg.Store = StorePostgres
	}
	if cfg.Store == StorePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.Ledger.ReportConcurrency < 1 {
		cfg.Ledger.ReportConcurrency = 1
	}

	return cfg
}

// DefaultLedgerConfig is the posting policy used when no environment is loaded.
func DefaultLedgerConfig() LedgerConfig {
	v := viper.New()
	setDefaults(v)
	return fromViper(v).Ledger
}
