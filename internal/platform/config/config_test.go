package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "1200", cfg.Ledger.ReceivableAccountCode)
	assert.Equal(t, "4000", cfg.Ledger.RevenueAccountCode)
	assert.Equal(t, "1000", cfg.Ledger.CashAccountCode)
	assert.False(t, cfg.Ledger.EnforceFiscalYear)
	assert.Equal(t, 8, cfg.Ledger.ReportConcurrency)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORE", "MEMORY")
	v.Set("JWT_EXPIRY_DURATION", "not-a-duration")
	v.Set("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	v.Set("REPORT_CONCURRENCY", 0)
	v.Set("LEDGER_ENFORCE_FISCAL_YEAR", true)
	cfg := fromViper(v)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 1, cfg.Ledger.ReportConcurrency)
	assert.True(t, cfg.Ledger.EnforceFiscalYear)
}

func TestUnknownStoreFallsBack(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORE", "mysql")
	assert.Equal(t, StorePostgres, fromViper(v).Store)
}
