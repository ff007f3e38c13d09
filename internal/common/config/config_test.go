// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, "loan-progress-hub", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Address)
	assert.Equal(t, 250000.0, cfg.Lifecycle.Disbursement.DefaultAmount)
	assert.Equal(t, "XXXX-XXXX-1234", cfg.Lifecycle.Disbursement.BankAccount)
	assert.Equal(t, 2, cfg.Lifecycle.Disbursement.LeadTimeDays)
	assert.Equal(t, "Credit assessment criteria not met", cfg.Lifecycle.Rejection.Reason)
	assert.Equal(t, "You can reapply after 6 months with improved credit history.", cfg.Lifecycle.Rejection.Guidance)
	assert.NotEmpty(t, cfg.Lifecycle.ActionIssue.Issue)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
}

func TestApplyDefaults_DoesNotOverrideExplicitValues(t *testing.T) {
	var cfg Config
	cfg.Store.Backend = "postgres"
	cfg.Lifecycle.Disbursement.DefaultAmount = 500000
	cfg.Lifecycle.Rejection.Reason = "Income below threshold"

	applyDefaults(&cfg)

	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, 500000.0, cfg.Lifecycle.Disbursement.DefaultAmount)
	assert.Equal(t, "Income below threshold", cfg.Lifecycle.Rejection.Reason)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "unknown backend",
			mutate:  func(cfg *Config) { cfg.Store.Backend = "dynamo" },
			wantErr: "unknown store backend",
		},
		{
			name:   "none backend is valid",
			mutate: func(cfg *Config) { cfg.Store.Backend = "none" },
		},
		{
			name:    "postgres backend requires connection details",
			mutate:  func(cfg *Config) { cfg.Store.Backend = "postgres" },
			wantErr: "requires host and database",
		},
		{
			name: "postgres backend with connection details",
			mutate: func(cfg *Config) {
				cfg.Store.Backend = "postgres"
				cfg.Store.Postgres.Host = "localhost"
				cfg.Store.Postgres.Database = "loanhub"
			},
		},
		{
			name:    "negative lead time",
			mutate:  func(cfg *Config) { cfg.Lifecycle.Disbursement.LeadTimeDays = -1 },
			wantErr: "must not be negative",
		},
		{
			name: "email notifier without sender",
			mutate: func(cfg *Config) {
				cfg.Notifier.Email.Enabled = true
				cfg.Notifier.Email.FromEmail = ""
			},
			wantErr: "requires from_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			applyDefaults(&cfg)
			tt.mutate(&cfg)

			err := validateConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPostgresConfigGetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5432,
		Database: "loanhub",
		User:     "app",
		Password: "secret",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=app password=secret dbname=loanhub sslmode=require",
		cfg.GetDSN(),
	)
}
