// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like STORE_REDIS_ADDRESS
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, ignored when absent
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root,
// so tests running from nested packages pick it up too.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "loan-progress-hub"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "redis"
	}
	if cfg.Store.Redis.Address == "" {
		cfg.Store.Redis.Address = "localhost:6379"
	}
	if cfg.Store.Postgres.SSLMode == "" {
		cfg.Store.Postgres.SSLMode = "disable"
	}
	if cfg.Store.Postgres.MaxConnections == 0 {
		cfg.Store.Postgres.MaxConnections = 10
	}
	if cfg.Store.Postgres.MaxIdle == 0 {
		cfg.Store.Postgres.MaxIdle = 5
	}
	if cfg.Lifecycle.Disbursement.DefaultAmount == 0 {
		cfg.Lifecycle.Disbursement.DefaultAmount = 250000
	}
	if cfg.Lifecycle.Disbursement.BankAccount == "" {
		cfg.Lifecycle.Disbursement.BankAccount = "XXXX-XXXX-1234"
	}
	if cfg.Lifecycle.Disbursement.LeadTimeDays == 0 {
		cfg.Lifecycle.Disbursement.LeadTimeDays = 2
	}
	if cfg.Lifecycle.Rejection.Reason == "" {
		cfg.Lifecycle.Rejection.Reason = "Credit assessment criteria not met"
	}
	if cfg.Lifecycle.Rejection.Guidance == "" {
		cfg.Lifecycle.Rejection.Guidance = "You can reapply after 6 months with improved credit history."
	}
	if cfg.Lifecycle.ActionIssue.Issue == "" {
		cfg.Lifecycle.ActionIssue.Issue = "The uploaded bank statement is unclear or incomplete."
	}
	if cfg.Lifecycle.ActionIssue.Resolution == "" {
		cfg.Lifecycle.ActionIssue.Resolution = "Please upload a clear, complete bank statement for the last 6 months."
	}
	if cfg.Lifecycle.ActionIssue.Example == "" {
		cfg.Lifecycle.ActionIssue.Example = "Ensure all pages are visible and text is readable."
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Store.Backend {
	case "redis", "postgres", "none":
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Store.Backend == "postgres" {
		if cfg.Store.Postgres.Host == "" || cfg.Store.Postgres.Database == "" {
			return fmt.Errorf("postgres backend requires host and database")
		}
	}

	if cfg.Lifecycle.Disbursement.LeadTimeDays < 0 {
		return fmt.Errorf("disbursement lead time must not be negative")
	}

	if cfg.Notifier.Email.Enabled && cfg.Notifier.Email.FromEmail == "" {
		return fmt.Errorf("email notifier requires from_email")
	}

	return nil
}
