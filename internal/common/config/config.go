// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Store     StoreConfig     `mapstructure:"store"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StoreConfig selects and configures the persistence mirror.
type StoreConfig struct {
	Backend  string         `mapstructure:"backend"` // "redis", "postgres" or "none"
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// LifecycleConfig carries the copy and derived-field defaults the engine
// applies on state entry. Everything here is configuration, not engine
// behavior, so deployments can localize it.
type LifecycleConfig struct {
	Disbursement DisbursementConfig `mapstructure:"disbursement"`
	Rejection    RejectionConfig    `mapstructure:"rejection"`
	ActionIssue  ActionIssueConfig  `mapstructure:"action_issue"`
}

type DisbursementConfig struct {
	DefaultAmount float64 `mapstructure:"default_amount"`
	BankAccount   string  `mapstructure:"bank_account"`
	LeadTimeDays  int     `mapstructure:"lead_time_days"`
}

type RejectionConfig struct {
	Reason   string `mapstructure:"reason"`
	Guidance string `mapstructure:"guidance"`
}

type ActionIssueConfig struct {
	Issue      string `mapstructure:"issue"`
	Resolution string `mapstructure:"resolution"`
	Example    string `mapstructure:"example"`
}

// NotifierConfig holds settings for outbound notification delivery.
type NotifierConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		Recipient string `mapstructure:"recipient"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled   bool   `mapstructure:"enabled"`
		Recipient string `mapstructure:"recipient"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the /metrics listener settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
