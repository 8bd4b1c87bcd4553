// Package config loads server and CLI settings.
//
// Values are resolved in three layers: built-in defaults, an optional TOML
// file named by CHITFUND_CONFIG, and CHITFUND_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// FileEnv names the environment variable holding the TOML config path.
const FileEnv = "CHITFUND_CONFIG"

// Config is the full runtime configuration.
type Config struct {
	Addr     string `toml:"addr"      env:"CHITFUND_ADDR"`
	DBPath   string `toml:"db_path"   env:"CHITFUND_DB_PATH"`
	LogLevel string `toml:"log_level" env:"CHITFUND_LOG_LEVEL"`

	// Locale selects number formatting in printable statements.
	Locale string `toml:"locale" env:"CHITFUND_LOCALE"`

	// GroupName names the group created on first start.
	GroupName string `toml:"group_name" env:"CHITFUND_GROUP_NAME"`

	Auth      AuthConfig      `toml:"auth"`
	Insights  InsightsConfig  `toml:"insights"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// AuthConfig controls session tokens and logins.
type AuthConfig struct {
	JWTSecret string        `toml:"jwt_secret" env:"CHITFUND_JWT_SECRET"`
	TokenTTL  time.Duration `toml:"token_ttl"  env:"CHITFUND_TOKEN_TTL"`
	OTPTTL    time.Duration `toml:"otp_ttl"    env:"CHITFUND_OTP_TTL"`

	// AdminPassword is accepted until an admin password is stored in the group.
	AdminPassword string `toml:"admin_password" env:"CHITFUND_ADMIN_PASSWORD"`
}

// InsightsConfig controls the AI advisor. An empty APIKey disables it.
type InsightsConfig struct {
	APIKey  string        `toml:"api_key" env:"CHITFUND_GEMINI_API_KEY"`
	Model   string        `toml:"model"   env:"CHITFUND_GEMINI_MODEL"`
	Timeout time.Duration `toml:"timeout" env:"CHITFUND_INSIGHTS_TIMEOUT"`
}

// TelemetryConfig controls tracing and metrics. An empty OTLPEndpoint
// disables trace export.
type TelemetryConfig struct {
	OTLPEndpoint string `toml:"otlp_endpoint" env:"CHITFUND_OTLP_ENDPOINT"`
	Metrics      bool   `toml:"metrics"       env:"CHITFUND_METRICS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:      ":8080",
		DBPath:    "./data/chitfund.db",
		LogLevel:  "info",
		Locale:    "en",
		GroupName: "Savings Group",
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
			OTPTTL:   5 * time.Minute,
		},
		Insights: InsightsConfig{
			Timeout: 30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Metrics: true,
		},
	}
}

// Load resolves the configuration from defaults, the file named by
// CHITFUND_CONFIG and the environment.
func Load() (Config, error) {
	return LoadFile(os.Getenv(FileEnv))
}

// LoadFile resolves the configuration using path as the TOML layer. An empty
// path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Auth.OTPTTL <= 0 {
		errs = append(errs, errors.New("auth.otp_ttl must be positive"))
	}
	return errors.Join(errs...)
}
