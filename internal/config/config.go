package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jwalitptl/clinic-api/internal/email"
	"github.com/jwalitptl/clinic-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-api/internal/session"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type AuthConfig struct {
	TokenSecret string        `mapstructure:"token_secret" envconfig:"AUTH_TOKEN_SECRET"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

type BookingConfig struct {
	// AutoBill creates a pending bill for the consultation fee alongside
	// every booking.
	AutoBill        bool   `mapstructure:"auto_bill"`
	ConsultationFee string `mapstructure:"consultation_fee"`
}

// Fee parses the configured consultation fee.
func (c BookingConfig) Fee() (decimal.Decimal, error) {
	if c.ConsultationFee == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(c.ConsultationFee)
}

type ReminderConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	Lookahead time.Duration `mapstructure:"lookahead"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  postgres.Config  `mapstructure:"database"`
	Redis     session.Config   `mapstructure:"redis"`
	Auth      AuthConfig       `mapstructure:"auth"`
	Booking   BookingConfig    `mapstructure:"booking"`
	SMTP      email.SMTPConfig `mapstructure:"smtp"`
	Reminder  ReminderConfig   `mapstructure:"reminder"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
	Log       LogConfig        `mapstructure:"log"`
}

// Load reads config.yaml and applies CLINIC_* environment overrides on top.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("clinic", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if cfg.Auth.TokenSecret == "" {
		return nil, fmt.Errorf("auth.token_secret is required")
	}
	if _, err := cfg.Booking.Fee(); err != nil {
		return nil, fmt.Errorf("invalid booking.consultation_fee: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.name", "clinic")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("booking.auto_bill", false)
	viper.SetDefault("booking.consultation_fee", "50.00")
	viper.SetDefault("reminder.enabled", true)
	viper.SetDefault("reminder.interval", "5m")
	viper.SetDefault("reminder.lookahead", "24h")
	viper.SetDefault("rate_limit.rps", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("log.level", "info")
}
