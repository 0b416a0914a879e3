package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"crossborder/internal/pricing"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug|release|test
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// EngineConfig holds the pricing-engine tunables. Zero values fall back to the
// engine's documented defaults.
type EngineConfig struct {
	EstimateMarkup        float64           `mapstructure:"estimate_markup"`
	DutyPaidMinPrice      float64           `mapstructure:"duty_paid_min_price"`
	DutyPaidMaxPrice      float64           `mapstructure:"duty_paid_max_price"`
	BandSplitPrice        float64           `mapstructure:"band_split_price"`
	FallbackDutyRate      float64           `mapstructure:"fallback_duty_rate"`
	FallbackSpotRate      float64           `mapstructure:"fallback_spot_rate"`
	FallbackBufferPercent float64           `mapstructure:"fallback_buffer_percent"`
	ExtraTariffOrigins    []string          `mapstructure:"extra_tariff_origins"`
	ZoneOverrides         map[string]string `mapstructure:"zone_overrides"`
}

// Config is the application root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

// Load reads configs/config.yaml (optional) and CB_* environment overrides,
// e.g. CB_DATABASE_HOST or CB_ENGINE_ESTIMATE_MARKUP.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "postgres")
	v.SetDefault("database.sslmode", "disable")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// DSN assembles the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

// EngineOptions converts the config into pricing.Options, keeping the
// documented defaults for anything unset.
func (e EngineConfig) EngineOptions() pricing.Options {
	opts := pricing.DefaultOptions()
	if e.EstimateMarkup > 0 {
		opts.EstimateMarkup = decimal.NewFromFloat(e.EstimateMarkup)
	}
	if e.DutyPaidMinPrice > 0 {
		opts.DutyPaidMinPrice = decimal.NewFromFloat(e.DutyPaidMinPrice)
	}
	if e.DutyPaidMaxPrice > 0 {
		opts.DutyPaidMaxPrice = decimal.NewFromFloat(e.DutyPaidMaxPrice)
	}
	if e.BandSplitPrice > 0 {
		opts.BandSplitPrice = decimal.NewFromFloat(e.BandSplitPrice)
	}
	if e.FallbackDutyRate > 0 {
		opts.FallbackDutyRate = decimal.NewFromFloat(e.FallbackDutyRate)
	}
	if e.FallbackSpotRate > 0 {
		opts.FallbackSpotRate = decimal.NewFromFloat(e.FallbackSpotRate)
	}
	if e.FallbackBufferPercent > 0 {
		opts.FallbackBufferPercent = decimal.NewFromFloat(e.FallbackBufferPercent)
	}
	if len(e.ExtraTariffOrigins) > 0 {
		opts.ExtraTariffOrigins = e.ExtraTariffOrigins
	}
	if len(e.ZoneOverrides) > 0 {
		opts.ZoneOverrides = e.ZoneOverrides
	}
	return opts
}
