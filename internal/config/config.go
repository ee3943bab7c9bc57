package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Port             string        `mapstructure:"PORT"`
	Env              string        `mapstructure:"ENV"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	StoreDriver      string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	DBMaxConns       int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns       int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins      []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS     float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit        string        `mapstructure:"BODY_LIMIT"`
	ConsultationRate string        `mapstructure:"CONSULTATION_RATE"`
	Timezone         string        `mapstructure:"TIMEZONE"`
	SeedSampleData   bool          `mapstructure:"SEED_SAMPLE_DATA"`
}

var envKeys = []string{
	"PORT",
	"ENV",
	"LOG_LEVEL",
	"STORE_DRIVER",
	"DATABASE_URL",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"CORS_ORIGINS",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"REQUEST_TIMEOUT",
	"BODY_LIMIT",
	"CONSULTATION_RATE",
	"TIMEZONE",
	"SEED_SAMPLE_DATA",
}

// Load reads configuration from the process environment. A .env file in the
// working directory, when present, is merged in first without overriding
// variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("CONSULTATION_RATE", "50")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("SEED_SAMPLE_DATA", false)

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if origins := v.GetString("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the store driver is known, that SQL drivers have a
// connection string, and that the consultation rate and timezone parse.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres, DriverMySQL:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q, %q, or %q, got %q",
			DriverMemory, DriverPostgres, DriverMySQL, c.StoreDriver)
	}

	if _, err := c.UnitRate(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// UnitRate returns the flat per-consultation rate used for revenue figures.
func (c *Config) UnitRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.ConsultationRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("CONSULTATION_RATE is not a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("CONSULTATION_RATE must not be negative, got %s", rate)
	}
	return rate, nil
}

// Location resolves TIMEZONE. Calendar-day bucketing for appointments and
// patient registrations happens in this location.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
