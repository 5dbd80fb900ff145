package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvProduction is the FITWISE_ENV value that enables production checks.
const EnvProduction = "production"

// OTP verification modes
const (
	OTPModeDemo      = "demo"
	OTPModeChallenge = "challenge"
)

// Config holds every runtime setting. All keys use the FITWISE_ prefix.
type Config struct {
	Env    string `env:"ENV" envDefault:"development"`
	Addr   string `env:"ADDR" envDefault:":8080"`
	DBPath string `env:"DB_PATH" envDefault:"fitwise.db"`

	AdminPhones []string `env:"ADMIN_PHONES" envSeparator:"," envDefault:"+91 8309285636,1234567890"`

	OTPMode string        `env:"OTP_MODE" envDefault:"demo"`
	OTPTTL  time.Duration `env:"OTP_TTL" envDefault:"5m"`

	SessionKey string        `env:"SESSION_KEY"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CSRFKey    string        `env:"CSRF_KEY"`

	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	SimulatedLatency   time.Duration `env:"SIMULATED_LATENCY" envDefault:"0s"`

	ResendKey string   `env:"RESEND_KEY"`
	EmailFrom string   `env:"RESEND_FROM" envDefault:"FitWise <noreply@fitwise.app>"`
	ReplyTo   string   `env:"REPLY_TO"`
	ReportTo  []string `env:"REPORT_TO" envSeparator:","`

	TrustedOrigins  []string      `env:"TRUSTED_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SeedDemo        bool          `env:"SEED_DEMO" envDefault:"true"`

	SentryDSN string `env:"SENTRY_DSN"`

	SlowQueryMs   int    `env:"SLOW_QUERY_MS" envDefault:"50"`
	SlowRequestMs int    `env:"SLOW_REQUEST_MS" envDefault:"500"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and parses FITWISE_* variables.
// PRE: none
// POST: Returns a validated Config or an error
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "FITWISE_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field rules.
// INVARIANT: production never runs with generated secrets or demo OTP
func (c Config) Validate() error {
	switch c.OTPMode {
	case OTPModeDemo, OTPModeChallenge:
	default:
		return fmt.Errorf("FITWISE_OTP_MODE must be %q or %q", OTPModeDemo, OTPModeChallenge)
	}
	if c.OTPTTL <= 0 || c.SessionTTL <= 0 {
		return errors.New("FITWISE_OTP_TTL and FITWISE_SESSION_TTL must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("FITWISE_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.SimulatedLatency < 0 {
		return errors.New("FITWISE_SIMULATED_LATENCY cannot be negative")
	}
	if c.IsProduction() {
		if len(c.SessionKey) < 32 {
			return errors.New("FITWISE_SESSION_KEY must be at least 32 bytes in production")
		}
		if len(c.CSRFKey) != 32 {
			return errors.New("FITWISE_CSRF_KEY must be exactly 32 bytes in production")
		}
		if c.OTPMode == OTPModeDemo {
			return errors.New("FITWISE_OTP_MODE=demo is not allowed in production")
		}
	}
	return nil
}

// IsProduction reports whether the server runs in production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// SlogLevel maps LogLevel onto a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger: JSON in production, text otherwise.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
