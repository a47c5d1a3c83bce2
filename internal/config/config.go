package config

import (
	"fmt"

	pkgconfig "github.com/thelegendaryarticuno/myfashion/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Fashion backend API
	BackendBaseURL        string `env:"BACKEND_BASE_URL" envDefault:"https://myfashion-backend-axwh.onrender.com"`
	BackendTimeoutSeconds int    `env:"BACKEND_TIMEOUT_SECONDS" envDefault:"15"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// OTP login sessions expire if the seller walks away mid-flow.
	OTPSessionTTLMinutes int `env:"OTP_SESSION_TTL_MINUTES" envDefault:"15"`

	// Recently-viewed lists in hours (default: 7 days).
	RecentTTLHours int `env:"RECENT_TTL_HOURS" envDefault:"168"`

	// How long a catalog snapshot is served before the next request
	// refreshes it.
	SnapshotMaxAgeSeconds int `env:"SNAPSHOT_MAX_AGE_SECONDS" envDefault:"300"`

	// Seller dashboard tokens
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24"`

	// OTP endpoints trigger outbound email, so they are rate limited per IP.
	OTPRatePerSecond float64 `env:"OTP_RATE_PER_SECOND" envDefault:"1"`
	OTPBurst         int     `env:"OTP_BURST" envDefault:"3"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Pprof debug endpoints allowlist. Empty means loopback only.
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.BackendBaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.OTPRatePerSecond <= 0 {
		return fmt.Errorf("invalid OTP rate: %f", c.OTPRatePerSecond)
	}
	return nil
}
