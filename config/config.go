// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/CareVoice/carevoice-backend/logger"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// Validation constants for production deployments.
	minJWTSecretLength     = 32
	minAdminPasswordLength = 12
)

// Rate limit backends.
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	StaticDir      string      `mapstructure:"STATIC_DIR"`
}

// DatabaseConfig holds PostgreSQL connection details. The pool bounds
// concurrency to the backend; store operations queue for a connection up to
// AcquireTimeoutSeconds and then fail rather than hang.
type DatabaseConfig struct {
	Host                  string `mapstructure:"HOST"`
	Port                  int    `mapstructure:"PORT"`
	User                  string `mapstructure:"USER"`
	Password              string `mapstructure:"PASSWORD"`
	Name                  string `mapstructure:"NAME"`
	SSLMode               string `mapstructure:"SSL_MODE"`
	MaxConnections        int    `mapstructure:"MAX_CONNECTIONS"`
	AcquireTimeoutSeconds int    `mapstructure:"ACQUIRE_TIMEOUT_SECONDS"`
}

// ConnString returns a key-value connection string for pgx.
func (c *DatabaseConfig) ConnString() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslmode)
}

// URL returns a postgres:// connection URL suitable for golang-migrate.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details, used when the rate limiter
// runs on the redis backend.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS"`
	Password string `mapstructure:"PASSWORD"`
	DB       int    `mapstructure:"DB"`
}

// AuthConfig holds the shared administrator secret and the token-signing key.
// Both are required for the process to start; there are no insecure defaults.
type AuthConfig struct {
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	JWTSecretKey  string `mapstructure:"JWT_SECRET_KEY"`
}

// RateLimitConfig holds configuration for the submission rate limiter.
type RateLimitConfig struct {
	// MaxSubmissions per identity per window.
	MaxSubmissions int `mapstructure:"MAX_SUBMISSIONS"`
	// WindowSeconds is the sliding window duration.
	WindowSeconds int `mapstructure:"WINDOW_SECONDS"`
	// ExemptLoopback bypasses limiting for loopback clients. Default off.
	ExemptLoopback bool `mapstructure:"EXEMPT_LOOPBACK"`
	// Backend selects the limiter implementation: memory or redis.
	Backend string `mapstructure:"BACKEND"`
}

// IntakeConfig holds public submission policy knobs.
type IntakeConfig struct {
	// RequireSubmitterName enables the strict variant where anonymous
	// submissions are rejected.
	RequireSubmitterName bool `mapstructure:"REQUIRE_SUBMITTER_NAME"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Database  DatabaseConfig  `mapstructure:"DATABASE"`
	Redis     RedisConfig     `mapstructure:"REDIS"`
	Auth      AuthConfig      `mapstructure:"AUTH"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
	Intake    IntakeConfig    `mapstructure:"INTAKE"`
}

// IsDevelopment returns true in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, unmarshals, and validates. A missing security secret is a
// validation failure: the process must fail closed rather than start with a
// guessable default.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.STATIC_DIR", "public")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "feedback_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_CONNECTIONS", 10)
	v.SetDefault("DATABASE.ACQUIRE_TIMEOUT_SECONDS", 5)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("RATE_LIMIT.MAX_SUBMISSIONS", 10)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 600)
	v.SetDefault("RATE_LIMIT.EXEMPT_LOOPBACK", false)
	v.SetDefault("RATE_LIMIT.BACKEND", RateLimitBackendMemory)
	v.SetDefault("INTAKE.REQUIRE_SUBMITTER_NAME", false)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.STATIC_DIR", "STATIC_DIR"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_CONNECTIONS", "DB_MAX_CONNECTIONS"},
		{"DATABASE.ACQUIRE_TIMEOUT_SECONDS", "DB_ACQUIRE_TIMEOUT_SECONDS"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"AUTH.ADMIN_PASSWORD", "ADMIN_PASSWORD"},
		{"AUTH.JWT_SECRET_KEY", "JWT_SECRET"},
		{"RATE_LIMIT.MAX_SUBMISSIONS", "RATE_LIMIT_MAX_SUBMISSIONS"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		{"RATE_LIMIT.EXEMPT_LOOPBACK", "RATE_LIMIT_EXEMPT_LOOPBACK"},
		{"RATE_LIMIT.BACKEND", "RATE_LIMIT_BACKEND"},
		{"INTAKE.REQUIRE_SUBMITTER_NAME", "INTAKE_REQUIRE_SUBMITTER_NAME"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"db_host", cfg.Database.Host,
		"db_max_connections", cfg.Database.MaxConnections,
		"rate_limit_backend", cfg.RateLimit.Backend,
		"rate_limit_max", cfg.RateLimit.MaxSubmissions,
		"rate_limit_window_seconds", cfg.RateLimit.WindowSeconds,
		"rate_limit_exempt_loopback", cfg.RateLimit.ExemptLoopback,
	)

	return &cfg, nil
}

// validateConfig enforces the startup invariants. Security secrets are
// always required; length floors apply in production only so local
// development stays convenient.
func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.Auth.JWTSecretKey == "" {
		errs = append(errs, "JWT_SECRET is required")
	}
	if cfg.Auth.AdminPassword == "" {
		errs = append(errs, "ADMIN_PASSWORD is required")
	}

	if cfg.IsProduction() {
		if len(cfg.Auth.JWTSecretKey) > 0 && len(cfg.Auth.JWTSecretKey) < minJWTSecretLength {
			errs = append(errs, fmt.Sprintf("JWT_SECRET must be at least %d characters in production", minJWTSecretLength))
		}
		if len(cfg.Auth.AdminPassword) > 0 && len(cfg.Auth.AdminPassword) < minAdminPasswordLength {
			errs = append(errs, fmt.Sprintf("ADMIN_PASSWORD must be at least %d characters in production", minAdminPasswordLength))
		}
	}

	if cfg.Server.Port == "" {
		errs = append(errs, "PORT must not be empty")
	}
	if cfg.RateLimit.MaxSubmissions < 1 {
		errs = append(errs, "RATE_LIMIT_MAX_SUBMISSIONS must be positive")
	}
	if cfg.RateLimit.WindowSeconds < 1 {
		errs = append(errs, "RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	switch cfg.RateLimit.Backend {
	case RateLimitBackendMemory, RateLimitBackendRedis:
	default:
		errs = append(errs, fmt.Sprintf("RATE_LIMIT_BACKEND must be %q or %q", RateLimitBackendMemory, RateLimitBackendRedis))
	}
	if cfg.Database.MaxConnections < 1 {
		errs = append(errs, "DB_MAX_CONNECTIONS must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
