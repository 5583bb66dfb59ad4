package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Lending   LendingConfig   `yaml:"lending"`
	Fines     FinesConfig     `yaml:"fines"`
	Log       LogConfig       `yaml:"log"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	// Env is "development" or "production". Development exposes internal
	// error details in HTTP responses.
	Env string `yaml:"env" env:"APP_ENV" env-default:"production"`
}

// IsDevelopment reports whether the process runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token validation settings. Tokens are minted by
// the identity provider; this service only verifies them.
type AuthConfig struct {
	// Enforce requires a valid token on every API route and a librarian
	// role on librarian-only routes.
	Enforce   bool   `yaml:"enforce"    env:"AUTH_ENFORCE"    env-default:"false"`
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"libris"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"FRONTEND_URL"           env-default:"http://localhost:3000"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	return splitList(c.AllowedOrigins)
}

// Methods splits AllowedMethods on commas.
func (c CORSConfig) Methods() []string {
	return splitList(c.AllowedMethods)
}

// Headers splits AllowedHeaders on commas.
func (c CORSConfig) Headers() []string {
	return splitList(c.AllowedHeaders)
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"  env-default:"true"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"      env-default:"20"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"    env-default:"40"`
	IdleTTL           time.Duration `yaml:"idle_ttl"            env:"RATE_LIMIT_IDLE_TTL" env-default:"10m"`
}

// LendingConfig holds loan rules.
type LendingConfig struct {
	LoanPeriodDays int `yaml:"loan_period_days" env:"LENDING_LOAN_PERIOD_DAYS" env-default:"14"`
}

// LoanPeriod returns the default loan duration.
func (c LendingConfig) LoanPeriod() time.Duration {
	return time.Duration(c.LoanPeriodDays) * 24 * time.Hour
}

// FinesConfig holds overdue fine rules.
type FinesConfig struct {
	PerDayRate    float64       `yaml:"per_day_rate"    env:"FINES_PER_DAY_RATE"    env-default:"20"`
	SweepInterval time.Duration `yaml:"sweep_interval"  env:"FINES_SWEEP_INTERVAL"  env-default:"24h"`
	SweepOnStart  bool          `yaml:"sweep_on_start"  env:"FINES_SWEEP_ON_START"  env-default:"true"`
	SweepTimeout  time.Duration `yaml:"sweep_timeout"   env:"FINES_SWEEP_TIMEOUT"   env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
