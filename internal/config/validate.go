package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Auth.Enforce && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters when auth is enforced (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Lending.validate(); err != nil {
		return fmt.Errorf("lending: %w", err)
	}

	if err := c.Fines.validate(); err != nil {
		return fmt.Errorf("fines: %w", err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit.requests_per_second must be > 0 (got %v)", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be >= 1 (got %d)", c.RateLimit.Burst)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (l *LendingConfig) validate() error {
	if l.LoanPeriodDays < 1 {
		return fmt.Errorf("loan_period_days must be >= 1 (got %d)", l.LoanPeriodDays)
	}
	return nil
}

func (f *FinesConfig) validate() error {
	if f.PerDayRate <= 0 {
		return fmt.Errorf("per_day_rate must be > 0 (got %v)", f.PerDayRate)
	}
	if f.SweepInterval < time.Minute {
		return fmt.Errorf("sweep_interval must be at least 1m (got %s)", f.SweepInterval)
	}
	if f.SweepTimeout <= 0 {
		return fmt.Errorf("sweep_timeout must be > 0 (got %s)", f.SweepTimeout)
	}
	return nil
}
