package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/copyleftdev/ROOTR/internal/rootfind"
)

// Config is the service configuration, populated from the environment.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Solver struct {
		// Tolerance is the default absolute convergence tolerance.
		Tolerance float64 `env:"SOLVER_TOLERANCE" envDefault:"1e-6"`
		// MaxIterations is the default iteration cap. The cap is a
		// safety valve rather than a derived bound, so it stays
		// configurable instead of hardcoded.
		MaxIterations int `env:"SOLVER_MAX_ITERATIONS" envDefault:"1000000"`
		// OnExhaustion selects the exhaustion policy: "default"
		// (per-method behavior), "best_effort", or "fail".
		OnExhaustion string `env:"SOLVER_ON_EXHAUSTION" envDefault:"default"`
	}
}

// Load populates a Config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Environment == "development" && cfg.Logging.Level == "" {
		cfg.Logging.Level = "debug"
	}

	// Reject unknown policies at startup rather than per request.
	if _, err := ParsePolicy(cfg.Solver.OnExhaustion); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParsePolicy maps a policy name onto a rootfind.ExhaustionPolicy.
func ParsePolicy(name string) (rootfind.ExhaustionPolicy, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return rootfind.PolicyMethodDefault, nil
	case "best_effort":
		return rootfind.PolicyBestEffort, nil
	case "fail":
		return rootfind.PolicyFail, nil
	default:
		return rootfind.PolicyMethodDefault, fmt.Errorf("config: unknown exhaustion policy %q", name)
	}
}

// SolverSettings converts the solver section into library settings.
func (c *Config) SolverSettings() *rootfind.Settings {
	policy, _ := ParsePolicy(c.Solver.OnExhaustion)
	return &rootfind.Settings{
		Tolerance:     c.Solver.Tolerance,
		MaxIterations: c.Solver.MaxIterations,
		OnExhaustion:  policy,
	}
}
