// internal/config/config.go

// Package config loads server configuration from an optional YAML file with
// environment-variable overrides for deployment-specific settings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/angrysky56/mcp-logic/internal/prover"
)

// Config is the full server configuration.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`

	// DatabaseURL is the Postgres DSN. Empty disables persistence: proofs
	// are still computed but not recorded.
	DatabaseURL string `yaml:"database_url"`

	Prover ProverConfig `yaml:"prover"`
}

// ProverConfig mirrors prover.Config in YAML-friendly form.
type ProverConfig struct {
	BinDir        string        `yaml:"bin_dir"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	GracePeriod   time.Duration `yaml:"grace_period"`
	DomainStart   int           `yaml:"domain_start"`
	DomainEnd     int           `yaml:"domain_end"`
	CacheCapacity int           `yaml:"cache_capacity"`
	CacheErrorTTL time.Duration `yaml:"cache_error_ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	p := prover.DefaultConfig()
	return Config{
		ListenAddr: ":8080",
		Prover: ProverConfig{
			BinDir:        p.BinDir,
			Timeout:       p.Timeout,
			MaxConcurrent: p.MaxConcurrent,
			GracePeriod:   p.GracePeriod,
			DomainStart:   p.DomainStart,
			DomainEnd:     p.DomainEnd,
			CacheCapacity: p.CacheCapacity,
			CacheErrorTTL: p.CacheErrorTTL,
		},
	}
}

// Load reads path (if non-empty), overlays environment variables, and
// validates the result. Environment always wins over the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LADR_PATH"); v != "" {
		c.Prover.BinDir = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr must not be empty")
	}
	pc := c.ProverConfig()
	return pc.Validate()
}

// ProverConfig converts the YAML form into the engine's config type.
func (c *Config) ProverConfig() prover.Config {
	return prover.Config{
		BinDir:        c.Prover.BinDir,
		Timeout:       c.Prover.Timeout,
		MaxConcurrent: c.Prover.MaxConcurrent,
		GracePeriod:   c.Prover.GracePeriod,
		DomainStart:   c.Prover.DomainStart,
		DomainEnd:     c.Prover.DomainEnd,
		CacheCapacity: c.Prover.CacheCapacity,
		CacheErrorTTL: c.Prover.CacheErrorTTL,
	}
}
