// internal/prover/config.go
package prover

import (
	"fmt"
	"time"
)

// Config carries every knob of the proof engine as named, typed fields.
type Config struct {
	// BinDir is the directory holding the prover9 and mace4 executables.
	BinDir string
	// Timeout bounds one external invocation unless the caller overrides it.
	Timeout time.Duration
	// MaxConcurrent bounds live subprocesses; extra invocations wait.
	MaxConcurrent int
	// GracePeriod is how long a terminated subprocess gets between SIGTERM
	// and SIGKILL.
	GracePeriod time.Duration
	// DomainStart/DomainEnd bound mace4's incremental domain search when the
	// caller does not pin a size.
	DomainStart int
	DomainEnd   int
	// CacheCapacity bounds the result cache (LRU).
	CacheCapacity int
	// CacheErrorTTL is how long failed computations are remembered before a
	// retry is allowed.
	CacheErrorTTL time.Duration
}

// DefaultConfig returns the documented defaults; BinDir must still be set.
func DefaultConfig() Config {
	return Config{
		Timeout:       60 * time.Second,
		MaxConcurrent: 4,
		GracePeriod:   5 * time.Second,
		DomainStart:   2,
		DomainEnd:     10,
		CacheCapacity: 256,
		CacheErrorTTL: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.BinDir == "" {
		return fmt.Errorf("prover config: BinDir is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("prover config: Timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("prover config: MaxConcurrent must be at least 1, got %d", c.MaxConcurrent)
	}
	if c.GracePeriod < 0 {
		return fmt.Errorf("prover config: GracePeriod must not be negative, got %s", c.GracePeriod)
	}
	if c.DomainStart < 1 || c.DomainEnd < c.DomainStart {
		return fmt.Errorf("prover config: domain bounds %d..%d are invalid", c.DomainStart, c.DomainEnd)
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("prover config: CacheCapacity must be at least 1, got %d", c.CacheCapacity)
	}
	return nil
}
