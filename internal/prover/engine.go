// internal/prover/engine.go
package prover

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/angrysky56/mcp-logic/internal/cache"
	"github.com/angrysky56/mcp-logic/internal/formula"
	"github.com/angrysky56/mcp-logic/internal/metrics"
)

// ValidationError reports statements rejected by the validator. Syntax
// problems are resolved entirely before the subprocess boundary; an
// invocation is never constructed from a statement that failed validation.
type ValidationError struct {
	Results []formula.ValidationResult
}

func (e *ValidationError) Error() string {
	bad := 0
	for _, r := range e.Results {
		if !r.Valid {
			bad++
		}
	}
	return fmt.Sprintf("%d of %d statements failed validation", bad, len(e.Results))
}

// Engine brokers proof and model-finding requests: it gates input through the
// validator, formats LADR input, drives the runner, interprets output, and
// memoizes outcomes. Safe for concurrent use.
type Engine struct {
	cfg     Config
	runner  *Runner
	results *cache.Cache[*Outcome]
	metrics *metrics.Metrics
}

// NewEngine builds an Engine from cfg. The prover9 binary must be present;
// a missing mace4 is tolerated until a model-finding call needs it.
func NewEngine(cfg Config, m *metrics.Metrics) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runner := NewRunner(cfg.BinDir, cfg.MaxConcurrent, cfg.GracePeriod)
	if _, err := runner.BinaryPath(BinaryProver); err != nil {
		return nil, fmt.Errorf("engine init: %w", err)
	}
	if _, err := runner.BinaryPath(BinaryModelFinder); err != nil {
		log.Printf("engine: %v; model-finding calls will fail until it is installed", err)
	}

	return &Engine{
		cfg:     cfg,
		runner:  runner,
		results: cache.New[*Outcome](cfg.CacheCapacity, cfg.CacheErrorTTL),
		metrics: m,
	}, nil
}

// CacheStats exposes result-cache counters for the operational API.
func (e *Engine) CacheStats() cache.Stats { return e.results.Stats() }

// CheckWellFormed validates statements without invoking any binary. Results
// are index-aligned with the input.
func (e *Engine) CheckWellFormed(statements []string) []formula.ValidationResult {
	return formula.ValidateAll(statements)
}

// Prove asks prover9 whether the premises entail the conclusion. A zero
// timeout uses the configured default. Equal premise sets (in any order) with
// the same conclusion share one cached outcome.
func (e *Engine) Prove(ctx context.Context, premises []string, conclusion string, timeout time.Duration) (*Outcome, error) {
	results, ok := formula.ValidateArgument(premises, conclusion)
	if !ok {
		e.metrics.ValidationFailures.Inc()
		return nil, &ValidationError{Results: results}
	}

	key := cache.Fingerprint(premises, conclusion, BinaryProver.String())
	inv := Invocation{
		Input:   ProverInput(premises, conclusion),
		Binary:  BinaryProver,
		Timeout: e.timeout(timeout),
	}
	return e.cachedRun(ctx, key, inv)
}

// FindModel asks mace4 for a finite model of the premises. A zero domainSize
// searches the configured size range incrementally.
func (e *Engine) FindModel(ctx context.Context, premises []string, domainSize int, timeout time.Duration) (*Outcome, error) {
	results := formula.ValidateAll(premises)
	for _, r := range results {
		if !r.Valid {
			e.metrics.ValidationFailures.Inc()
			return nil, &ValidationError{Results: results}
		}
	}

	t := e.timeout(timeout)
	key := cache.Fingerprint(premises, "", BinaryModelFinder.String(), "domain:"+strconv.Itoa(domainSize))
	inv := Invocation{
		Input:      ModelInput(premises, "", domainSize, e.cfg.DomainStart, e.cfg.DomainEnd, int(t.Seconds())),
		Binary:     BinaryModelFinder,
		Timeout:    t,
		DomainSize: domainSize,
	}
	return e.cachedRun(ctx, key, inv)
}

// FindCounterexample asks mace4 for a model where every premise holds and the
// conclusion fails. A model found here shows the conclusion does not follow.
func (e *Engine) FindCounterexample(ctx context.Context, premises []string, conclusion string, domainSize int, timeout time.Duration) (*Outcome, error) {
	results, ok := formula.ValidateArgument(premises, conclusion)
	if !ok {
		e.metrics.ValidationFailures.Inc()
		return nil, &ValidationError{Results: results}
	}

	t := e.timeout(timeout)
	key := cache.Fingerprint(premises, conclusion, BinaryModelFinder.String(),
		"counterexample", "domain:"+strconv.Itoa(domainSize))
	inv := Invocation{
		Input:      ModelInput(premises, NegateGoal(conclusion), domainSize, e.cfg.DomainStart, e.cfg.DomainEnd, int(t.Seconds())),
		Binary:     BinaryModelFinder,
		Timeout:    t,
		DomainSize: domainSize,
	}
	return e.cachedRun(ctx, key, inv)
}

func (e *Engine) timeout(requested time.Duration) time.Duration {
	if requested > 0 {
		return requested
	}
	return e.cfg.Timeout
}

// cachedRun resolves an invocation through the result cache. Durable answers
// (proved, disproved, model found, no model) are stored; timeouts and
// failures are returned to all current waiters without being persisted, so a
// later retry may still succeed.
func (e *Engine) cachedRun(ctx context.Context, key string, inv Invocation) (*Outcome, error) {
	if out, ok := e.results.Get(key); ok {
		e.metrics.CacheHits.Inc()
		return out, nil
	}
	e.metrics.CacheMisses.Inc()

	return e.results.GetOrCompute(ctx, key, func(ctx context.Context) (*Outcome, bool, error) {
		raw, err := e.runner.Run(ctx, inv)
		if err != nil {
			e.metrics.ObserveInvocation(inv.Binary.String(), StatusProcessFailed.String(), 0)
			return nil, false, fmt.Errorf("invoke %s: %w", inv.Binary, err)
		}

		out := Interpret(raw, inv.Binary)
		e.metrics.ObserveInvocation(inv.Binary.String(), out.Status.String(), out.Elapsed.Seconds())
		return out, out.Status.Terminal(), nil
	})
}
