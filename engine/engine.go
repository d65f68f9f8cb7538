package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/echocore/voiceproc/dsp/chain"
	"github.com/echocore/voiceproc/dsp/core"
)

// Sample rate bounds accepted on the request boundary, in Hz.
const (
	MinSampleRate = 8000.0
	MaxSampleRate = 192000.0
)

// Request describes one batch processing call. Samples are never
// modified; the engine works on an internal copy.
type Request struct {
	Samples    []float64
	SampleRate float64
	Ops        []chain.Op
}

// Result is the outcome of a successful batch call.
type Result struct {
	Samples      []float64
	Elapsed      time.Duration
	StageTimings []chain.StageTiming
}

// Engine validates and executes processing requests. It is safe for
// concurrent use; per-call chain state is never shared between requests.
type Engine struct {
	log         logrus.FieldLogger
	registry    *chain.Registry
	accelerator Accelerator
	workers     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithWorkers sets the goroutine count for data-parallel analysis paths.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = runtime.NumCPU()
		}

		e.workers = n
	}
}

// WithAccelerator installs a compute backend for the analysis paths.
// When the backend reports itself unavailable the engine falls back to
// the host implementation.
func WithAccelerator(acc Accelerator) Option {
	return func(e *Engine) { e.accelerator = acc }
}

// WithRegistry substitutes the stage registry used to build chains.
func WithRegistry(r *chain.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// New builds an engine with the default stage registry.
func New(opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		log:      discard,
		registry: chain.DefaultRegistry(),
		workers:  runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Process runs req.Ops over a clamped copy of req.Samples and returns
// the processed buffer with timing metadata.
//
// Validation is atomic: every operation is checked before any processing
// starts, so an invalid request leaves nothing half done. Out-of-range
// input samples are clamped to [-1, 1] before the first stage runs.
func (e *Engine) Process(ctx context.Context, req Request) (*Result, error) {
	if err := validateBuffer(req.Samples, req.SampleRate); err != nil {
		return nil, err
	}

	configs, err := chain.ParseOps(req.Ops)
	if err != nil {
		return nil, err
	}

	c, err := chain.NewWithRegistry(e.registry, req.SampleRate, configs)
	if err != nil {
		return nil, err
	}

	buf := core.Clone(req.Samples)
	core.ClampUnitInPlace(buf)

	report, err := c.Process(ctx, buf)
	if err != nil {
		return nil, mapChainError(err)
	}

	e.log.WithFields(logrus.Fields{
		"samples":     len(buf),
		"sample_rate": req.SampleRate,
		"stages":      len(configs),
		"elapsed":     report.Total,
	}).Debug("processed buffer")

	return &Result{
		Samples:      buf,
		Elapsed:      report.Total,
		StageTimings: report.Stages,
	}, nil
}

func validateBuffer(samples []float64, sampleRate float64) error {
	if len(samples) == 0 {
		return fmt.Errorf("%w: empty sample buffer", ErrInvalidBuffer)
	}

	if sampleRate < MinSampleRate || sampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %g outside [%g, %g]",
			ErrInvalidBuffer, sampleRate, MinSampleRate, MaxSampleRate)
	}

	if !core.AllFinite(samples) {
		return fmt.Errorf("%w: non-finite input sample", ErrInvalidBuffer)
	}

	return nil
}

func mapChainError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	case errors.Is(err, chain.ErrNonFiniteOutput):
		return fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	default:
		return err
	}
}
