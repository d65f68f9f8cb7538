package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/echocore/voiceproc/dsp/core"
)

// StageTiming records the wall-clock duration of one stage within a chain
// execution.
type StageTiming struct {
	Type    StageType
	Elapsed time.Duration
}

// Report carries the timing metadata of one chain execution. It is
// attached to results, never persisted by this package.
type Report struct {
	Total  time.Duration
	Stages []StageTiming
}

// Chain is an ordered sequence of configured stages sharing one sample
// rate. A chain and the stage state inside it belong to exactly one
// session; concurrent Process calls on the same chain are not allowed.
type Chain struct {
	sampleRate float64
	configs    []Config
	stages     []Stage
}

// New builds a chain from the given stage configurations using the
// default registry. Every configuration is validated up front; any
// invalid stage aborts construction with [ErrInvalidParameter] and no
// stage is instantiated for the caller.
func New(sampleRate float64, configs []Config) (*Chain, error) {
	return NewWithRegistry(DefaultRegistry(), sampleRate, configs)
}

// NewWithRegistry is like New but resolves stage factories from a custom
// registry.
func NewWithRegistry(registry *Registry, sampleRate float64, configs []Config) (*Chain, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %g", ErrInvalidParameter, sampleRate)
	}

	stages := make([]Stage, 0, len(configs))

	for i, cfg := range configs {
		factory := registry.Lookup(cfg.Type)
		if factory == nil {
			return nil, fmt.Errorf("stage %d: %w: %s", i, ErrUnknownStage, cfg.Type)
		}

		stage, err := factory(cfg, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w: %v", i, cfg.Type, ErrInvalidParameter, err)
		}

		stages = append(stages, stage)
	}

	return &Chain{
		sampleRate: sampleRate,
		configs:    append([]Config(nil), configs...),
		stages:     stages,
	}, nil
}

// SampleRate returns the chain's sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Configs returns a copy of the stage configurations in execution order.
func (c *Chain) Configs() []Config {
	return append([]Config(nil), c.configs...)
}

// Process runs every stage over buf in place, strictly in configuration
// order, and returns per-stage timing.
//
// Each stage is a single sequential scan; stage i's output is stage i+1's
// input. Before the first stage runs, all stage states are snapshotted.
// If the context is cancelled between stages, or a stage emits non-finite
// samples, every stage is restored to its pre-call state and an error is
// returned; buf contents are unspecified in that case, so callers that
// need their input preserved must pass a scratch copy (the engine does).
func (c *Chain) Process(ctx context.Context, buf []float64) (*Report, error) {
	report := &Report{Stages: make([]StageTiming, 0, len(c.stages))}

	if len(buf) == 0 || len(c.stages) == 0 {
		return report, nil
	}

	saved := make([]State, len(c.stages))
	for i, stage := range c.stages {
		saved[i] = stage.Snapshot()
	}

	start := time.Now()

	for i, stage := range c.stages {
		if err := ctx.Err(); err != nil {
			c.restore(saved)
			return nil, fmt.Errorf("cancelled before stage %d (%s): %w", i, stage.Type(), err)
		}

		stageStart := time.Now()
		stage.Process(buf)

		if !core.AllFinite(buf) {
			c.restore(saved)
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.Type(), ErrNonFiniteOutput)
		}

		report.Stages = append(report.Stages, StageTiming{
			Type:    stage.Type(),
			Elapsed: time.Since(stageStart),
		})
	}

	report.Total = time.Since(start)

	return report, nil
}

// Reset clears the recurrence state of every stage, as required when a
// new streaming session starts or before one-shot processing.
func (c *Chain) Reset() {
	for _, stage := range c.stages {
		stage.Reset()
	}
}

// Snapshot captures the state of every stage in order.
func (c *Chain) Snapshot() []State {
	out := make([]State, len(c.stages))
	for i, stage := range c.stages {
		out[i] = stage.Snapshot()
	}

	return out
}

func (c *Chain) restore(saved []State) {
	for i, stage := range c.stages {
		stage.Restore(saved[i])
	}
}
