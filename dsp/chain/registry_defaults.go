package chain

import (
	"sync"

	"github.com/echocore/voiceproc/dsp/dynamics"
	"github.com/echocore/voiceproc/dsp/filter"
)

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry holding factories for every member
// of the closed stage variant. The registry is built once and shared; it
// is safe for concurrent lookup because it is never mutated afterwards.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()
		r.MustRegister(StageHighPass, newHighPassStage)
		r.MustRegister(StageLowPass, newLowPassStage)
		r.MustRegister(StageNoiseGate, newGateStage)
		r.MustRegister(StageCompressor, newCompressorStage)
		r.MustRegister(StageDeEsser, newDeEsserStage)
		r.MustRegister(StageParametricEQ, newEQStage)
		defaultRegistry = r
	})

	return defaultRegistry
}

func newHighPassStage(cfg Config, sampleRate float64) (Stage, error) {
	fx, err := filter.NewOnePoleHighPass(cfg.FrequencyHz, sampleRate)
	if err != nil {
		return nil, err
	}

	return &highPassStage{fx: fx}, nil
}

func newLowPassStage(cfg Config, sampleRate float64) (Stage, error) {
	fx, err := filter.NewOnePoleLowPass(cfg.FrequencyHz, sampleRate)
	if err != nil {
		return nil, err
	}

	return &lowPassStage{fx: fx}, nil
}

func newGateStage(cfg Config, sampleRate float64) (Stage, error) {
	fx, err := dynamics.NewNoiseGate(cfg.ThresholdDB, cfg.AttackMs, cfg.ReleaseMs, sampleRate)
	if err != nil {
		return nil, err
	}

	return &gateStage{fx: fx}, nil
}

func newCompressorStage(cfg Config, sampleRate float64) (Stage, error) {
	fx, err := dynamics.NewCompressor(
		cfg.ThresholdDB, cfg.Ratio, cfg.AttackMs, cfg.ReleaseMs, cfg.MakeupDB, sampleRate)
	if err != nil {
		return nil, err
	}

	return &compressorStage{fx: fx}, nil
}

func newDeEsserStage(cfg Config, sampleRate float64) (Stage, error) {
	fx, err := dynamics.NewDeEsser(
		cfg.ThresholdDB, cfg.Ratio, cfg.FrequencyHz, cfg.BandwidthHz, sampleRate)
	if err != nil {
		return nil, err
	}

	return &deEsserStage{fx: fx}, nil
}

func newEQStage(cfg Config, sampleRate float64) (Stage, error) {
	coeffs, err := filter.Peak(cfg.FrequencyHz, cfg.GainDB, cfg.Q, sampleRate)
	if err != nil {
		return nil, err
	}

	return &eqStage{fx: filter.NewBiquad(coeffs)}, nil
}
