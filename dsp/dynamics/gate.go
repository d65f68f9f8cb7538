package dynamics

import (
	"fmt"
	"math"

	"github.com/echocore/voiceproc/dsp/core"
)

const (
	defaultGateThresholdDB = -40.0
	defaultGateAttackMs    = 5.0
	defaultGateReleaseMs   = 100.0
)

// NoiseGate attenuates signal below a threshold with a soft-knee fade.
//
// Instead of hard-muting, the gate scales the output by env/threshold while
// the envelope sits below the linear threshold. The ramp avoids the audible
// clicks of an on/off gate on speech. Above threshold samples pass
// unmodified.
type NoiseGate struct {
	thresholdDB  float64
	thresholdLin float64

	follower *EnvelopeFollower
}

// NewNoiseGate creates a gate with the given parameters.
//
// A threshold of -Inf dB disables the gate (everything passes).
func NewNoiseGate(thresholdDB, attackMs, releaseMs, sampleRate float64) (*NoiseGate, error) {
	err := validThresholdDB(thresholdDB)
	if err != nil {
		return nil, fmt.Errorf("gate: %w", err)
	}

	follower, err := NewEnvelopeFollower(attackMs, releaseMs, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("gate: %w", err)
	}

	return &NoiseGate{
		thresholdDB:  thresholdDB,
		thresholdLin: core.DBToLinear(thresholdDB),
		follower:     follower,
	}, nil
}

// SetThreshold sets the gate threshold in dB.
func (g *NoiseGate) SetThreshold(dB float64) error {
	err := validThresholdDB(dB)
	if err != nil {
		return fmt.Errorf("gate: %w", err)
	}

	g.thresholdDB = dB
	g.thresholdLin = core.DBToLinear(dB)

	return nil
}

// Threshold returns the threshold in dB.
func (g *NoiseGate) Threshold() float64 { return g.thresholdDB }

// ProcessSample gates one sample.
func (g *NoiseGate) ProcessSample(x float64) float64 {
	env := g.follower.Update(x)

	if g.thresholdLin <= 0 {
		return x
	}

	if math.IsInf(g.thresholdLin, 1) {
		// Everything is "below threshold"; fade fully toward silence.
		return 0
	}

	if env >= g.thresholdLin {
		return x
	}

	return x * (env / g.thresholdLin)
}

// ProcessInPlace gates buf in place.
func (g *NoiseGate) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = g.ProcessSample(buf[i])
	}
}

// Envelope returns the follower level, the gate's only recurrence state.
func (g *NoiseGate) Envelope() float64 { return g.follower.Level() }

// SetEnvelope restores a previously captured follower level.
func (g *NoiseGate) SetEnvelope(level float64) { g.follower.SetLevel(level) }

// Reset clears the envelope follower.
func (g *NoiseGate) Reset() { g.follower.Reset() }
