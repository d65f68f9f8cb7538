package dynamics

import (
	"fmt"
	"math"

	"github.com/echocore/voiceproc/dsp/core"
)

const (
	defaultCompThresholdDB = -20.0
	defaultCompRatio       = 4.0
	defaultCompAttackMs    = 10.0
	defaultCompReleaseMs   = 100.0
	defaultCompMakeupDB    = 0.0

	minCompRatio    = 1.0
	maxCompRatio    = 100.0
	minCompMakeupDB = -24.0
	maxCompMakeupDB = 24.0
)

// CompressorMetrics holds metering information for visualization and analysis.
type CompressorMetrics struct {
	InputPeak     float64 // maximum input level since last reset
	OutputPeak    float64 // maximum output level since last reset
	GainReduction float64 // minimum gain (maximum reduction) since last reset
}

// Compressor reduces dynamic range above a threshold.
//
// When the detector envelope exceeds the linear threshold the overshoot is
// measured in dB (20·log10(env/threshold)), scaled by (1 − 1/ratio), and
// converted back to a linear reduction gain. Makeup gain is applied
// unconditionally, below threshold as well, so unity-ratio or
// below-threshold operation still honors the configured makeup.
type Compressor struct {
	thresholdDB  float64
	ratio        float64
	makeupDB     float64
	thresholdLin float64
	makeupLin    float64

	follower *EnvelopeFollower

	metrics CompressorMetrics
}

// NewCompressor creates a compressor with the given parameters.
//
// ratio must lie in [1, 100]; makeup gain in [-24, 24] dB. A threshold of
// +Inf dB disables compression (makeup still applies).
func NewCompressor(thresholdDB, ratio, attackMs, releaseMs, makeupDB, sampleRate float64) (*Compressor, error) {
	err := validThresholdDB(thresholdDB)
	if err != nil {
		return nil, fmt.Errorf("compressor: %w", err)
	}

	if ratio < minCompRatio || ratio > maxCompRatio || math.IsNaN(ratio) {
		return nil, fmt.Errorf("compressor ratio must be in [%g, %g]: %g", minCompRatio, maxCompRatio, ratio)
	}

	if makeupDB < minCompMakeupDB || makeupDB > maxCompMakeupDB || math.IsNaN(makeupDB) {
		return nil, fmt.Errorf("compressor makeup gain must be in [%g, %g] dB: %g", minCompMakeupDB, maxCompMakeupDB, makeupDB)
	}

	follower, err := NewEnvelopeFollower(attackMs, releaseMs, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("compressor: %w", err)
	}

	return &Compressor{
		thresholdDB:  thresholdDB,
		ratio:        ratio,
		makeupDB:     makeupDB,
		thresholdLin: core.DBToLinear(thresholdDB),
		makeupLin:    core.DBToLinear(makeupDB),
		follower:     follower,
		metrics:      CompressorMetrics{GainReduction: 1},
	}, nil
}

// Threshold returns the threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// MakeupGain returns the makeup gain in dB.
func (c *Compressor) MakeupGain() float64 { return c.makeupDB }

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	env := c.follower.Update(x)

	gain := 1.0
	if c.thresholdLin > 0 && env > c.thresholdLin {
		overDB := 20 * math.Log10(env/c.thresholdLin)
		reductionDB := overDB * (1 - 1/c.ratio)
		gain = core.DBToLinear(-reductionDB)
	}

	out := x * gain * c.makeupLin

	c.updateMetrics(math.Abs(x), math.Abs(out), gain)

	return out
}

// ProcessInPlace compresses buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// Envelope returns the follower level, the compressor's only recurrence state.
func (c *Compressor) Envelope() float64 { return c.follower.Level() }

// SetEnvelope restores a previously captured follower level.
func (c *Compressor) SetEnvelope(level float64) { c.follower.SetLevel(level) }

// Reset clears the envelope follower and metrics.
func (c *Compressor) Reset() {
	c.follower.Reset()
	c.metrics = CompressorMetrics{GainReduction: 1}
}

// Metrics returns current metering values.
func (c *Compressor) Metrics() CompressorMetrics { return c.metrics }

func (c *Compressor) updateMetrics(in, out, gain float64) {
	if in > c.metrics.InputPeak {
		c.metrics.InputPeak = in
	}

	if out > c.metrics.OutputPeak {
		c.metrics.OutputPeak = out
	}

	if gain < c.metrics.GainReduction {
		c.metrics.GainReduction = gain
	}
}
