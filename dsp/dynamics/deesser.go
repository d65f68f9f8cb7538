package dynamics

import (
	"fmt"
	"math"

	"github.com/echocore/voiceproc/dsp/core"
)

const (
	defaultDeEsserThresholdDB = -20.0
	defaultDeEsserRatio       = 4.0
	defaultDeEsserFreqHz      = 6000.0
	defaultDeEsserBandwidthHz = 4000.0

	// The detector reacts fast and recovers quickly; sibilants are short.
	deEsserAttackMs  = 0.5
	deEsserReleaseMs = 20.0

	minDeEsserFreqHz = 1000.0
	maxDeEsserFreqHz = 20000.0
)

// DeEsser suppresses sibilance using a broadband amplitude detector.
//
// When the detector envelope exceeds the linear threshold the same
// dB-overshoot reduction as [Compressor] is applied, scaled by the ratio.
// The target frequency and bandwidth are validated and carried so a
// band-limited detector (band-pass around 4–10 kHz ahead of the envelope)
// can be swapped in without an API change; the baseline deliberately
// detects on the raw amplitude.
type DeEsser struct {
	thresholdDB  float64
	ratio        float64
	freqHz       float64
	bandwidthHz  float64
	thresholdLin float64

	follower *EnvelopeFollower
}

// NewDeEsser creates a de-esser with the given parameters.
//
// freqHz is the sibilance center frequency in [1000, 20000] and must lie
// below Nyquist; bandwidthHz must be positive.
func NewDeEsser(thresholdDB, ratio, freqHz, bandwidthHz, sampleRate float64) (*DeEsser, error) {
	err := validThresholdDB(thresholdDB)
	if err != nil {
		return nil, fmt.Errorf("de-esser: %w", err)
	}

	if ratio < minCompRatio || ratio > maxCompRatio || math.IsNaN(ratio) {
		return nil, fmt.Errorf("de-esser ratio must be in [%g, %g]: %g", minCompRatio, maxCompRatio, ratio)
	}

	if freqHz < minDeEsserFreqHz || freqHz > maxDeEsserFreqHz || math.IsNaN(freqHz) {
		return nil, fmt.Errorf("de-esser frequency must be in [%g, %g] Hz: %g", minDeEsserFreqHz, maxDeEsserFreqHz, freqHz)
	}

	if freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("de-esser frequency must be below nyquist (%g): %g", sampleRate/2, freqHz)
	}

	if bandwidthHz <= 0 || math.IsNaN(bandwidthHz) || math.IsInf(bandwidthHz, 0) {
		return nil, fmt.Errorf("de-esser bandwidth must be positive and finite: %g", bandwidthHz)
	}

	follower, err := NewEnvelopeFollower(deEsserAttackMs, deEsserReleaseMs, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("de-esser: %w", err)
	}

	return &DeEsser{
		thresholdDB:  thresholdDB,
		ratio:        ratio,
		freqHz:       freqHz,
		bandwidthHz:  bandwidthHz,
		thresholdLin: core.DBToLinear(thresholdDB),
		follower:     follower,
	}, nil
}

// Threshold returns the threshold in dB.
func (d *DeEsser) Threshold() float64 { return d.thresholdDB }

// Ratio returns the reduction ratio.
func (d *DeEsser) Ratio() float64 { return d.ratio }

// Frequency returns the target sibilance frequency in Hz.
func (d *DeEsser) Frequency() float64 { return d.freqHz }

// Bandwidth returns the target bandwidth in Hz.
func (d *DeEsser) Bandwidth() float64 { return d.bandwidthHz }

// ProcessSample de-esses one sample.
func (d *DeEsser) ProcessSample(x float64) float64 {
	env := d.follower.Update(x)

	if d.thresholdLin <= 0 || math.IsInf(d.thresholdLin, 1) {
		return x
	}

	if env <= d.thresholdLin {
		return x
	}

	overDB := 20 * math.Log10(env/d.thresholdLin)
	reductionDB := overDB * (1 - 1/d.ratio)

	return x * core.DBToLinear(-reductionDB)
}

// ProcessInPlace de-esses buf in place.
func (d *DeEsser) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = d.ProcessSample(buf[i])
	}
}

// Envelope returns the follower level, the de-esser's only recurrence state.
func (d *DeEsser) Envelope() float64 { return d.follower.Level() }

// SetEnvelope restores a previously captured follower level.
func (d *DeEsser) SetEnvelope(level float64) { d.follower.SetLevel(level) }

// Reset clears the envelope follower.
func (d *DeEsser) Reset() { d.follower.Reset() }
