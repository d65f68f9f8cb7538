package dynamics

import (
	"fmt"
	"math"
)

const (
	minAttackMs  = 0.01
	maxAttackMs  = 1000.0
	minReleaseMs = 0.1
	maxReleaseMs = 5000.0
)

// EnvelopeFollower tracks the magnitude of a signal with asymmetric
// attack/release smoothing.
//
// The coefficients follow the one-sample time-constant relation
// coeff = exp(-1/(ms · fs/1000)). On a rising input the envelope moves
// toward the magnitude at the attack rate, on a falling input at the
// release rate:
//
//	env = attack·env + (1-attack)·|x|   (rising)
//	env = release·env + (1-release)·|x| (falling)
type EnvelopeFollower struct {
	attackMs   float64
	releaseMs  float64
	sampleRate float64

	attackCoeff  float64
	releaseCoeff float64

	env float64
}

// NewEnvelopeFollower creates a follower with the given time constants.
func NewEnvelopeFollower(attackMs, releaseMs, sampleRate float64) (*EnvelopeFollower, error) {
	e := &EnvelopeFollower{}

	err := e.Configure(attackMs, releaseMs, sampleRate)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Configure revalidates and recomputes the smoothing coefficients.
// The envelope value itself is preserved.
func (e *EnvelopeFollower) Configure(attackMs, releaseMs, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("envelope sample rate must be positive and finite: %g", sampleRate)
	}

	if attackMs < minAttackMs || attackMs > maxAttackMs || math.IsNaN(attackMs) {
		return fmt.Errorf("envelope attack must be in [%g, %g] ms: %g", minAttackMs, maxAttackMs, attackMs)
	}

	if releaseMs < minReleaseMs || releaseMs > maxReleaseMs || math.IsNaN(releaseMs) {
		return fmt.Errorf("envelope release must be in [%g, %g] ms: %g", minReleaseMs, maxReleaseMs, releaseMs)
	}

	e.attackMs = attackMs
	e.releaseMs = releaseMs
	e.sampleRate = sampleRate
	e.attackCoeff = timeConstantCoeff(attackMs, sampleRate)
	e.releaseCoeff = timeConstantCoeff(releaseMs, sampleRate)

	return nil
}

// Update advances the envelope by one sample and returns the new level.
func (e *EnvelopeFollower) Update(x float64) float64 {
	mag := math.Abs(x)

	if mag > e.env {
		e.env = e.attackCoeff*e.env + (1-e.attackCoeff)*mag
	} else {
		e.env = e.releaseCoeff*e.env + (1-e.releaseCoeff)*mag
	}

	return e.env
}

// Level returns the current envelope value.
func (e *EnvelopeFollower) Level() float64 { return e.env }

// SetLevel restores a previously captured envelope value.
func (e *EnvelopeFollower) SetLevel(level float64) { e.env = level }

// Attack returns the attack time in milliseconds.
func (e *EnvelopeFollower) Attack() float64 { return e.attackMs }

// Release returns the release time in milliseconds.
func (e *EnvelopeFollower) Release() float64 { return e.releaseMs }

// AttackCoeff returns the derived attack smoothing coefficient.
func (e *EnvelopeFollower) AttackCoeff() float64 { return e.attackCoeff }

// ReleaseCoeff returns the derived release smoothing coefficient.
func (e *EnvelopeFollower) ReleaseCoeff() float64 { return e.releaseCoeff }

// Reset clears the envelope to zero.
func (e *EnvelopeFollower) Reset() { e.env = 0 }

func timeConstantCoeff(ms, sampleRate float64) float64 {
	return math.Exp(-1 / (ms * sampleRate / 1000))
}

func validThresholdDB(dB float64) error {
	// ±Inf is deliberately legal: -Inf disables a gate, +Inf disables a
	// compressor. Only NaN is rejected.
	if math.IsNaN(dB) {
		return fmt.Errorf("threshold must not be NaN")
	}

	return nil
}
