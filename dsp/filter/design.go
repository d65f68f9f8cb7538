package filter

import (
	"fmt"
	"math"
)

const (
	// MinGainDB and MaxGainDB bound the peaking-EQ gain accepted by the
	// engine. UI layers typically restrict further (e.g. ±12 dB).
	MinGainDB = -24.0
	MaxGainDB = 24.0

	minQ = 1e-4
	maxQ = 100.0
)

// Peak designs an RBJ cookbook peaking-EQ biquad.
//
// freq is the center frequency in Hz and must lie in (0, sampleRate/2).
// gainDB is the boost/cut in dB within [-24, +24]. q controls bandwidth
// and must be positive.
//
// At gainDB == 0 the returned section is numerically all-pass: the linear
// amplitude A is 1, so the numerator and denominator coincide and the
// filter reduces to unity gain for every freq/q combination.
func Peak(freq, gainDB, q, sampleRate float64) (Coefficients, error) {
	if err := validateFrequency(freq, sampleRate); err != nil {
		return Coefficients{}, err
	}

	if q <= 0 || q < minQ || q > maxQ || math.IsNaN(q) {
		return Coefficients{}, fmt.Errorf("peak q must be in [%g, %g]: %g", minQ, maxQ, q)
	}

	if gainDB < MinGainDB || gainDB > MaxGainDB || math.IsNaN(gainDB) {
		return Coefficients{}, fmt.Errorf("peak gain must be in [%g, %g] dB: %g", MinGainDB, MaxGainDB, gainDB)
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2), nil
}

func validateFrequency(freq, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be positive and finite: %g", sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return fmt.Errorf("frequency must be in (0, %g): %g", sampleRate/2, freq)
	}

	return nil
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	inv := 1 / a0

	return Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
}
