package filter

import (
	"fmt"
	"math"
)

// OnePoleLowPass is a first-order RC low-pass filter.
//
// The coefficient follows the standard RC time-constant relation:
// rc = 1/(2π·cutoff), alpha = dt/(rc+dt). A constant (DC) input converges
// toward the input value. A cutoff of +Inf yields alpha = 1, i.e. an
// identity filter.
type OnePoleLowPass struct {
	cutoffHz   float64
	sampleRate float64
	alpha      float64
	y1         float64
}

// NewOnePoleLowPass creates a low-pass filter with the given cutoff.
//
// cutoff must lie in (0, sampleRate/2) or be +Inf (identity).
func NewOnePoleLowPass(cutoffHz, sampleRate float64) (*OnePoleLowPass, error) {
	f := &OnePoleLowPass{}

	err := f.configure(cutoffHz, sampleRate)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (f *OnePoleLowPass) configure(cutoffHz, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("low-pass sample rate must be positive and finite: %g", sampleRate)
	}

	if math.IsInf(cutoffHz, 1) {
		f.cutoffHz = cutoffHz
		f.sampleRate = sampleRate
		f.alpha = 1

		return nil
	}

	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 || math.IsNaN(cutoffHz) {
		return fmt.Errorf("low-pass cutoff must be in (0, %g) or +Inf: %g", sampleRate/2, cutoffHz)
	}

	dt := 1 / sampleRate
	rc := 1 / (2 * math.Pi * cutoffHz)

	f.cutoffHz = cutoffHz
	f.sampleRate = sampleRate
	f.alpha = dt / (rc + dt)

	return nil
}

// SetCutoff reconfigures the cutoff frequency, preserving filter state.
func (f *OnePoleLowPass) SetCutoff(cutoffHz float64) error {
	return f.configure(cutoffHz, f.sampleRate)
}

// Cutoff returns the configured cutoff frequency in Hz.
func (f *OnePoleLowPass) Cutoff() float64 { return f.cutoffHz }

// Alpha returns the derived smoothing coefficient.
func (f *OnePoleLowPass) Alpha() float64 { return f.alpha }

// ProcessSample filters one sample.
func (f *OnePoleLowPass) ProcessSample(x float64) float64 {
	f.y1 += f.alpha * (x - f.y1)
	return f.y1
}

// ProcessBlock filters a block of samples in-place.
func (f *OnePoleLowPass) ProcessBlock(buf []float64) {
	alpha := f.alpha
	y1 := f.y1

	for i, x := range buf {
		y1 += alpha * (x - y1)
		buf[i] = y1
	}

	f.y1 = y1
}

// State returns the single delay element.
func (f *OnePoleLowPass) State() float64 { return f.y1 }

// SetState restores a previously captured delay element.
func (f *OnePoleLowPass) SetState(y1 float64) { f.y1 = y1 }

// Reset clears the delay element.
func (f *OnePoleLowPass) Reset() { f.y1 = 0 }

// OnePoleHighPass is a first-order RC high-pass filter.
//
// alpha = rc/(rc+dt) with rc = 1/(2π·cutoff). A constant (DC) input
// converges toward zero. A cutoff of 0 yields alpha = 1, which passes the
// signal through unchanged.
type OnePoleHighPass struct {
	cutoffHz   float64
	sampleRate float64
	alpha      float64
	x1, y1     float64
}

// NewOnePoleHighPass creates a high-pass filter with the given cutoff.
//
// cutoff must lie in [0, sampleRate/2); a cutoff of 0 is the identity.
func NewOnePoleHighPass(cutoffHz, sampleRate float64) (*OnePoleHighPass, error) {
	f := &OnePoleHighPass{}

	err := f.configure(cutoffHz, sampleRate)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (f *OnePoleHighPass) configure(cutoffHz, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("high-pass sample rate must be positive and finite: %g", sampleRate)
	}

	if cutoffHz < 0 || cutoffHz >= sampleRate/2 || math.IsNaN(cutoffHz) {
		return fmt.Errorf("high-pass cutoff must be in [0, %g): %g", sampleRate/2, cutoffHz)
	}

	f.cutoffHz = cutoffHz
	f.sampleRate = sampleRate

	if cutoffHz == 0 {
		f.alpha = 1
		return nil
	}

	dt := 1 / sampleRate
	rc := 1 / (2 * math.Pi * cutoffHz)
	f.alpha = rc / (rc + dt)

	return nil
}

// SetCutoff reconfigures the cutoff frequency, preserving filter state.
func (f *OnePoleHighPass) SetCutoff(cutoffHz float64) error {
	return f.configure(cutoffHz, f.sampleRate)
}

// Cutoff returns the configured cutoff frequency in Hz.
func (f *OnePoleHighPass) Cutoff() float64 { return f.cutoffHz }

// Alpha returns the derived feedback coefficient.
func (f *OnePoleHighPass) Alpha() float64 { return f.alpha }

// ProcessSample filters one sample.
func (f *OnePoleHighPass) ProcessSample(x float64) float64 {
	y := f.alpha * (f.y1 + x - f.x1)
	f.x1 = x
	f.y1 = y

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *OnePoleHighPass) ProcessBlock(buf []float64) {
	alpha := f.alpha
	x1, y1 := f.x1, f.y1

	for i, x := range buf {
		y1 = alpha * (y1 + x - x1)
		x1 = x
		buf[i] = y1
	}

	f.x1, f.y1 = x1, y1
}

// State returns the delay elements (previous input, previous output).
func (f *OnePoleHighPass) State() (x1, y1 float64) { return f.x1, f.y1 }

// SetState restores previously captured delay elements.
func (f *OnePoleHighPass) SetState(x1, y1 float64) { f.x1, f.y1 = x1, y1 }

// Reset clears the delay elements.
func (f *OnePoleHighPass) Reset() { f.x1, f.y1 = 0, 0 }
