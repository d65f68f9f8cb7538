// Package window provides the analysis window functions used when
// framing audio for spectral visualization.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String returns the lowercase name of the window type.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return fmt.Sprintf("window(%d)", int(t))
	}
}

// ParseType resolves a window name as accepted on API boundaries.
func ParseType(name string) (Type, error) {
	switch name {
	case "rectangular", "":
		return TypeRectangular, nil
	case "hann":
		return TypeHann, nil
	case "hamming":
		return TypeHamming, nil
	case "blackman":
		return TypeBlackman, nil
	default:
		return 0, fmt.Errorf("window: unknown type %q", name)
	}
}

// Generate returns the periodic form of the window, suited for FFT
// framing: w[n] is evaluated at n/length rather than n/(length-1).
func Generate(t Type, length int) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window: length must be positive: %d", length)
	}

	out := make([]float64, length)

	switch t {
	case TypeRectangular:
		for i := range out {
			out[i] = 1
		}
	case TypeHann:
		cosineSum(out, 0.5, 0.5, 0)
	case TypeHamming:
		cosineSum(out, 0.54, 0.46, 0)
	case TypeBlackman:
		cosineSum(out, 0.42, 0.5, 0.08)
	default:
		return nil, fmt.Errorf("window: unknown type %d", int(t))
	}

	return out, nil
}

// Apply multiplies buf by the window coefficients in place. The two
// slices must have the same length.
func Apply(buf, coeffs []float64) error {
	if len(buf) != len(coeffs) {
		return fmt.Errorf("window: length mismatch: %d vs %d", len(buf), len(coeffs))
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// CoherentGain returns the mean coefficient value, the factor by which
// the window attenuates a coherent sinusoid.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

func cosineSum(out []float64, a0, a1, a2 float64) {
	step := 2 * math.Pi / float64(len(out))
	for i := range out {
		phi := float64(i) * step
		out[i] = a0 - a1*math.Cos(phi) + a2*math.Cos(2*phi)
	}
}
