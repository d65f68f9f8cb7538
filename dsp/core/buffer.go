package core

import "math"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Clone returns a copy of buf, or nil for an empty input.
func Clone(buf []float64) []float64 {
	if len(buf) == 0 {
		return nil
	}

	out := make([]float64, len(buf))
	copy(out, buf)

	return out
}

// ClampUnitInPlace limits every sample in buf to [-1, 1].
func ClampUnitInPlace(buf []float64) {
	for i, v := range buf {
		buf[i] = ClampUnit(v)
	}
}

// AllFinite reports whether every sample in buf is finite.
func AllFinite(buf []float64) bool {
	for _, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// RMS returns the root-mean-square amplitude of buf, or 0 for an empty slice.
func RMS(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range buf {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(buf)))
}
