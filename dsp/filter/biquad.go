package filter

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns coefficients for a unity-gain pass-through section.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Biquad is a single second-order IIR filter with coefficients and the
// two delay elements of a Direct Form II Transposed realization.
type Biquad struct {
	Coefficients

	d0, d1 float64
}

// NewBiquad returns a Biquad initialized with the given coefficients
// and zero state.
func NewBiquad(c Coefficients) *Biquad {
	return &Biquad{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (b *Biquad) ProcessSample(x float64) float64 {
	y := b.B0*x + b.d0
	b.d0 = b.B1*x - b.A1*y + b.d1
	b.d1 = b.B2*x - b.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
//
// The loop is 2x-unrolled; the recurrence across iterations is preserved
// exactly, so the result is bit-identical to repeated ProcessSample calls.
func (b *Biquad) ProcessBlock(buf []float64) {
	b0, b1, b2 := b.B0, b.B1, b.B2
	a1, a2 := b.A1, b.A2
	d0, d1 := b.d0, b.d1

	i := 0

	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	b.d0, b.d1 = d0, d1
}

// State returns the delay elements (z1, z2) of the section.
func (b *Biquad) State() (z1, z2 float64) {
	return b.d0, b.d1
}

// SetState restores previously captured delay elements.
func (b *Biquad) SetState(z1, z2 float64) {
	b.d0, b.d1 = z1, z2
}

// Reset clears the delay elements.
func (b *Biquad) Reset() {
	b.d0, b.d1 = 0, 0
}
