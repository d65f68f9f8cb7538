package dynamics

import (
	"math"
	"testing"

	"github.com/echocore/voiceproc/internal/testutil"
)

func TestNewNoiseGate(t *testing.T) {
	tests := []struct {
		name                              string
		threshold, attack, release, rate  float64
		wantErr                           bool
	}{
		{"valid", -40, 5, 100, 48000, false},
		{"disabled via -inf", math.Inf(-1), 5, 100, 48000, false},
		{"NaN threshold", math.NaN(), 5, 100, 48000, true},
		{"bad attack", -40, 0, 100, 48000, true},
		{"bad release", -40, 5, 0, 48000, true},
		{"bad sample rate", -40, 5, 100, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNoiseGate(tt.threshold, tt.attack, tt.release, tt.rate)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewNoiseGate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestGateAttenuatesQuietPassesLoud feeds a signal whose first half sits
// well below threshold and whose second half sits well above, and checks
// near-full attenuation then near-unity gain.
func TestGateAttenuatesQuietPassesLoud(t *testing.T) {
	const sampleRate = 16000.0

	g, err := NewNoiseGate(-30, 1, 20, sampleRate)
	if err != nil {
		t.Fatalf("NewNoiseGate() error = %v", err)
	}

	// -52 dB first half, -4 dB second half.
	in := testutil.Step(0.0025, 0.63, 1000, sampleRate, 16000)

	out := make([]float64, len(in))
	copy(out, in)
	g.ProcessInPlace(out)

	half := len(in) / 2

	quietIn := testutil.RMS(in[:half])
	quietOut := testutil.RMS(out[:half])
	if quietOut > 0.2*quietIn {
		t.Errorf("quiet half gain = %v, want < 0.2", quietOut/quietIn)
	}

	// Skip the attack transition (bounded by the 1 ms attack time, use 10 ms).
	loudStart := half + 160
	loudIn := testutil.RMS(in[loudStart:])

	loudOut := testutil.RMS(out[loudStart:])
	if loudOut < 0.95*loudIn {
		t.Errorf("loud half gain = %v, want ≈ 1", loudOut/loudIn)
	}
}

// TestGateSoftFade verifies the gate scales by env/threshold instead of
// hard-muting: a sub-threshold signal is reduced, not silenced.
func TestGateSoftFade(t *testing.T) {
	const sampleRate = 48000.0

	g, err := NewNoiseGate(-20, 5, 50, sampleRate)
	if err != nil {
		t.Fatalf("NewNoiseGate() error = %v", err)
	}

	in := testutil.DeterministicSine(440, sampleRate, 0.02, 48000) // ≈ -34 dB
	out := make([]float64, len(in))
	copy(out, in)
	g.ProcessInPlace(out)

	tail := len(out) / 2
	gain := testutil.RMS(out[tail:]) / testutil.RMS(in[tail:])

	if gain <= 0 {
		t.Error("gate hard-muted a sub-threshold signal")
	}

	if gain >= 0.5 {
		t.Errorf("sub-threshold gain = %v, want attenuation", gain)
	}
}

func TestGateNeutralAtMinusInf(t *testing.T) {
	g, err := NewNoiseGate(math.Inf(-1), 5, 100, 48000)
	if err != nil {
		t.Fatalf("NewNoiseGate() error = %v", err)
	}

	in := testutil.DeterministicNoise(9, 0.001, 2048)
	out := make([]float64, len(in))
	copy(out, in)
	g.ProcessInPlace(out)

	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestGateEnvelopeRoundTrip(t *testing.T) {
	g, _ := NewNoiseGate(-40, 5, 100, 48000)
	g.ProcessInPlace(testutil.DeterministicSine(440, 48000, 0.5, 512))

	env := g.Envelope()
	if env == 0 {
		t.Fatal("expected non-zero envelope")
	}

	g.Reset()
	if g.Envelope() != 0 {
		t.Fatal("Reset did not clear envelope")
	}

	g.SetEnvelope(env)
	if g.Envelope() != env {
		t.Error("SetEnvelope did not restore state")
	}
}
