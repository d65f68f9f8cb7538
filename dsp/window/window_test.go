package window

import (
	"math"
	"testing"
)

func TestGenerateValidation(t *testing.T) {
	if _, err := Generate(TypeHann, 0); err == nil {
		t.Error("expected error for zero length")
	}

	if _, err := Generate(Type(42), 16); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestGenerateEndpointsAndPeak(t *testing.T) {
	tests := []struct {
		typ      Type
		wantEdge float64
		wantPeak float64
	}{
		{TypeHann, 0, 1},
		{TypeHamming, 0.08, 1},
		{TypeBlackman, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			const n = 1024

			w, err := Generate(tt.typ, n)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if math.Abs(w[0]-tt.wantEdge) > 1e-9 {
				t.Errorf("w[0] = %v, want %v", w[0], tt.wantEdge)
			}

			// Periodic form peaks exactly at n/2.
			if math.Abs(w[n/2]-tt.wantPeak) > 1e-9 {
				t.Errorf("w[n/2] = %v, want %v", w[n/2], tt.wantPeak)
			}
		})
	}
}

func TestGenerateRectangular(t *testing.T) {
	w, err := Generate(TypeRectangular, 8)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for i, v := range w {
		if v != 1 {
			t.Errorf("w[%d] = %v, want 1", i, v)
		}
	}
}

func TestCoherentGain(t *testing.T) {
	w, err := Generate(TypeHann, 4096)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Periodic Hann averages exactly to 0.5.
	if got := CoherentGain(w); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("CoherentGain = %v, want 0.5", got)
	}

	if got := CoherentGain(nil); got != 0 {
		t.Errorf("CoherentGain(nil) = %v, want 0", got)
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2}
	coeffs := []float64{0, 0.5, 1, 0.5}

	if err := Apply(buf, coeffs); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	want := []float64{0, 1, 2, 1}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	if err := Apply(buf, coeffs[:2]); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		want    Type
		wantErr bool
	}{
		{"hann", TypeHann, false},
		{"hamming", TypeHamming, false},
		{"blackman", TypeBlackman, false},
		{"rectangular", TypeRectangular, false},
		{"", TypeRectangular, false},
		{"kaiser", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}

		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
