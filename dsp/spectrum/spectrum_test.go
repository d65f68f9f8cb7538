package spectrum

import (
	"math"
	"testing"

	"github.com/echocore/voiceproc/dsp/window"
	"github.com/echocore/voiceproc/internal/testutil"
)

func TestNewAnalyzerValidation(t *testing.T) {
	tests := []struct {
		name       string
		fftSize    int
		sampleRate float64
	}{
		{"not power of two", 1000, 48000},
		{"too small", 32, 48000},
		{"zero rate", 2048, 0},
		{"nan rate", 2048, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnalyzer(tt.fftSize, tt.sampleRate, window.TypeHann); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestFrameDBSinePeak feeds a full-scale sinusoid centered on a bin and
// checks the peak lands on that bin near 0 dBFS.
func TestFrameDBSinePeak(t *testing.T) {
	const (
		fftSize    = 2048
		sampleRate = 48000.0
		bin        = 100
	)

	a, err := NewAnalyzer(fftSize, sampleRate, window.TypeHann)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	freq := a.BinFrequency(bin)
	frame := testutil.DeterministicSine(freq, sampleRate, 1.0, fftSize)

	db, err := a.FrameDB(frame)
	if err != nil {
		t.Fatalf("FrameDB() error = %v", err)
	}

	if len(db) != fftSize/2+1 {
		t.Fatalf("bins = %d, want %d", len(db), fftSize/2+1)
	}

	peak := 0
	for k := 1; k < len(db); k++ {
		if db[k] > db[peak] {
			peak = k
		}
	}

	if peak != bin {
		t.Errorf("peak at bin %d (%.1f Hz), want %d (%.1f Hz)",
			peak, a.BinFrequency(peak), bin, freq)
	}

	if math.Abs(db[peak]) > 0.5 {
		t.Errorf("peak level = %.2f dBFS, want ≈ 0", db[peak])
	}

	// Far from the peak the Hann sidelobes sit well below the carrier.
	if db[bin/2] > -40 {
		t.Errorf("off-peak bin = %.2f dBFS, want < -40", db[bin/2])
	}
}

func TestFrameDBSilenceFloors(t *testing.T) {
	a, err := NewAnalyzer(1024, 16000, window.TypeHann)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	db, err := a.FrameDB(make([]float64, 1024))
	if err != nil {
		t.Fatalf("FrameDB() error = %v", err)
	}

	for k, v := range db {
		if v != MinDB {
			t.Fatalf("bin %d = %v, want floor %v", k, v, MinDB)
		}
	}
}

func TestFrameDBRejectsOversizedFrame(t *testing.T) {
	a, err := NewAnalyzer(256, 16000, window.TypeHann)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	if _, err := a.FrameDB(make([]float64, 257)); err == nil {
		t.Error("expected error for oversized frame")
	}
}

func TestAnalyzeDBAveragesFrames(t *testing.T) {
	const (
		fftSize    = 1024
		sampleRate = 16000.0
	)

	a, err := NewAnalyzer(fftSize, sampleRate, window.TypeHamming)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	freq := a.BinFrequency(40)
	samples := testutil.DeterministicSine(freq, sampleRate, 0.5, fftSize*8)

	db, err := a.AnalyzeDB(samples)
	if err != nil {
		t.Fatalf("AnalyzeDB() error = %v", err)
	}

	peak := 0
	for k := 1; k < len(db); k++ {
		if db[k] > db[peak] {
			peak = k
		}
	}

	if peak != 40 {
		t.Errorf("peak at bin %d, want 40", peak)
	}

	// Amplitude 0.5 is -6 dBFS.
	if math.Abs(db[peak]-(-6.02)) > 1 {
		t.Errorf("peak level = %.2f dBFS, want ≈ -6", db[peak])
	}

	if _, err := a.AnalyzeDB(nil); err == nil {
		t.Error("expected error for empty buffer")
	}
}

func TestBinFrequency(t *testing.T) {
	a, err := NewAnalyzer(2048, 48000, window.TypeBlackman)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	if got := a.BinFrequency(0); got != 0 {
		t.Errorf("BinFrequency(0) = %v", got)
	}

	if got := a.BinFrequency(1024); got != 24000 {
		t.Errorf("BinFrequency(nyquist) = %v, want 24000", got)
	}
}

func BenchmarkFrameDB(b *testing.B) {
	a, err := NewAnalyzer(2048, 48000, window.TypeHann)
	if err != nil {
		b.Fatal(err)
	}

	frame := testutil.DeterministicNoise(1, 1, 2048)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := a.FrameDB(frame); err != nil {
			b.Fatal(err)
		}
	}
}
