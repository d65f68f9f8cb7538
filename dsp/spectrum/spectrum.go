// Package spectrum computes magnitude spectra of audio frames for
// visualization.
package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/echocore/voiceproc/dsp/window"
)

// MinDB is the floor applied to dBFS bin values.
const MinDB = -130.0

const epsMag = 1e-12

// Analyzer turns fixed-size frames of samples into single-sided magnitude
// spectra. An analyzer owns its FFT plan and scratch buffers and is not
// safe for concurrent use.
type Analyzer struct {
	fftSize    int
	sampleRate float64
	win        []float64
	winGain    float64
	plan       *algofft.Plan[complex128]

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
}

// NewAnalyzer builds an analyzer for frames of fftSize samples. fftSize
// must be a power of two of at least 64.
func NewAnalyzer(fftSize int, sampleRate float64, winType window.Type) (*Analyzer, error) {
	if fftSize < 64 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("spectrum: fft size must be a power of two >= 64: %d", fftSize)
	}

	if sampleRate <= 0 || math.IsInf(sampleRate, 0) || math.IsNaN(sampleRate) {
		return nil, fmt.Errorf("spectrum: invalid sample rate: %g", sampleRate)
	}

	win, err := window.Generate(winType, fftSize)
	if err != nil {
		return nil, err
	}

	winGain := window.CoherentGain(win)
	if winGain < epsMag {
		winGain = epsMag
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	bins := fftSize/2 + 1

	return &Analyzer{
		fftSize:    fftSize,
		sampleRate: sampleRate,
		win:        win,
		winGain:    winGain,
		plan:       plan,
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
	}, nil
}

// FFTSize returns the frame length in samples.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// Bins returns the number of single-sided spectrum bins, fftSize/2+1.
func (a *Analyzer) Bins() int { return a.fftSize/2 + 1 }

// BinFrequency returns the center frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.sampleRate / float64(a.fftSize)
}

// FrameDB computes the single-sided magnitude spectrum of one frame in
// dBFS. Frames shorter than the FFT size are zero padded; longer frames
// are an error. A full-scale sinusoid at a bin center reads close to
// 0 dBFS regardless of the window.
func (a *Analyzer) FrameDB(frame []float64) ([]float64, error) {
	if len(frame) > a.fftSize {
		return nil, fmt.Errorf("spectrum: frame of %d exceeds fft size %d", len(frame), a.fftSize)
	}

	for i := range a.in {
		if i < len(frame) {
			a.in[i] = complex(frame[i]*a.win[i], 0)
		} else {
			a.in[i] = 0
		}
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum: fft: %w", err)
	}

	bins := a.Bins()
	for k := 0; k < bins; k++ {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	mags := make([]float64, bins)
	vecmath.Magnitude(mags, a.re, a.im)

	norm := float64(a.fftSize) * a.winGain

	for k := range mags {
		mag := mags[k] / norm
		if k > 0 && k < bins-1 {
			mag *= 2
		}

		db := 20 * math.Log10(math.Max(epsMag, mag))
		if db < MinDB {
			db = MinDB
		}

		mags[k] = db
	}

	return mags, nil
}

// AnalyzeDB averages FrameDB over the whole buffer using half-frame
// overlap, in the power domain so loud transients are not drowned by
// quiet frames. Buffers shorter than one frame are analyzed as a single
// zero-padded frame.
func (a *Analyzer) AnalyzeDB(samples []float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("spectrum: empty sample buffer")
	}

	hop := a.fftSize / 2
	acc := make([]float64, a.Bins())
	frames := 0

	for off := 0; ; off += hop {
		end := off + a.fftSize
		if end > len(samples) {
			end = len(samples)
		}

		db, err := a.FrameDB(samples[off:end])
		if err != nil {
			return nil, err
		}

		for k, v := range db {
			acc[k] += math.Pow(10, v/10)
		}

		frames++

		if end == len(samples) {
			break
		}
	}

	for k := range acc {
		db := 10 * math.Log10(math.Max(epsMag, acc[k]/float64(frames)))
		if db < MinDB {
			db = MinDB
		}

		acc[k] = db
	}

	return acc, nil
}
