package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/echocore/voiceproc/dsp/core"
	"github.com/echocore/voiceproc/dsp/spectrum"
	"github.com/echocore/voiceproc/dsp/waveform"
	"github.com/echocore/voiceproc/dsp/window"
)

// Waveform reduces samples to width (min, max) columns for display.
// A positive height scales columns to ±height/2 pixel coordinates; zero
// leaves them in the sample domain.
//
// When an accelerator is configured and available it handles the
// reduction; a backend failure surfaces as [ErrDeviceUnavailable] rather
// than being silently retried on the host. Without a usable backend the
// host path runs with the engine's worker parallelism.
func (e *Engine) Waveform(ctx context.Context, samples []float64, width int, height float64) (waveform.Summary, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidBuffer)
	}

	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d", ErrInvalidBuffer, width)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	var (
		out waveform.Summary
		err error
	)

	if acc := e.accelerator; acc != nil && acc.Available() {
		out, err = acc.Downsample(ctx, samples, width)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, acc.Name(), err)
		}
	} else {
		if acc := e.accelerator; acc != nil {
			e.log.WithField("backend", acc.Name()).Debug("accelerator unavailable, using host path")
		}

		out, err = waveform.Downsample(samples, width, waveform.WithParallelism(e.workers))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBuffer, err)
		}
	}

	if height > 0 {
		scale := height / 2
		for i := range out {
			out[i].Min *= scale
			out[i].Max *= scale
		}
	}

	e.log.WithFields(logrus.Fields{
		"samples": len(samples),
		"width":   width,
	}).Debug("computed waveform summary")

	return out, nil
}

// Spectrum computes an averaged magnitude spectrum of samples in dBFS
// using frames of fftSize with the named analysis window.
func (e *Engine) Spectrum(ctx context.Context, samples []float64, sampleRate float64, fftSize int, windowName string) ([]float64, error) {
	if err := validateBuffer(samples, sampleRate); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	winType, err := window.ParseType(windowName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuffer, err)
	}

	analyzer, err := spectrum.NewAnalyzer(fftSize, sampleRate, winType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuffer, err)
	}

	db, err := analyzer.AnalyzeDB(samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	return db, nil
}

// PeakAndRMS returns the absolute peak and RMS amplitude of samples.
func PeakAndRMS(samples []float64) (peak, rms float64) {
	for _, v := range samples {
		if v < 0 {
			v = -v
		}

		if v > peak {
			peak = v
		}
	}

	return peak, core.RMS(samples)
}
