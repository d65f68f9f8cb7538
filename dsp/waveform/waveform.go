// Package waveform reduces long sample buffers to fixed-width (min, max)
// column summaries for visualization.
//
// Each column is an independent reduction over its own sample window.
// Nothing here carries state between samples, so unlike the filter and
// dynamics stages the work may be split freely across columns.
package waveform

import (
	"fmt"
	"sync"
)

// Column is the (min, max) pair of one output pixel column.
type Column struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary is an ordered sequence of columns; its length equals the
// requested width regardless of input length.
type Summary []Column

// Downsample reduces samples to width (min, max) columns.
//
// samplesPerColumn is max(1, len(samples)/width); column i reduces the
// window [i·spc, min((i+1)·spc, len(samples))). Windows past the end of
// the input produce zero columns. For width == len(samples) the summary
// reproduces the buffer exactly (min == max == sample).
func Downsample(samples []float64, width int, opts ...Option) (Summary, error) {
	if width <= 0 {
		return nil, fmt.Errorf("waveform: width must be positive: %d", width)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("waveform: empty sample buffer")
	}

	cfg := applyOptions(opts)
	out := make(Summary, width)

	if cfg.parallelism > 1 && width >= cfg.minColumnsPerWorker*2 {
		downsampleParallel(samples, out, cfg.parallelism)
	} else {
		downsampleRange(samples, out, 0, width)
	}

	if cfg.height > 0 {
		scale := cfg.height / 2
		for i := range out {
			out[i].Min *= scale
			out[i].Max *= scale
		}
	}

	return out, nil
}

// DownsampleRange recomputes only the columns in [firstCol, lastCol) of an
// existing summary, for incremental refresh after a partial buffer change.
func DownsampleRange(samples []float64, summary Summary, firstCol, lastCol int) error {
	if firstCol < 0 || lastCol > len(summary) || firstCol > lastCol {
		return fmt.Errorf("waveform: column range [%d, %d) outside summary of %d", firstCol, lastCol, len(summary))
	}

	if len(samples) == 0 {
		return fmt.Errorf("waveform: empty sample buffer")
	}

	downsampleRange(samples, summary, firstCol, lastCol)

	return nil
}

func downsampleParallel(samples []float64, out Summary, workers int) {
	width := len(out)
	if workers > width {
		workers = width
	}

	chunk := (width + workers - 1) / workers

	var wg sync.WaitGroup

	for lo := 0; lo < width; lo += chunk {
		hi := lo + chunk
		if hi > width {
			hi = width
		}

		wg.Add(1)

		go func(lo, hi int) {
			defer wg.Done()
			downsampleRange(samples, out, lo, hi)
		}(lo, hi)
	}

	wg.Wait()
}

func downsampleRange(samples []float64, out Summary, firstCol, lastCol int) {
	spc := len(samples) / len(out)
	if spc < 1 {
		spc = 1
	}

	for i := firstCol; i < lastCol; i++ {
		lo := i * spc
		if lo >= len(samples) {
			out[i] = Column{}
			continue
		}

		hi := lo + spc
		if hi > len(samples) {
			hi = len(samples)
		}

		min, max := samples[lo], samples[lo]
		for _, v := range samples[lo+1 : hi] {
			if v < min {
				min = v
			}

			if v > max {
				max = v
			}
		}

		out[i] = Column{Min: min, Max: max}
	}
}
