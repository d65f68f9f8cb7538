package waveform

import "runtime"

// Option configures a Downsample call.
type Option func(*config)

type config struct {
	parallelism         int
	minColumnsPerWorker int
	height              float64
}

func applyOptions(opts []Option) config {
	cfg := config{
		parallelism:         1,
		minColumnsPerWorker: 256,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithParallelism sets the number of goroutines used to compute columns.
// Values below 1 select runtime.NumCPU(). The default is 1, a single
// sequential scan.
func WithParallelism(n int) Option {
	return func(cfg *config) {
		if n < 1 {
			n = runtime.NumCPU()
		}

		cfg.parallelism = n
	}
}

// WithHeight scales columns from the unit range to ±height/2, matching
// pixel coordinates of a rendering surface. Zero (the default) leaves the
// columns in the sample domain.
func WithHeight(h float64) Option {
	return func(cfg *config) {
		if h > 0 {
			cfg.height = h
		}
	}
}
