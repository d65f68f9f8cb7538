package engine

import (
	"context"

	"github.com/echocore/voiceproc/dsp/waveform"
)

// Accelerator is a compute backend for the data-parallel analysis paths.
// The chain stages never run on an accelerator; their recurrences are
// sequential by construction.
type Accelerator interface {
	// Name identifies the backend in logs.
	Name() string

	// Available reports whether the backend can currently serve requests.
	// An unavailable backend makes the engine fall back to the host path.
	Available() bool

	// Downsample computes (min, max) waveform columns.
	Downsample(ctx context.Context, samples []float64, width int) (waveform.Summary, error)
}
