package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/echocore/voiceproc/dsp/chain"
	"github.com/echocore/voiceproc/internal/testutil"
)

func TestProcessValidatesBuffer(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		req  Request
	}{
		{"empty samples", Request{Samples: nil, SampleRate: 16000}},
		{"rate too low", Request{Samples: []float64{0}, SampleRate: 4000}},
		{"rate too high", Request{Samples: []float64{0}, SampleRate: 400000}},
		{"nan sample", Request{Samples: []float64{0, math.NaN()}, SampleRate: 16000}},
		{"inf sample", Request{Samples: []float64{math.Inf(1)}, SampleRate: 16000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Process(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidBuffer)
		})
	}
}

func TestProcessRejectsUnknownOp(t *testing.T) {
	e := New()

	_, err := e.Process(context.Background(), Request{
		Samples:    []float64{0.1, 0.2},
		SampleRate: 16000,
		Ops:        []chain.Op{{Type: "reverb"}},
	})
	require.ErrorIs(t, err, chain.ErrUnknownStage)
}

func TestProcessValidatesOpsBeforeExecuting(t *testing.T) {
	e := New()

	in := []float64{0.1, 0.2, 0.3}
	ops := []chain.Op{
		{Type: "high_pass", Params: chain.Params{"frequency": 80}},
		{Type: "compressor", Params: chain.Params{"ratio": 0}},
	}

	_, err := e.Process(context.Background(), Request{Samples: in, SampleRate: 16000, Ops: ops})
	require.ErrorIs(t, err, chain.ErrInvalidParameter)

	require.Equal(t, []float64{0.1, 0.2, 0.3}, in, "failed request must not touch input")
}

// TestProcessHighPassScenario runs the boundary-level version of the DC
// removal scenario: one high_pass op over a constant buffer.
func TestProcessHighPassScenario(t *testing.T) {
	e := New()

	in := testutil.DC(0.5, 16000)

	res, err := e.Process(context.Background(), Request{
		Samples:    in,
		SampleRate: 16000,
		Ops:        []chain.Op{{Type: "high_pass", Params: chain.Params{"frequency": 80}}},
	})
	require.NoError(t, err)
	require.Len(t, res.Samples, len(in))
	require.Len(t, res.StageTimings, 1)
	require.Equal(t, chain.StageHighPass, res.StageTimings[0].Type)

	require.Less(t, testutil.RMS(res.Samples[len(res.Samples)-1600:]), 0.01)

	// Input stays untouched.
	require.Equal(t, 0.5, in[0])
}

func TestProcessClampsInputCopy(t *testing.T) {
	e := New()

	in := []float64{1.5, -2.0, 0.25}

	res, err := e.Process(context.Background(), Request{Samples: in, SampleRate: 16000})
	require.NoError(t, err)

	require.Equal(t, []float64{1, -1, 0.25}, res.Samples)
	require.Equal(t, 1.5, in[0], "input must not be clamped in place")
}

func TestProcessCancelled(t *testing.T) {
	e := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Process(ctx, Request{
		Samples:    testutil.DeterministicNoise(1, 0.5, 1024),
		SampleRate: 16000,
		Ops:        []chain.Op{{Type: "high_pass"}},
	})
	require.ErrorIs(t, err, ErrCancelled)
}

func TestSessionMatchesOneShot(t *testing.T) {
	e := New()

	ops := []chain.Op{
		{Type: "high_pass", Params: chain.Params{"frequency": 80}},
		{Type: "compressor", Params: chain.Params{"threshold": -20, "ratio": 4}},
	}

	in := testutil.DeterministicSine(440, 16000, 0.4, 16384)

	whole, err := e.Process(context.Background(), Request{Samples: in, SampleRate: 16000, Ops: ops})
	require.NoError(t, err)

	s, err := e.NewSession(16000, ops)
	require.NoError(t, err)

	defer s.Close()

	var streamed []float64

	const blockSize = 1024
	for off := 0; off < len(in); off += blockSize {
		end := off + blockSize
		if end > len(in) {
			end = len(in)
		}

		out, err := s.Process(context.Background(), in[off:end])
		require.NoError(t, err)

		streamed = append(streamed, out...)
	}

	testutil.RequireSliceNearlyEqual(t, streamed, whole.Samples, 1e-12)
}

func TestSessionValidation(t *testing.T) {
	e := New()

	_, err := e.NewSession(1000, nil)
	require.ErrorIs(t, err, ErrInvalidBuffer)

	_, err = e.NewSession(16000, []chain.Op{{Type: "nope"}})
	require.ErrorIs(t, err, chain.ErrUnknownStage)
}

func TestSessionClose(t *testing.T) {
	e := New()

	s, err := e.NewSession(16000, nil)
	require.NoError(t, err)
	require.NotEqual(t, s.ID().String(), "")

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Close is idempotent")

	_, err = s.Process(context.Background(), []float64{0.1})
	require.ErrorIs(t, err, ErrInvalidBuffer)
}

func TestSessionReset(t *testing.T) {
	e := New()

	ops := []chain.Op{{Type: "high_pass", Params: chain.Params{"frequency": 80}}}

	s, err := e.NewSession(16000, ops)
	require.NoError(t, err)

	defer s.Close()

	in := testutil.DeterministicSine(440, 16000, 0.4, 2048)

	first, err := s.Process(context.Background(), in)
	require.NoError(t, err)

	s.Reset()

	second, err := s.Process(context.Background(), in)
	require.NoError(t, err)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}
