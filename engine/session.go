package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/echocore/voiceproc/dsp/chain"
	"github.com/echocore/voiceproc/dsp/core"
)

// Session processes a stream of short buffers through one chain whose
// stage state carries across calls, so chunked input sounds identical to
// one-shot processing of the concatenated stream.
//
// A session serializes its own Process calls; distinct sessions never
// share state.
type Session struct {
	id     uuid.UUID
	engine *Engine

	mu     sync.Mutex
	chain  *chain.Chain
	closed bool
}

// NewSession builds a streaming session from boundary operation
// descriptors. The operations are validated up front exactly like a
// batch request.
func (e *Engine) NewSession(sampleRate float64, ops []chain.Op) (*Session, error) {
	if sampleRate < MinSampleRate || sampleRate > MaxSampleRate {
		return nil, fmt.Errorf("%w: sample rate %g outside [%g, %g]",
			ErrInvalidBuffer, sampleRate, MinSampleRate, MaxSampleRate)
	}

	configs, err := chain.ParseOps(ops)
	if err != nil {
		return nil, err
	}

	c, err := chain.NewWithRegistry(e.registry, sampleRate, configs)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:     uuid.New(),
		engine: e,
		chain:  c,
	}

	e.log.WithFields(logrus.Fields{
		"session":     s.id,
		"sample_rate": sampleRate,
		"stages":      len(configs),
	}).Debug("session opened")

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Process runs the session chain over a clamped copy of buf and returns
// the processed samples. On error the chain state is unchanged, so the
// caller may retry or continue with the next buffer.
func (s *Session) Process(ctx context.Context, buf []float64) ([]float64, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidBuffer)
	}

	if !core.AllFinite(buf) {
		return nil, fmt.Errorf("%w: non-finite input sample", ErrInvalidBuffer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("%w: session closed", ErrInvalidBuffer)
	}

	out := core.Clone(buf)
	core.ClampUnitInPlace(out)

	if _, err := s.chain.Process(ctx, out); err != nil {
		return nil, mapChainError(err)
	}

	return out, nil
}

// Reset clears all stage state, as when the input stream restarts.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.chain.Reset()
	}
}

// Close discards the session state. Further Process calls fail.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	s.chain = nil

	s.engine.log.WithField("session", s.id).Debug("session closed")

	return nil
}
