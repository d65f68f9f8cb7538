package chain

import (
	"github.com/echocore/voiceproc/dsp/dynamics"
	"github.com/echocore/voiceproc/dsp/filter"
)

// State is an opaque copy of one stage's recurrence memory: filter delay
// elements (z1, z2) or an envelope-follower level. It exists so the chain
// can snapshot and restore stages around a cancelled or failed execution.
type State struct {
	Z1, Z2 float64
	Env    float64
}

// Stage is the uniform transform contract: process one buffer in place
// given the recurrence state left behind by the previous buffer.
//
// Process is a sequential scan; implementations must never split one
// buffer across parallel workers, because sample n depends on the state
// written by sample n-1.
type Stage interface {
	Type() StageType
	Process(buf []float64)
	Reset()
	Snapshot() State
	Restore(State)
}

type highPassStage struct {
	fx *filter.OnePoleHighPass
}

func (s *highPassStage) Type() StageType       { return StageHighPass }
func (s *highPassStage) Process(buf []float64) { s.fx.ProcessBlock(buf) }
func (s *highPassStage) Reset()                { s.fx.Reset() }

func (s *highPassStage) Snapshot() State {
	x1, y1 := s.fx.State()
	return State{Z1: x1, Z2: y1}
}

func (s *highPassStage) Restore(st State) { s.fx.SetState(st.Z1, st.Z2) }

type lowPassStage struct {
	fx *filter.OnePoleLowPass
}

func (s *lowPassStage) Type() StageType       { return StageLowPass }
func (s *lowPassStage) Process(buf []float64) { s.fx.ProcessBlock(buf) }
func (s *lowPassStage) Reset()                { s.fx.Reset() }
func (s *lowPassStage) Snapshot() State       { return State{Z1: s.fx.State()} }
func (s *lowPassStage) Restore(st State)      { s.fx.SetState(st.Z1) }

type eqStage struct {
	fx *filter.Biquad
}

func (s *eqStage) Type() StageType       { return StageParametricEQ }
func (s *eqStage) Process(buf []float64) { s.fx.ProcessBlock(buf) }
func (s *eqStage) Reset()                { s.fx.Reset() }

func (s *eqStage) Snapshot() State {
	z1, z2 := s.fx.State()
	return State{Z1: z1, Z2: z2}
}

func (s *eqStage) Restore(st State) { s.fx.SetState(st.Z1, st.Z2) }

type gateStage struct {
	fx *dynamics.NoiseGate
}

func (s *gateStage) Type() StageType       { return StageNoiseGate }
func (s *gateStage) Process(buf []float64) { s.fx.ProcessInPlace(buf) }
func (s *gateStage) Reset()                { s.fx.Reset() }
func (s *gateStage) Snapshot() State       { return State{Env: s.fx.Envelope()} }
func (s *gateStage) Restore(st State)      { s.fx.SetEnvelope(st.Env) }

type compressorStage struct {
	fx *dynamics.Compressor
}

func (s *compressorStage) Type() StageType       { return StageCompressor }
func (s *compressorStage) Process(buf []float64) { s.fx.ProcessInPlace(buf) }
func (s *compressorStage) Reset()                { s.fx.Reset() }
func (s *compressorStage) Snapshot() State       { return State{Env: s.fx.Envelope()} }
func (s *compressorStage) Restore(st State)      { s.fx.SetEnvelope(st.Env) }

type deEsserStage struct {
	fx *dynamics.DeEsser
}

func (s *deEsserStage) Type() StageType       { return StageDeEsser }
func (s *deEsserStage) Process(buf []float64) { s.fx.ProcessInPlace(buf) }
func (s *deEsserStage) Reset()                { s.fx.Reset() }
func (s *deEsserStage) Snapshot() State       { return State{Env: s.fx.Envelope()} }
func (s *deEsserStage) Restore(st State)      { s.fx.SetEnvelope(st.Env) }
