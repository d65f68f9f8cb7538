package chain

import (
	"fmt"
	"math"
)

// StageType identifies one member of the closed stage variant.
type StageType int

const (
	// StageHighPass is a one-pole RC high-pass filter.
	StageHighPass StageType = iota
	// StageLowPass is a one-pole RC low-pass filter.
	StageLowPass
	// StageNoiseGate is a soft-fade noise gate.
	StageNoiseGate
	// StageCompressor is an envelope-follower compressor.
	StageCompressor
	// StageDeEsser is a broadband sibilance reducer.
	StageDeEsser
	// StageParametricEQ is an RBJ peaking-EQ biquad band.
	StageParametricEQ
)

// Operation type names accepted at the API boundary.
const (
	OpHighPass   = "high_pass"
	OpLowPass    = "low_pass"
	OpNoiseGate  = "noise_gate"
	OpCompressor = "compressor"
	OpDeEsser    = "de_ess"
	OpEQ         = "eq"
)

// String returns the boundary operation name for the stage type.
func (t StageType) String() string {
	switch t {
	case StageHighPass:
		return OpHighPass
	case StageLowPass:
		return OpLowPass
	case StageNoiseGate:
		return OpNoiseGate
	case StageCompressor:
		return OpCompressor
	case StageDeEsser:
		return OpDeEsser
	case StageParametricEQ:
		return OpEQ
	default:
		return fmt.Sprintf("stage(%d)", int(t))
	}
}

// Config is the tagged variant describing one configured stage. Only the
// fields relevant to Type are consulted; the rest are ignored.
type Config struct {
	Type StageType

	// Filter / EQ parameters.
	FrequencyHz float64
	GainDB      float64
	Q           float64

	// Dynamics parameters.
	ThresholdDB float64
	Ratio       float64
	AttackMs    float64
	ReleaseMs   float64
	MakeupDB    float64
	BandwidthHz float64
}

// HighPass returns a high-pass stage config at the given cutoff.
func HighPass(cutoffHz float64) Config {
	return Config{Type: StageHighPass, FrequencyHz: cutoffHz}
}

// LowPass returns a low-pass stage config at the given cutoff.
func LowPass(cutoffHz float64) Config {
	return Config{Type: StageLowPass, FrequencyHz: cutoffHz}
}

// Gate returns a noise-gate stage config.
func Gate(thresholdDB, attackMs, releaseMs float64) Config {
	return Config{
		Type:        StageNoiseGate,
		ThresholdDB: thresholdDB,
		AttackMs:    attackMs,
		ReleaseMs:   releaseMs,
	}
}

// Comp returns a compressor stage config.
func Comp(thresholdDB, ratio, attackMs, releaseMs, makeupDB float64) Config {
	return Config{
		Type:        StageCompressor,
		ThresholdDB: thresholdDB,
		Ratio:       ratio,
		AttackMs:    attackMs,
		ReleaseMs:   releaseMs,
		MakeupDB:    makeupDB,
	}
}

// DeEss returns a de-esser stage config.
func DeEss(thresholdDB, ratio, freqHz, bandwidthHz float64) Config {
	return Config{
		Type:        StageDeEsser,
		ThresholdDB: thresholdDB,
		Ratio:       ratio,
		FrequencyHz: freqHz,
		BandwidthHz: bandwidthHz,
	}
}

// EQBand returns a peaking-EQ stage config.
func EQBand(freqHz, gainDB, q float64) Config {
	return Config{
		Type:        StageParametricEQ,
		FrequencyHz: freqHz,
		GainDB:      gainDB,
		Q:           q,
	}
}

// Params holds the loosely typed parameter map of one boundary operation.
type Params map[string]float64

// GetNum safely extracts a parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p == nil {
		return def
	}

	v, ok := p[key]
	if !ok || math.IsNaN(v) {
		return def
	}

	return v
}

// Op is the dynamic operation form supplied by external callers: a type
// name plus a parameter map.
type Op struct {
	Type   string `json:"type"`
	Params Params `json:"parameters,omitempty"`
}

// ParseOp converts a boundary operation into a typed Config. Unknown type
// names fail with [ErrUnknownStage]; range validation happens later, at
// chain construction.
func ParseOp(op Op) (Config, error) {
	switch op.Type {
	case OpHighPass:
		return HighPass(op.Params.GetNum("frequency", 80)), nil
	case OpLowPass:
		return LowPass(op.Params.GetNum("frequency", 8000)), nil
	case OpNoiseGate:
		return Gate(
			op.Params.GetNum("threshold", -40),
			op.Params.GetNum("attack", 5),
			op.Params.GetNum("release", 100),
		), nil
	case OpCompressor:
		return Comp(
			op.Params.GetNum("threshold", -20),
			op.Params.GetNum("ratio", 4),
			op.Params.GetNum("attack", 10),
			op.Params.GetNum("release", 100),
			op.Params.GetNum("makeup_gain", 0),
		), nil
	case OpDeEsser:
		return DeEss(
			op.Params.GetNum("threshold", -20),
			op.Params.GetNum("ratio", 4),
			op.Params.GetNum("frequency", 6000),
			op.Params.GetNum("bandwidth", 4000),
		), nil
	case OpEQ:
		return EQBand(
			op.Params.GetNum("frequency", 1000),
			op.Params.GetNum("gain", 0),
			op.Params.GetNum("q", 1),
		), nil
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownStage, op.Type)
	}
}

// Op converts the typed config back into its boundary form, the inverse
// of [ParseOp].
func (c Config) Op() Op {
	switch c.Type {
	case StageHighPass, StageLowPass:
		return Op{Type: c.Type.String(), Params: Params{"frequency": c.FrequencyHz}}
	case StageNoiseGate:
		return Op{Type: OpNoiseGate, Params: Params{
			"threshold": c.ThresholdDB,
			"attack":    c.AttackMs,
			"release":   c.ReleaseMs,
		}}
	case StageCompressor:
		return Op{Type: OpCompressor, Params: Params{
			"threshold":   c.ThresholdDB,
			"ratio":       c.Ratio,
			"attack":      c.AttackMs,
			"release":     c.ReleaseMs,
			"makeup_gain": c.MakeupDB,
		}}
	case StageDeEsser:
		return Op{Type: OpDeEsser, Params: Params{
			"threshold": c.ThresholdDB,
			"ratio":     c.Ratio,
			"frequency": c.FrequencyHz,
			"bandwidth": c.BandwidthHz,
		}}
	case StageParametricEQ:
		return Op{Type: OpEQ, Params: Params{
			"frequency": c.FrequencyHz,
			"gain":      c.GainDB,
			"q":         c.Q,
		}}
	default:
		return Op{Type: c.Type.String()}
	}
}

// ParseOps converts a boundary operation list into an ordered Config slice.
func ParseOps(ops []Op) ([]Config, error) {
	configs := make([]Config, 0, len(ops))

	for i, op := range ops {
		cfg, err := ParseOp(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}

		configs = append(configs, cfg)
	}

	return configs, nil
}
