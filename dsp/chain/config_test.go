package chain

import (
	"errors"
	"math"
	"testing"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		want    StageType
		wantErr bool
	}{
		{"high pass", Op{Type: "high_pass", Params: Params{"frequency": 120}}, StageHighPass, false},
		{"low pass", Op{Type: "low_pass", Params: Params{"frequency": 6000}}, StageLowPass, false},
		{"noise gate", Op{Type: "noise_gate", Params: Params{"threshold": -35}}, StageNoiseGate, false},
		{"compressor", Op{Type: "compressor", Params: Params{"ratio": 8}}, StageCompressor, false},
		{"de-esser", Op{Type: "de_ess", Params: nil}, StageDeEsser, false},
		{"eq", Op{Type: "eq", Params: Params{"gain": 6}}, StageParametricEQ, false},
		{"unknown", Op{Type: "reverb"}, 0, true},
		{"empty", Op{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseOp(tt.op)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOp() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStage) {
					t.Errorf("error = %v, want ErrUnknownStage", err)
				}

				return
			}

			if cfg.Type != tt.want {
				t.Errorf("type = %v, want %v", cfg.Type, tt.want)
			}
		})
	}
}

func TestParseOpAppliesValues(t *testing.T) {
	cfg, err := ParseOp(Op{Type: "compressor", Params: Params{
		"threshold":   -18,
		"ratio":       6,
		"attack":      2,
		"release":     80,
		"makeup_gain": 3,
	}})
	if err != nil {
		t.Fatalf("ParseOp() error = %v", err)
	}

	if cfg.ThresholdDB != -18 || cfg.Ratio != 6 || cfg.AttackMs != 2 ||
		cfg.ReleaseMs != 80 || cfg.MakeupDB != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseOpDefaults(t *testing.T) {
	cfg, err := ParseOp(Op{Type: "eq"})
	if err != nil {
		t.Fatalf("ParseOp() error = %v", err)
	}

	if cfg.FrequencyHz != 1000 || cfg.GainDB != 0 || cfg.Q != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestParseOpsReportsPosition(t *testing.T) {
	_, err := ParseOps([]Op{
		{Type: "high_pass"},
		{Type: "bogus"},
	})
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("error = %v, want ErrUnknownStage", err)
	}
}

func TestGetNum(t *testing.T) {
	p := Params{"a": 1.5, "nan": math.NaN()}

	if got := p.GetNum("a", 0); got != 1.5 {
		t.Errorf("GetNum existing = %v", got)
	}

	if got := p.GetNum("missing", 7); got != 7 {
		t.Errorf("GetNum missing = %v", got)
	}

	if got := p.GetNum("nan", 7); got != 7 {
		t.Errorf("GetNum NaN = %v", got)
	}

	var nilParams Params
	if got := nilParams.GetNum("x", 3); got != 3 {
		t.Errorf("GetNum on nil = %v", got)
	}
}

func TestConfigOpRoundTrip(t *testing.T) {
	for _, cfg := range RecordingPreset() {
		got, err := ParseOp(cfg.Op())
		if err != nil {
			t.Fatalf("ParseOp(%s.Op()) error = %v", cfg.Type, err)
		}

		if got != cfg {
			t.Errorf("round trip of %s: got %+v, want %+v", cfg.Type, got, cfg)
		}
	}
}

func TestStageTypeString(t *testing.T) {
	tests := []struct {
		t    StageType
		want string
	}{
		{StageHighPass, "high_pass"},
		{StageLowPass, "low_pass"},
		{StageNoiseGate, "noise_gate"},
		{StageCompressor, "compressor"},
		{StageDeEsser, "de_ess"},
		{StageParametricEQ, "eq"},
		{StageType(42), "stage(42)"},
	}

	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.t), got, tt.want)
		}
	}
}
