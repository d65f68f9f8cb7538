package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/echocore/voiceproc/dsp/chain"
	"github.com/echocore/voiceproc/engine"
)

// ProcessCmd runs a stage chain over a WAV file.
type ProcessCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Input WAV file."`
	Output string `short:"o" required:"" help:"Output WAV file."`
	Ops    string `help:"JSON array of operations, e.g. '[{\"type\":\"high_pass\",\"parameters\":{\"frequency\":80}}]'."`
	Preset bool   `help:"Use the recording preset instead of --ops."`
}

func (c *ProcessCmd) Run(app *appContext) error {
	samples, sampleRate, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	var ops []chain.Op

	switch {
	case c.Preset && c.Ops != "":
		return fmt.Errorf("--preset and --ops are mutually exclusive")
	case c.Preset:
		for _, cfg := range chain.RecordingPreset() {
			ops = append(ops, cfg.Op())
		}
	case c.Ops != "":
		if err := json.Unmarshal([]byte(c.Ops), &ops); err != nil {
			return fmt.Errorf("parse --ops: %w", err)
		}
	}

	res, err := app.engine.Process(context.Background(), engine.Request{
		Samples:    samples,
		SampleRate: sampleRate,
		Ops:        ops,
	})
	if err != nil {
		return err
	}

	for _, timing := range res.StageTimings {
		app.log.WithFields(logrus.Fields{
			"stage":   timing.Type.String(),
			"elapsed": timing.Elapsed,
		}).Debug("stage complete")
	}

	app.log.WithFields(logrus.Fields{
		"input":   c.Input,
		"output":  c.Output,
		"samples": len(res.Samples),
		"elapsed": res.Elapsed,
	}).Info("processed")

	return writeWAV(c.Output, res.Samples, sampleRate)
}

// WaveformCmd prints a (min, max) column summary as JSON.
type WaveformCmd struct {
	Input  string  `arg:"" type:"existingfile" help:"Input WAV file."`
	Width  int     `short:"w" default:"1920" help:"Number of output columns."`
	Height float64 `default:"0" help:"Scale columns to pixel height; 0 keeps the sample domain."`
}

func (c *WaveformCmd) Run(app *appContext) error {
	samples, _, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	summary, err := app.engine.Waveform(context.Background(), samples, c.Width, c.Height)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(summary)
}

// SpectrumCmd prints an averaged magnitude spectrum in dBFS as JSON.
type SpectrumCmd struct {
	Input   string `arg:"" type:"existingfile" help:"Input WAV file."`
	FFTSize int    `default:"2048" help:"FFT frame size, a power of two."`
	Window  string `default:"hann" enum:"hann,hamming,blackman,rectangular" help:"Analysis window."`
}

func (c *SpectrumCmd) Run(app *appContext) error {
	samples, sampleRate, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	db, err := app.engine.Spectrum(context.Background(), samples, sampleRate, c.FFTSize, c.Window)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(db)
}
