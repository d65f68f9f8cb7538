// Command voiceproc applies voice post-processing chains to WAV files
// and computes waveform and spectrum summaries for display.
package main

import (
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/echocore/voiceproc/engine"
)

var version = "dev"

// CLI is the top-level command tree.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable debug logging."`
	Version kong.VersionFlag `help:"Show version information."`

	Process  ProcessCmd  `cmd:"" help:"Run a processing chain over a WAV file."`
	Waveform WaveformCmd `cmd:"" help:"Compute a (min, max) waveform summary of a WAV file."`
	Spectrum SpectrumCmd `cmd:"" help:"Compute an averaged magnitude spectrum of a WAV file."`
}

type appContext struct {
	engine *engine.Engine
	log    *logrus.Logger
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("voiceproc"),
		kong.Description("Voice recording post-processing engine"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	log := logrus.New()
	if cli.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	app := &appContext{
		engine: engine.New(engine.WithLogger(log)),
		log:    log,
	}

	ctx.FatalIfErrorf(ctx.Run(app))
}
