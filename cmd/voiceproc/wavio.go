package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// readWAV decodes a WAV file to mono float64 samples in [-1, 1].
// Multi-channel files are mixed down by averaging the channels.
func readWAV(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, fmt.Errorf("%s: no channels", path)
	}

	scale := 1.0 / float64(int(1)<<(dec.BitDepth-1))
	frames := len(buf.Data) / channels
	out := make([]float64, frames)

	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) * scale
		}

		out[i] = sum / float64(channels)
	}

	return out, float64(buf.Format.SampleRate), nil
}

// writeWAV encodes mono float64 samples as 16-bit PCM.
func writeWAV(path string, samples []float64, sampleRate float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	const bitDepth = 16

	enc := wav.NewEncoder(f, int(sampleRate), bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(sampleRate)},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(samples)),
	}

	for i, v := range samples {
		buf.Data[i] = int(math.Round(v * 32767))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}

	return nil
}
