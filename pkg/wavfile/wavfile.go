// Package wavfile persists sample sequences as mono 16-bit PCM WAV files.
package wavfile

import (
	"fmt"
	"os"

	"Soundmodem/pkg/modem"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	BitDepth    = 16
	NumChannels = 1
	pcmFormat   = 1
)

type Writer struct{}

// WriteSamples writes samples in [-1, 1] to filename at sampleRate.
func (Writer) WriteSamples(filename string, samples []float64, sampleRate float64) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close WAV file: %w", cerr)
		}
	}()

	enc := wav.NewEncoder(file, int(sampleRate), BitDepth, NumChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: NumChannels, SampleRate: int(sampleRate)},
		Data:           modem.Float64ToPCM16(samples),
		SourceBitDepth: BitDepth,
	}
	if err = enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}

// ReadSamples loads a file written by WriteSamples.
func ReadSamples(filename string) (samples []float64, sampleRate float64, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open WAV file: %w", err)
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", filename)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read samples: %w", err)
	}

	samples = make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / 0x7fff
	}
	return samples, float64(dec.SampleRate), nil
}
