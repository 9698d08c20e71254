package transmitter

import (
	"time"

	"Soundmodem/pkg/device"

	"github.com/rs/zerolog"
)

// AudioSink hands out a playback stream for the duration of one Send.
type AudioSink interface {
	Open(sampleRate float64) (device.Stream, error)
}

// FileSink persists a complete sample sequence.
type FileSink interface {
	WriteSamples(filename string, samples []float64, sampleRate float64) error
}

type Option func(*Transmitter)

func WithAudioSink(s AudioSink) Option {
	return func(t *Transmitter) { t.audio = s }
}

func WithFileSink(s FileSink) Option {
	return func(t *Transmitter) { t.files = s }
}

func WithLogger(l *zerolog.Logger) Option {
	return func(t *Transmitter) { t.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(t *Transmitter) { t.metrics = m }
}

// WithWait replaces time.Sleep for the pause between played transmissions.
func WithWait(wait func(time.Duration)) Option {
	return func(t *Transmitter) { t.wait = wait }
}
