package transmitter

import (
	"fmt"
	"sync"
	"time"

	"Soundmodem/pkg/layers"
	"Soundmodem/pkg/modem"

	"github.com/rs/zerolog"
)

// Transmitter frames messages and sends them over the acoustic link, either
// live through an AudioSink or into a file through a FileSink. Calls are
// serialised: one sink user at a time.
type Transmitter struct {
	config      Config
	transmitter layers.Address
	modulator   *modem.FSKModulator

	audio   AudioSink
	files   FileSink
	log     *zerolog.Logger
	metrics *Metrics
	wait    func(time.Duration)

	mu sync.Mutex
}

// Plan is a validated, framed message ready to be modulated.
type Plan struct {
	Source      layers.Address
	Transmitter layers.Address
	Checksum    []byte
	Packets     [][]byte
}

func New(config Config, opts ...Option) (*Transmitter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	addr, _ := layers.ParseAddress(config.TransmitterAddress)

	t := &Transmitter{
		config:      config,
		transmitter: addr,
		modulator:   config.modulator(),
		wait:        time.Sleep,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		nop := zerolog.Nop()
		t.log = &nop
	}
	return t, nil
}

func (t *Transmitter) Config() Config { return t.config }

// Prepare validates and frames message. Nothing is synthesised, so a rejected
// message never produces a partial transmission.
func (t *Transmitter) Prepare(message []byte, source string) (*Plan, error) {
	if len(message) > layers.MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", layers.ErrLengthExceeded, len(message))
	}
	src, err := layers.ParseAddress(source)
	if err != nil {
		return nil, fmt.Errorf("source address: %w", err)
	}

	checksum := modem.Digest(message)
	t.log.Debug().Int("bytes", len(message)).Str("source", source).Msg("building packets")
	packets, err := layers.BuildAllPackets(src, t.transmitter, t.config.Redundancy, checksum, message)
	if err != nil {
		return nil, err
	}
	t.metrics.framed(len(packets))

	return &Plan{
		Source:      src,
		Transmitter: t.transmitter,
		Checksum:    checksum,
		Packets:     packets,
	}, nil
}

// Send plays every repetition of message on the audio sink, waiting the
// configured pause between repetitions. It returns once the last tone has
// been played.
func (t *Transmitter) Send(message []byte, source string) error {
	defer t.metrics.observe("send", time.Now())

	plan, err := t.Prepare(message, source)
	if err != nil {
		t.metrics.message("rejected")
		return err
	}

	if err := t.play(plan); err != nil {
		t.metrics.message("failed")
		return err
	}
	t.metrics.message("sent")
	return nil
}

func (t *Transmitter) play(plan *Plan) (err error) {
	if t.audio == nil {
		return &SinkError{Op: "open audio", Err: ErrNoSink}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stream, err := t.audio.Open(t.config.SampleRate)
	if err != nil {
		return &SinkError{Op: "open audio", Err: err}
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = &SinkError{Op: "close audio", Err: cerr}
		}
	}()

	total := len(plan.Packets)
	return t.walk(plan,
		func(tone modem.Tone) error {
			if err := stream.Play(tone); err != nil {
				return &SinkError{Op: "play", Err: err}
			}
			return nil
		},
		func(i int) error {
			if err := stream.Drain(); err != nil {
				return &SinkError{Op: "play", Err: err}
			}
			t.log.Info().Int("transmission", i+1).Int("of", total).Msg("transmission done")
			if i < total-1 {
				t.wait(t.config.Pause)
			}
			return nil
		},
	)
}

// Save assembles every repetition of message, separated by silence, and
// writes the result to filename through the file sink.
func (t *Transmitter) Save(message []byte, source, filename string) error {
	defer t.metrics.observe("save", time.Now())

	plan, err := t.Prepare(message, source)
	if err != nil {
		t.metrics.message("rejected")
		return err
	}
	if t.files == nil {
		t.metrics.message("failed")
		return &SinkError{Op: "write " + filename, Err: ErrNoSink}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.log.Debug().Int("samples", t.SampleCount(plan)).Msg("building data for wave file")
	samples, err := t.Assemble(plan)
	if err != nil {
		t.metrics.message("failed")
		return err
	}

	if err := t.files.WriteSamples(filename, samples, t.config.SampleRate); err != nil {
		t.metrics.message("failed")
		return &SinkError{Op: "write " + filename, Err: err}
	}
	t.log.Info().Str("file", filename).Int("samples", len(samples)).Msg("saved file")
	t.metrics.message("saved")
	return nil
}
