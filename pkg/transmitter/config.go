package transmitter

import (
	"fmt"
	"math"
	"time"

	"Soundmodem/pkg/layers"
	"Soundmodem/pkg/modem"
)

// Config holds the tunables of the acoustic link. It is fixed for the life of
// a Transmitter.
type Config struct {
	BitDuration        float64 // nominal seconds per bit, before DurationMultiplier
	DurationMultiplier float64
	HighFreq           float64 // Hz, tone for a 1 bit
	LowFreq            float64 // Hz, tone for a 0 bit; pauses are always silent
	SampleRate         float64 // Hz
	Pause              time.Duration
	Redundancy         int
	TransmitterAddress string
}

func DefaultConfig() Config {
	return Config{
		BitDuration:        0.05,
		DurationMultiplier: modem.DefaultDurationMultiplier,
		HighFreq:           5000,
		LowFreq:            0,
		SampleRate:         44100,
		Pause:              5 * time.Second,
		Redundancy:         2,
		TransmitterAddress: "192.168.0.1",
	}
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	case c.BitDuration <= 0:
		return fmt.Errorf("bit duration must be positive, got %v", c.BitDuration)
	case c.DurationMultiplier <= 0:
		return fmt.Errorf("duration multiplier must be positive, got %v", c.DurationMultiplier)
	case c.HighFreq < 0 || c.LowFreq < 0:
		return fmt.Errorf("tone frequencies must not be negative, got %v and %v", c.HighFreq, c.LowFreq)
	case c.Pause < 0:
		return fmt.Errorf("pause must not be negative, got %v", c.Pause)
	case c.Redundancy < 1:
		return fmt.Errorf("%w: %d", layers.ErrRedundancy, c.Redundancy)
	case c.Redundancy > layers.MaxSequence:
		return fmt.Errorf("%w: redundancy %d", layers.ErrSequenceOverflow, c.Redundancy)
	}
	if _, err := layers.ParseAddress(c.TransmitterAddress); err != nil {
		return fmt.Errorf("transmitter address: %w", err)
	}
	return nil
}

// PauseTones is the number of silent bit-length tones that stand in for the
// pause when transmissions are assembled into one sample sequence.
func (c Config) PauseTones() int {
	return int(math.Ceil(c.Pause.Seconds() / c.BitDuration))
}

func (c Config) modulator() *modem.FSKModulator {
	return &modem.FSKModulator{
		Synthesizer: modem.Synthesizer{
			SampleRate: c.SampleRate,
			Multiplier: c.DurationMultiplier,
		},
		BitDuration: c.BitDuration,
		HighFreq:    c.HighFreq,
		LowFreq:     c.LowFreq,
	}
}
