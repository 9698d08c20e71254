package modem

import "math"

// DefaultDurationMultiplier stretches a nominal tone duration so that a
// duration of 1 lasts roughly one second.
const DefaultDurationMultiplier = 3.0

// Tone is one bit's worth of audio at a single frequency. Tones handed out by
// a Modulator may be shared and must be treated as read-only.
type Tone []float64

type CarrierConfig struct {
	Amplitude  float64
	Freq       float64
	Phase      float64
	SampleRate float64
	Size       int
}

func (p CarrierConfig) New() []float64 {
	signal := make([]float64, p.Size)
	if p.Freq == 0 {
		return signal
	}
	for i := 0; i < p.Size; i++ {
		t := float64(i) / p.SampleRate
		signal[i] = p.Amplitude * math.Sin(2*math.Pi*p.Freq*t+p.Phase)
	}
	return signal
}

// Synthesizer generates constant-frequency tones at a fixed sample rate.
type Synthesizer struct {
	SampleRate float64
	Multiplier float64 // applied to every duration, see DefaultDurationMultiplier
}

// Samples returns the number of samples a tone of the given nominal duration spans.
func (s Synthesizer) Samples(duration float64) int {
	return int(math.Round(s.SampleRate * duration * s.multiplier()))
}

// Tone returns a unit-amplitude sine at freq. A frequency of 0 yields silence.
func (s Synthesizer) Tone(duration, freq float64) Tone {
	return CarrierConfig{
		Amplitude:  1,
		Freq:       freq,
		SampleRate: s.SampleRate,
		Size:       s.Samples(duration),
	}.New()
}

func (s Synthesizer) multiplier() float64 {
	if s.Multiplier == 0 {
		return DefaultDurationMultiplier
	}
	return s.Multiplier
}
