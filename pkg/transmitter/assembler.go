package transmitter

import (
	"Soundmodem/pkg/modem"
)

// walk is the single traversal behind playback and file assembly: every tone
// of every packet in order, then pause after each packet.
func (t *Transmitter) walk(plan *Plan, emit func(modem.Tone) error, pause func(i int) error) error {
	for i, packet := range plan.Packets {
		for tone := range t.modulator.Modulate(packet) {
			if err := emit(tone); err != nil {
				return err
			}
			t.metrics.tone()
		}
		t.metrics.transmission()
		if err := pause(i); err != nil {
			return err
		}
	}
	return nil
}

// Assemble concatenates every transmission of plan, each followed by
// PauseTones silent tones, into one sample sequence.
func (t *Transmitter) Assemble(plan *Plan) ([]float64, error) {
	samples := make([]float64, 0, t.SampleCount(plan))
	silence := t.modulator.Silence()
	pauseTones := t.config.PauseTones()

	err := t.walk(plan,
		func(tone modem.Tone) error {
			samples = append(samples, tone...)
			return nil
		},
		func(int) error {
			for range pauseTones {
				samples = append(samples, silence...)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// SampleCount is the exact length of Assemble(plan).
func (t *Transmitter) SampleCount(plan *Plan) int {
	tones := 0
	for _, packet := range plan.Packets {
		tones += 8*len(packet) + t.config.PauseTones()
	}
	return tones * t.modulator.SamplesPerBit()
}
