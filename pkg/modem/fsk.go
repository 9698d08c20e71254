package modem

import (
	"iter"
	"slices"
	"sync"
)

// FSKModulator maps every bit of a packet to one of two tones.
type FSKModulator struct {
	Synthesizer

	BitDuration float64 // nominal seconds per bit, before the multiplier
	HighFreq    float64 // tone for a 1 bit
	LowFreq     float64 // tone for a 0 bit, 0 means silence

	once     sync.Once
	carriers [2]Tone
}

func (m *FSKModulator) init() {
	m.carriers[0] = m.Tone(m.BitDuration, m.LowFreq)
	m.carriers[1] = m.Tone(m.BitDuration, m.HighFreq)
}

func (m *FSKModulator) getCarrier(bit bool) Tone {
	m.once.Do(m.init)
	if bit {
		return m.carriers[1]
	}
	return m.carriers[0]
}

// SamplesPerBit is the length of every tone the modulator emits.
func (m *FSKModulator) SamplesPerBit() int {
	return m.Samples(m.BitDuration)
}

// Silence returns a zero tone of one bit duration.
func (m *FSKModulator) Silence() Tone {
	return make(Tone, m.SamplesPerBit())
}

// Modulate lazily yields one tone per bit of packet in transmission order.
func (m *FSKModulator) Modulate(packet []byte) iter.Seq[Tone] {
	return func(yield func(Tone) bool) {
		for bit := range Bits(packet) {
			if !yield(m.getCarrier(bit)) {
				return
			}
		}
	}
}

// Transmission materialises Modulate.
func (m *FSKModulator) Transmission(packet []byte) []Tone {
	return slices.Collect(m.Modulate(packet))
}

// ModulateAll modulates each packet, preserving packet order.
func (m *FSKModulator) ModulateAll(packets [][]byte) [][]Tone {
	transmissions := make([][]Tone, 0, len(packets))
	for _, p := range packets {
		transmissions = append(transmissions, m.Transmission(p))
	}
	return transmissions
}
