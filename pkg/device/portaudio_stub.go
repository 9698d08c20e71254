//go:build !portaudio

package device

// PortAudio requires building with -tags portaudio.
type PortAudio struct {
	DeviceIndex int
}

func (p *PortAudio) Start(sampleRate float64, callback func(in, out []int32)) error {
	return ErrUnsupported
}

func (p *PortAudio) Stop() {}
