//go:build portaudio

package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudio plays through a PortAudio output device. A negative DeviceIndex
// selects the default device.
type PortAudio struct {
	DeviceIndex int

	stream *portaudio.Stream
}

func (p *PortAudio) Start(sampleRate float64, callback func(in, out []int32)) (err error) {
	if err = portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	defer func() {
		if err != nil {
			portaudio.Terminate()
		}
	}()

	process := func(out []int32) {
		callback(nil, out)
	}

	if p.DeviceIndex < 0 {
		p.stream, err = portaudio.OpenDefaultStream(0, 1, sampleRate, BufferSize, process)
	} else {
		var devices []*portaudio.DeviceInfo
		devices, err = portaudio.Devices()
		if err != nil {
			return fmt.Errorf("failed to get device list: %w", err)
		}
		if p.DeviceIndex >= len(devices) {
			return fmt.Errorf("invalid device index %d (max: %d)", p.DeviceIndex, len(devices)-1)
		}
		device := devices[p.DeviceIndex]
		p.stream, err = portaudio.OpenStream(portaudio.StreamParameters{
			Output: portaudio.StreamDeviceParameters{
				Device:   device,
				Channels: 1,
				Latency:  device.DefaultLowOutputLatency,
			},
			SampleRate:      sampleRate,
			FramesPerBuffer: BufferSize,
		}, process)
	}
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err = p.stream.Start(); err != nil {
		p.stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	return nil
}

func (p *PortAudio) Stop() {
	p.stream.Stop()
	p.stream.Close()
	portaudio.Terminate()
}
