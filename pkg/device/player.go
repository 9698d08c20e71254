package device

import (
	"sync"

	"Soundmodem/pkg/modem"
)

// QueueAhead is how many samples a Player keeps queued in front of the
// device before Play blocks.
const QueueAhead = 2 * BufferSize

// Output opens a Player on a Device for the duration of one transmission.
type Output struct {
	Device    Device
	Amplitude float64 // 0 means full scale
}

func (o *Output) Open(sampleRate float64) (Stream, error) {
	amplitude := o.Amplitude
	if amplitude == 0 {
		amplitude = 1
	}
	p := &Player{
		device:    o.Device,
		amplitude: amplitude,
		space:     make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
	if err := o.Device.Start(sampleRate, p.update); err != nil {
		return nil, err
	}
	return p, nil
}

type chunk struct {
	samples []int32
	done    chan struct{}
}

// Player hands buffers to the device callback in order. Samples are queued
// ahead of the device, so tones shorter than a device buffer still play back
// to back.
type Player struct {
	device    Device
	amplitude float64

	mu      sync.Mutex
	pending []*chunk
	queued  int  // samples in pending not yet written
	primed  bool // the callback may consume pending; cleared once it runs dry
	last    *chunk

	space     chan struct{} // signalled whenever the callback consumes samples
	closeOnce sync.Once
	closed    chan struct{}
}

// Play queues samples behind everything played before. It blocks while
// QueueAhead samples or more are already waiting for the device.
func (p *Player) Play(samples []float64) error {
	c := &chunk{
		samples: modem.Float64ToInt32(samples, p.amplitude),
		done:    make(chan struct{}),
	}
	if len(c.samples) == 0 {
		return nil
	}

	for {
		select {
		case <-p.closed:
			return ErrClosed
		default:
		}

		p.mu.Lock()
		if p.queued < QueueAhead {
			p.pending = append(p.pending, c)
			p.queued += len(c.samples)
			p.last = c
			if p.queued >= BufferSize {
				p.primed = true
			}
			p.mu.Unlock()
			return nil
		}
		p.mu.Unlock()

		select {
		case <-p.space:
		case <-p.closed:
			return ErrClosed
		}
	}
}

// Drain releases whatever is queued to the device and waits until the last
// buffer has been played.
func (p *Player) Drain() error {
	p.mu.Lock()
	last := p.last
	if len(p.pending) > 0 {
		p.primed = true
	}
	p.mu.Unlock()

	if last == nil {
		return nil
	}
	select {
	case <-last.done:
		return nil
	case <-p.closed:
		return ErrClosed
	}
}

// Close stops the device. Buffers still queued are dropped.
func (p *Player) Close() error {
	p.closeOnce.Do(func() {
		close(p.closed)
		p.device.Stop()
	})
	return nil
}

// consume queued chunks into out, padding with silence
func (p *Player) update(in, out []int32) {
	p.mu.Lock()
	i := 0
	for p.primed && i < len(out) && len(p.pending) > 0 {
		c := p.pending[0]
		n := copy(out[i:], c.samples)
		c.samples = c.samples[n:]
		p.queued -= n
		i += n

		if len(c.samples) == 0 {
			close(c.done)
			p.pending[0] = nil
			p.pending = p.pending[1:]
		}
	}
	if len(p.pending) == 0 {
		p.primed = false
	}
	p.mu.Unlock()

	clear(out[i:])

	select {
	case p.space <- struct{}{}:
	default:
	}
}
