package device

import (
	"sync"
	"time"
)

// Loopback feeds every output buffer back as the next input buffer and keeps
// a copy of everything written to it.
type Loopback struct {
	Realtime bool // pace callbacks at the sample rate instead of running flat out

	mu       sync.Mutex
	recorded []int32
	done     chan struct{}
	stopped  chan struct{}
}

func (d *Loopback) Start(sampleRate float64, callback func(in, out []int32)) error {
	d.done = make(chan struct{})
	d.stopped = make(chan struct{})

	go func() {
		defer close(d.stopped)

		var buf = make([][]int32, 2)
		buf[0] = make([]int32, BufferSize)
		buf[1] = make([]int32, BufferSize)

		swap := true
		update := func() {
			in, out := buf[0], buf[1]
			if !swap {
				in, out = out, in
			}
			clear(out)
			callback(in, out)
			d.record(out)
			swap = !swap
		}

		if !d.Realtime || sampleRate == 0 {
			for {
				select {
				case <-d.done:
					return
				default:
					update()
				}
			}
		}

		ticker := time.NewTicker(time.Duration(float64(time.Second) * BufferSize / sampleRate))
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				update()
			}
		}
	}()
	return nil
}

func (d *Loopback) Stop() {
	close(d.done)
	<-d.stopped
}

func (d *Loopback) record(out []int32) {
	d.mu.Lock()
	d.recorded = append(d.recorded, out...)
	d.mu.Unlock()
}

// Recorded returns a copy of every sample written so far.
func (d *Loopback) Recorded() []int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int32(nil), d.recorded...)
}
