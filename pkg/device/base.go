package device

import "errors"

// Device drives a callback with one input and one output buffer of samples
// (fixed-point, 31 fractional bits) until stopped.
type Device interface {
	Start(sampleRate float64, callback func(in, out []int32)) error
	Stop()
}

// Stream plays real-valued sample buffers back to back. Play queues samples
// and may return before they are heard; Drain waits for the last buffer to
// finish.
type Stream interface {
	Play(samples []float64) error
	Drain() error
	Close() error
}

const BufferSize = 512

var (
	ErrClosed      = errors.New("stream closed")
	ErrUnsupported = errors.New("audio driver not compiled in")
)
