package transmitter

import (
	"errors"
	"fmt"
)

var (
	ErrSink   = errors.New("sink failure")
	ErrNoSink = errors.New("no sink configured")
)

// SinkError reports that the audio device or the file sink failed.
type SinkError struct {
	Op  string
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

func (e *SinkError) Is(target error) bool { return target == ErrSink }
