//go:build !windows

package device

// ASIOMono is only available on Windows.
type ASIOMono struct {
	DeviceName string
	InChannel  int
	OutChannel int
}

func (a *ASIOMono) Start(sampleRate float64, callback func(in, out []int32)) error {
	return ErrUnsupported
}

func (a *ASIOMono) Stop() {}
