//go:build windows

package device

import "github.com/xsjk/go-asio"

type ASIOMono struct {
	DeviceName string
	InChannel  int
	OutChannel int
	device     asio.Device
}

func (a *ASIOMono) Start(sampleRate float64, callback func(in, out []int32)) error {
	a.device.Load(a.DeviceName)
	a.device.SetSampleRate(sampleRate)
	a.device.Open()
	a.device.Start(func(in, out [][]int32) {
		callback(in[a.InChannel], out[a.OutChannel])
	})
	return nil
}

func (a *ASIOMono) Stop() {
	a.device.Stop()
	a.device.Close()
	a.device.Unload()
}
