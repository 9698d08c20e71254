package iface

import (
	"fmt"
	"sync"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/rs/zerolog"
	"github.com/songgao/water"
)

const FRAME_SIZE = 1600

// TUN reads IP packets from a TUN device and turns every IPv4 packet into a
// message from its source address.
type TUN struct {
	Log *zerolog.Logger

	iface     *water.Interface
	frame     []byte
	messages  chan Message
	done      chan struct{}
	closeOnce sync.Once
}

func (t *TUN) Open() (err error) {
	if t.iface, err = water.New(water.Config{DeviceType: water.TUN}); err != nil {
		return fmt.Errorf("failed to create TUN device: %w", err)
	}
	logger(t.Log).Info().Str("name", t.iface.Name()).Msg("TUN device opened")

	t.messages = make(chan Message)
	t.done = make(chan struct{})
	t.frame = make([]byte, FRAME_SIZE)
	go t.serve()
	return nil
}

func (t *TUN) serve() {
	log := logger(t.Log)
	defer close(t.messages)

	for {
		n, err := t.iface.Read(t.frame)
		if err != nil {
			return
		}
		msg, err := DecodeIPPacket(t.frame[:n])
		if err != nil {
			log.Debug().Err(err).Msg("skipping packet")
			continue
		}
		select {
		case t.messages <- msg:
		case <-t.done:
			return
		}
	}
}

func (t *TUN) Messages() <-chan Message {
	return t.messages
}

func (t *TUN) Close() (err error) {
	t.closeOnce.Do(func() {
		close(t.done)
		err = t.iface.Close()
	})
	return
}

// DecodeIPPacket extracts the source address and payload of an IPv4 packet.
func DecodeIPPacket(data []byte) (Message, error) {
	if len(data) == 0 || data[0]>>4 != 4 {
		return Message{}, ErrNotIPv4
	}
	packet := gopacket.NewPacket(data, layers.LayerTypeIPv4, gopacket.Default)
	layer := packet.Layer(layers.LayerTypeIPv4)
	if layer == nil {
		if errLayer := packet.ErrorLayer(); errLayer != nil {
			return Message{}, errLayer.Error()
		}
		return Message{}, ErrNotIPv4
	}
	ip := layer.(*layers.IPv4)
	return Message{Source: ip.SrcIP.String(), Payload: ip.Payload}, nil
}
