// Package iface delivers messages to transmit, each tagged with the address
// of whoever sent it.
package iface

import (
	"errors"

	"github.com/rs/zerolog"
)

type Message struct {
	Source  string // dotted-decimal IPv4 address of the sender
	Payload []byte
}

type Source interface {
	Open() error
	Messages() <-chan Message
	Close() error
}

var ErrNotIPv4 = errors.New("not an IPv4 packet")

func logger(l *zerolog.Logger) *zerolog.Logger {
	if l == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return l
}
