package iface

import (
	"errors"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultListenAddress  = "127.0.0.1:4000"
	DefaultMaxMessageSize = 4096
)

// TCPListener accepts one connection at a time and reads a single message
// of up to MaxMessageSize bytes from each.
type TCPListener struct {
	Address        string
	MaxMessageSize int
	ReadTimeout    time.Duration // 0 waits forever
	Log            *zerolog.Logger

	listener  net.Listener
	messages  chan Message
	done      chan struct{}
	closeOnce sync.Once
}

func (l *TCPListener) Open() (err error) {
	if l.Address == "" {
		l.Address = DefaultListenAddress
	}
	if l.MaxMessageSize == 0 {
		l.MaxMessageSize = DefaultMaxMessageSize
	}
	if l.listener, err = net.Listen("tcp", l.Address); err != nil {
		return
	}
	l.messages = make(chan Message)
	l.done = make(chan struct{})
	go l.serve()
	return nil
}

// Addr is the address actually listened on.
func (l *TCPListener) Addr() net.Addr {
	return l.listener.Addr()
}

func (l *TCPListener) Messages() <-chan Message {
	return l.messages
}

func (l *TCPListener) Close() (err error) {
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.listener.Close()
	})
	return
}

func (l *TCPListener) serve() {
	log := logger(l.Log)
	defer close(l.messages)

	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn().Err(err).Msg("accept failed")
			continue
		}

		msg, err := l.read(conn)
		conn.Close()
		if err != nil {
			log.Warn().Err(err).Stringer("peer", conn.RemoteAddr()).Msg("dropping connection")
			continue
		}
		if len(msg.Payload) == 0 {
			continue
		}
		log.Debug().Str("source", msg.Source).Int("bytes", len(msg.Payload)).Msg("message received")

		select {
		case l.messages <- msg:
		case <-l.done:
			return
		}
	}
}

func (l *TCPListener) read(conn net.Conn) (Message, error) {
	peer, err := netip.ParseAddrPort(conn.RemoteAddr().String())
	if err != nil {
		return Message{}, err
	}
	if l.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(l.ReadTimeout))
	}

	buf := make([]byte, l.MaxMessageSize)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		return Message{}, err
	}
	return Message{Source: peer.Addr().Unmap().String(), Payload: buf[:n]}, nil
}
