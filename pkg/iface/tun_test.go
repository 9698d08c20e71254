package iface

import (
	"bytes"
	"errors"
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func TestDecodeIPPacket(t *testing.T) {
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IPv4(10, 0, 0, 5),
		DstIP:    net.IPv4(192, 168, 0, 1),
	}
	udp := &layers.UDP{SrcPort: 4000, DstPort: 4000}
	udp.SetNetworkLayerForChecksum(ip)

	data := []byte("hello over the air")
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true},
		ip, udp, gopacket.Payload(data))
	if err != nil {
		t.Fatal(err)
	}

	msg, err := DecodeIPPacket(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if msg.Source != "10.0.0.5" {
		t.Errorf("expected source 10.0.0.5, got %s", msg.Source)
	}
	if len(msg.Payload) != 8+len(data) || !bytes.HasSuffix(msg.Payload, data) {
		t.Errorf("expected the UDP datagram as payload, got %x", msg.Payload)
	}
}

func TestDecodeIPPacketRejectsIPv6(t *testing.T) {
	ip := &layers.IPv6{
		Version:    6,
		HopLimit:   64,
		NextHeader: layers.IPProtocolNoNextHeader,
		SrcIP:      net.ParseIP("fe80::1"),
		DstIP:      net.ParseIP("fe80::2"),
	}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, ip); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeIPPacket(buf.Bytes()); !errors.Is(err, ErrNotIPv4) {
		t.Errorf("expected ErrNotIPv4, got %v", err)
	}
	if _, err := DecodeIPPacket(nil); !errors.Is(err, ErrNotIPv4) {
		t.Errorf("expected ErrNotIPv4, got %v", err)
	}
}
