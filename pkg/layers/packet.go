package layers

import (
	"fmt"

	"github.com/google/gopacket"
)

// BuildPacket frames payload behind a header carrying the given addresses,
// sequence number and checksum.
func BuildPacket(source, transmitter Address, sequence int, checksum, payload []byte) ([]byte, error) {
	if sequence < 0 || sequence > MaxSequence {
		return nil, fmt.Errorf("%w: %d", ErrSequenceOverflow, sequence)
	}
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrLengthExceeded, len(payload))
	}

	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true},
		&AcousticFrame{
			Source:      source,
			Transmitter: transmitter,
			Sequence:    uint8(sequence),
			Checksum:    checksum,
		},
		gopacket.Payload(payload),
	)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildAllPackets frames the same payload once per sequence number 1..redundancy.
func BuildAllPackets(source, transmitter Address, redundancy int, checksum, payload []byte) ([][]byte, error) {
	if redundancy < 1 {
		return nil, fmt.Errorf("%w: %d", ErrRedundancy, redundancy)
	}
	if redundancy > MaxSequence {
		return nil, fmt.Errorf("%w: redundancy %d", ErrSequenceOverflow, redundancy)
	}

	packets := make([][]byte, 0, redundancy)
	for seq := 1; seq <= redundancy; seq++ {
		packet, err := BuildPacket(source, transmitter, seq, checksum, payload)
		if err != nil {
			return nil, err
		}
		packets = append(packets, packet)
	}
	return packets, nil
}
