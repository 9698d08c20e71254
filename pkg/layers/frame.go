package layers

import (
	"bytes"
	"encoding/binary"

	"Soundmodem/pkg/modem"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Preamble (32) | Source (4) | Transmitter (4) | Sequence (1) | Length (2) | Reserved (8) | Checksum (32) | Payload
// Integers are big-endian.
const (
	PreambleByte   = 0x55
	PreambleSize   = 32
	SequenceSize   = 1
	LengthSize     = 2
	ReservedSize   = 8
	ChecksumSize   = modem.DigestSize
	HeaderSize     = PreambleSize + 2*AddressSize + SequenceSize + LengthSize + ReservedSize + ChecksumSize
	MaxPayloadSize = 0xffff
	MaxSequence    = 0xff

	offSource      = PreambleSize
	offTransmitter = offSource + AddressSize
	offSequence    = offTransmitter + AddressSize
	offLength      = offSequence + SequenceSize
	offReserved    = offLength + LengthSize
	offChecksum    = offReserved + ReservedSize
)

var LayerTypeAcousticFrame = gopacket.RegisterLayerType(1720, gopacket.LayerTypeMetadata{
	Name:    "AcousticFrame",
	Decoder: gopacket.DecodeFunc(decodeAcousticFrame),
})

var preamble = bytes.Repeat([]byte{PreambleByte}, PreambleSize)

// AcousticFrame is the header of one packet sent over the acoustic link.
type AcousticFrame struct {
	layers.BaseLayer

	Source      Address
	Transmitter Address
	Sequence    uint8
	Length      uint16 // filled from the payload when serialising with FixLengths
	Checksum    []byte
}

func (f *AcousticFrame) LayerType() gopacket.LayerType { return LayerTypeAcousticFrame }

func (f *AcousticFrame) CanDecode() gopacket.LayerClass { return LayerTypeAcousticFrame }

func (f *AcousticFrame) NextLayerType() gopacket.LayerType { return gopacket.LayerTypePayload }

func (f *AcousticFrame) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	if len(f.Checksum) != ChecksumSize {
		return ErrChecksumSize
	}
	if opts.FixLengths {
		payloadLen := len(b.Bytes())
		if payloadLen > MaxPayloadSize {
			return ErrLengthExceeded
		}
		f.Length = uint16(payloadLen)
	}

	header, err := b.PrependBytes(HeaderSize)
	if err != nil {
		return err
	}
	copy(header, preamble)
	copy(header[offSource:], f.Source[:])
	copy(header[offTransmitter:], f.Transmitter[:])
	header[offSequence] = f.Sequence
	binary.BigEndian.PutUint16(header[offLength:], f.Length)
	clear(header[offReserved:offChecksum])
	copy(header[offChecksum:], f.Checksum)
	return nil
}

func (f *AcousticFrame) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < HeaderSize {
		df.SetTruncated()
		return ErrTruncated
	}
	if !bytes.Equal(data[:PreambleSize], preamble) {
		return ErrBadPreamble
	}

	copy(f.Source[:], data[offSource:])
	copy(f.Transmitter[:], data[offTransmitter:])
	f.Sequence = data[offSequence]
	f.Length = binary.BigEndian.Uint16(data[offLength:])
	f.Checksum = data[offChecksum:HeaderSize]

	end := HeaderSize + int(f.Length)
	if len(data) < end {
		df.SetTruncated()
		return ErrTruncated
	}
	f.BaseLayer = layers.BaseLayer{Contents: data[:HeaderSize], Payload: data[HeaderSize:end]}
	return nil
}

// VerifyChecksum reports whether the checksum field matches payload.
func (f *AcousticFrame) VerifyChecksum(payload []byte) bool {
	return bytes.Equal(f.Checksum, modem.Digest(payload))
}

func decodeAcousticFrame(data []byte, p gopacket.PacketBuilder) error {
	f := &AcousticFrame{}
	if err := f.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(f)
	return p.NextDecoder(f.NextLayerType())
}

// DecodePacket parses a framed packet into its header and payload.
func DecodePacket(data []byte) (*AcousticFrame, []byte, error) {
	packet := gopacket.NewPacket(data, LayerTypeAcousticFrame, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		return nil, nil, errLayer.Error()
	}
	frame := packet.Layer(LayerTypeAcousticFrame).(*AcousticFrame)
	return frame, frame.LayerPayload(), nil
}
