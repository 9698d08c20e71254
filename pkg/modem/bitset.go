package modem

import "iter"

// BitSet8 indexes bits from the most significant end: position 0 is 0x80.
type BitSet8 byte

func (b BitSet8) IsSet(pos int) bool {
	return b&(0x80>>pos) != 0
}

// Bits walks data in byte order, most significant bit first.
func Bits(data []byte) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for _, b := range data {
			bs := BitSet8(b)
			for i := 0; i < 8; i++ {
				if !yield(bs.IsSet(i)) {
					return
				}
			}
		}
	}
}
