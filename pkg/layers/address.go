package layers

import (
	"fmt"
	"strconv"
	"strings"
)

const AddressSize = 4

// Address is a dotted-decimal node address packed into four bytes.
type Address [AddressSize]byte

func ParseAddress(s string) (Address, error) {
	var addr Address
	parts := strings.Split(s, ".")
	if len(parts) != AddressSize {
		return addr, &AddressError{Addr: s, Reason: fmt.Sprintf("expected %d segments, got %d", AddressSize, len(parts))}
	}
	for i, part := range parts {
		if part == "" || strings.Trim(part, "0123456789") != "" {
			return addr, &AddressError{Addr: s, Reason: fmt.Sprintf("segment %d is not a decimal integer", i+1)}
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return addr, &AddressError{Addr: s, Reason: fmt.Sprintf("segment %d is not an integer", i+1)}
		}
		if v < 0 || v > 0xff {
			return addr, &AddressError{Addr: s, Reason: fmt.Sprintf("segment %d out of range: %d", i+1, v)}
		}
		addr[i] = byte(v)
	}
	return addr, nil
}

func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}
