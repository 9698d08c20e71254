package layers

import (
	"errors"
	"fmt"
)

var (
	ErrLengthExceeded   = errors.New("payload does not fit the 16-bit length field")
	ErrSequenceOverflow = errors.New("sequence number does not fit in one byte")
	ErrAddressFormat    = errors.New("address is not four dot-separated integers in [0,255]")
	ErrRedundancy       = errors.New("redundancy count must be at least 1")
	ErrChecksumSize     = errors.New("checksum must be 32 hex characters")
	ErrBadPreamble      = errors.New("frame does not start with the preamble")
	ErrTruncated        = errors.New("frame is shorter than its header claims")
)

type AddressError struct {
	Addr   string
	Reason string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Addr, e.Reason)
}

func (e *AddressError) Is(target error) bool {
	return target == ErrAddressFormat
}
