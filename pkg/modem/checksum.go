package modem

import (
	"crypto/md5"
	"encoding/hex"
)

// DigestSize is the length of a digest as it appears in a frame: one ASCII
// character per hex digit of the 16-byte MD5 sum.
const DigestSize = 2 * md5.Size

// Digest returns the lowercase hex MD5 of message as ASCII bytes.
func Digest(message []byte) []byte {
	sum := md5.Sum(message)
	out := make([]byte, DigestSize)
	hex.Encode(out, sum[:])
	return out
}
