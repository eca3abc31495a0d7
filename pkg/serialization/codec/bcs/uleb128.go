package bcs

import (
	"fmt"
	"math"
)

// A uint32 needs at most 5 groups of 7 bits.
const maxULEB128Width = 5

// appendULEB128 appends v as an unsigned little-endian base-128 varint: 7 value
// bits per byte, high bit set on every byte except the last.
func appendULEB128(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// readULEB128 decodes a varint from the front of b and returns the value and
// the number of bytes it occupied. Only the shortest encoding is accepted.
func readULEB128(b []byte) (uint32, int, error) {
	var value uint64
	for i := 0; i < maxULEB128Width; i++ {
		if i >= len(b) {
			return 0, 0, fmt.Errorf(errTruncatedULEB128, ErrTruncatedInput, i)
		}
		cur := b[i]
		value |= uint64(cur&0x7f) << (7 * i)
		if cur&0x80 != 0 {
			continue
		}
		if i > 0 && cur == 0 {
			return 0, 0, fmt.Errorf(errNonCanonicalULEB, ErrInvalidEncoding)
		}
		if value > math.MaxUint32 {
			return 0, 0, fmt.Errorf(errULEB128Overflow, ErrValueOutOfRange)
		}
		return uint32(value), i + 1, nil
	}
	return 0, 0, fmt.Errorf(errULEB128Overflow, ErrValueOutOfRange)
}
