package bcs

import (
	"fmt"
	"math"
	"math/big"
)

// Fixed widths, in bytes, of the primitive layouts.
const (
	widthBool = 1
	widthU8   = 1
	widthU16  = 2
	widthU32  = 4
	widthU64  = 8
	widthU128 = 16
)

// maxU128 is 2^128 - 1.
var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// appendTrivialNatural appends the l byte little-endian form of x to dst.
func appendTrivialNatural[T uint8 | uint16 | uint32 | uint64](dst []byte, x T, l uint8) []byte {
	for i := uint8(0); i < l; i++ {
		dst = append(dst, byte((x>>(8*i))&T(math.MaxUint8)))
	}
	return dst
}

// trivialNatural is the inverse of appendTrivialNatural over all of serialized.
func trivialNatural[T uint8 | uint16 | uint32 | uint64](serialized []byte) T {
	var u T
	for i := 0; i < len(serialized); i++ {
		u |= T(serialized[i]) << (8 * i)
	}
	return u
}

// appendU128 appends v as 16 little-endian bytes.
func appendU128(dst []byte, v *big.Int) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil u128", ErrInvalidInput)
	}
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return nil, fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, v, 128)
	}
	var be [widthU128]byte
	v.FillBytes(be[:])
	for i := widthU128 - 1; i >= 0; i-- {
		dst = append(dst, be[i])
	}
	return dst, nil
}

func u128(serialized []byte) *big.Int {
	be := make([]byte, len(serialized))
	for i := range serialized {
		be[len(serialized)-1-i] = serialized[i]
	}
	return new(big.Int).SetBytes(be)
}
