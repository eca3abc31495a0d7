// Package bcs implements Binary Canonical Serialization, the byte layout the Sui
// ledger expects for pure transaction arguments: little-endian fixed-width
// integers, ULEB128 length prefixes, tagged options and unframed structs.
//
// Every shape is driven by caller supplied encode/decode functions. There is no
// reflection.
package bcs

import (
	"fmt"
	"math"
	"math/big"
)

// Limits bound the size of the values a Codec accepts.
type Limits struct {
	// MaxSequenceLength is the largest element count a vector may carry.
	MaxSequenceLength uint32
	// MaxContainerDepth is the deepest nesting of vectors, options and structs.
	MaxContainerDepth uint32
}

// DefaultLimits are used for any zero field of the Limits passed to New.
var DefaultLimits = Limits{
	MaxSequenceLength: 1_000_000,
	MaxContainerDepth: 100,
}

func (l Limits) withDefaults() Limits {
	if l.MaxSequenceLength == 0 {
		l.MaxSequenceLength = DefaultLimits.MaxSequenceLength
	}
	if l.MaxContainerDepth == 0 {
		l.MaxContainerDepth = DefaultLimits.MaxContainerDepth
	}
	return l
}

// Codec is a read-only set of limits plus the byte level encode/decode
// operations. It holds no other state and is safe for concurrent use.
type Codec struct {
	limits Limits
}

// New returns a Codec enforcing the given limits.
func New(limits Limits) Codec {
	return Codec{limits: limits.withDefaults()}
}

// Default returns a Codec with DefaultLimits.
func Default() Codec {
	return New(DefaultLimits)
}

func (c Codec) Limits() Limits {
	return c.limits.withDefaults()
}

// NewEncoder returns an empty Encoder bound to the codec limits.
func (c Codec) NewEncoder() *Encoder {
	return NewEncoder(c.Limits())
}

// NewDecoder returns a Decoder reading from the start of data.
func (c Codec) NewDecoder(data []byte) *Decoder {
	return NewDecoder(data, c.Limits())
}

func (c Codec) encode(fn func(e *Encoder) error) ([]byte, error) {
	e := c.NewEncoder()
	if err := fn(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

func decode[T any](c Codec, data []byte, fn DecodeFunc[T]) (T, int, error) {
	d := c.NewDecoder(data)
	v, err := fn(d)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return v, d.Offset(), nil
}

func (c Codec) EncodeBool(v bool) []byte {
	b, _ := c.encode(func(e *Encoder) error { return e.WriteBool(v) })
	return b
}

// DecodeBool accepts only 0x00 and 0x01.
func (c Codec) DecodeBool(data []byte) (bool, int, error) {
	return decode(c, data, (*Decoder).ReadBool)
}

// EncodeU8 encodes v as a single byte.
func (c Codec) EncodeU8(v int64) ([]byte, error) {
	if v < 0 || v > math.MaxUint8 {
		return nil, fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, v, 8)
	}
	return c.encode(func(e *Encoder) error { return e.WriteU8(uint8(v)) })
}

func (c Codec) DecodeU8(data []byte) (uint8, int, error) {
	return decode(c, data, (*Decoder).ReadU8)
}

func (c Codec) EncodeU16(v int64) ([]byte, error) {
	if v < 0 || v > math.MaxUint16 {
		return nil, fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, v, 16)
	}
	return c.encode(func(e *Encoder) error { return e.WriteU16(uint16(v)) })
}

func (c Codec) DecodeU16(data []byte) (uint16, int, error) {
	return decode(c, data, (*Decoder).ReadU16)
}

// EncodeU32 encodes v as 4 little-endian bytes.
func (c Codec) EncodeU32(v int64) ([]byte, error) {
	if v < 0 || v > math.MaxUint32 {
		return nil, fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, v, 32)
	}
	return c.encode(func(e *Encoder) error { return e.WriteU32(uint32(v)) })
}

func (c Codec) DecodeU32(data []byte) (uint32, int, error) {
	return decode(c, data, (*Decoder).ReadU32)
}

// EncodeU64 resolves v and encodes it as 8 little-endian bytes.
func (c Codec) EncodeU64(v U64Input) ([]byte, error) {
	n, err := v.Resolve()
	if err != nil {
		return nil, err
	}
	return c.encode(func(e *Encoder) error { return e.WriteU64(n) })
}

func (c Codec) DecodeU64(data []byte) (uint64, int, error) {
	return decode(c, data, (*Decoder).ReadU64)
}

func (c Codec) EncodeU128(v *big.Int) ([]byte, error) {
	return c.encode(func(e *Encoder) error { return e.WriteU128(v) })
}

func (c Codec) DecodeU128(data []byte) (*big.Int, int, error) {
	return decode(c, data, (*Decoder).ReadU128)
}

// EncodeU32AsULEB128 encodes v as an unsigned LEB128 varint.
func (c Codec) EncodeU32AsULEB128(v int64) ([]byte, error) {
	if v < 0 || v > math.MaxUint32 {
		return nil, fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, v, 32)
	}
	return appendULEB128(nil, uint32(v)), nil
}

func (c Codec) DecodeULEB128(data []byte) (uint32, int, error) {
	return readULEB128(data)
}

// EncodeBytes encodes b as a length-prefixed vector<u8>.
func (c Codec) EncodeBytes(b []byte) ([]byte, error) {
	return c.encode(func(e *Encoder) error { return e.WriteBytes(b) })
}

func (c Codec) DecodeBytes(data []byte) ([]byte, int, error) {
	return decode(c, data, (*Decoder).ReadBytes)
}

// EncodeString encodes the UTF-8 bytes of s as a length-prefixed vector<u8>.
func (c Codec) EncodeString(s string) ([]byte, error) {
	return c.encode(func(e *Encoder) error { return e.WriteString(s) })
}

// DecodeString fails with ErrInvalidEncoding if the bytes are not valid UTF-8.
func (c Codec) DecodeString(data []byte) (string, int, error) {
	return decode(c, data, (*Decoder).ReadString)
}

// EncodeNativeAddress parses a 64 character hex address, with or without the
// 0x prefix, into its 32 raw bytes.
func (c Codec) EncodeNativeAddress(s string) ([]byte, error) {
	a, err := ParseNativeAddress(s)
	if err != nil {
		return nil, err
	}
	return c.encode(func(e *Encoder) error { return e.WriteNativeAddress(a) })
}

func (c Codec) DecodeNativeAddress(data []byte) (NativeAddress, int, error) {
	return decode(c, data, (*Decoder).ReadNativeAddress)
}

// EncodeForeignAddress parses a 20 byte hex address and frames it as
// [0x14][20 bytes], the vector<u8> shape the receiving module expects.
func (c Codec) EncodeForeignAddress(s string) ([]byte, error) {
	a, err := ParseForeignAddress(s)
	if err != nil {
		return nil, err
	}
	return c.encode(func(e *Encoder) error { return e.WriteForeignAddress(a) })
}

func (c Codec) DecodeForeignAddress(data []byte) (ForeignAddress, int, error) {
	return decode(c, data, (*Decoder).ReadForeignAddress)
}

// EncodeStruct encodes values[i] with encoders[i], in order, with no framing.
func (c Codec) EncodeStruct(values []any, encoders []EncodeFunc[any]) ([]byte, error) {
	if len(values) != len(encoders) {
		return nil, fmt.Errorf(errFieldCount, ErrFieldCountMismatch, len(values), len(encoders))
	}
	fields := make([]FieldEncoder, len(values))
	for i := range values {
		fields[i] = Field(values[i], encoders[i])
	}
	return c.encode(func(e *Encoder) error { return e.WriteStruct(fields...) })
}

// DecodeStruct runs the field decoders in order and reports the bytes consumed.
func (c Codec) DecodeStruct(data []byte, fields ...FieldDecoder) (int, error) {
	d := c.NewDecoder(data)
	if err := d.ReadStruct(fields...); err != nil {
		return 0, err
	}
	return d.Offset(), nil
}

// Marshal encodes a value that knows its own layout.
func (c Codec) Marshal(v Marshaler) ([]byte, error) {
	return c.encode(v.MarshalBCS)
}

// Unmarshal decodes a prefix of data into v and reports the bytes consumed.
func (c Codec) Unmarshal(data []byte, v Unmarshaler) (int, error) {
	d := c.NewDecoder(data)
	if err := v.UnmarshalBCS(d); err != nil {
		return 0, err
	}
	return d.Offset(), nil
}

// UnmarshalExact is Unmarshal that also rejects trailing bytes.
func (c Codec) UnmarshalExact(data []byte, v Unmarshaler) error {
	n, err := c.Unmarshal(data, v)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf(errTrailingBytes, ErrInvalidEncoding, len(data)-n)
	}
	return nil
}

// EncodeVector encodes elems with f. Without the length prefix the decoder
// must learn the element count out of band, see DecodeVectorN.
func EncodeVector[T any](c Codec, elems []T, f EncodeFunc[T], includeLengthPrefix bool) ([]byte, error) {
	return c.encode(func(e *Encoder) error {
		if includeLengthPrefix {
			return WriteVector(e, elems, f)
		}
		return WriteUnprefixed(e, elems, f)
	})
}

// DecodeVector reads a ULEB128 element count followed by that many elements.
func DecodeVector[T any](c Codec, data []byte, f DecodeFunc[T]) ([]T, int, error) {
	return decode(c, data, func(d *Decoder) ([]T, error) {
		return ReadVector(d, f)
	})
}

// DecodeVectorN reads exactly n elements with no length prefix.
func DecodeVectorN[T any](c Codec, data []byte, n int, f DecodeFunc[T]) ([]T, int, error) {
	return decode(c, data, func(d *Decoder) ([]T, error) {
		return ReadVectorN(d, n, f)
	})
}

// EncodeOption writes 0x00 for a nil v and 0x01 followed by f(*v) otherwise.
func EncodeOption[T any](c Codec, v *T, f EncodeFunc[T]) ([]byte, error) {
	return c.encode(func(e *Encoder) error { return WriteOption(e, v, f) })
}

func DecodeOption[T any](c Codec, data []byte, f DecodeFunc[T]) (*T, int, error) {
	return decode(c, data, func(d *Decoder) (*T, error) {
		return ReadOption(d, f)
	})
}
