package bcs

import (
	"fmt"
	"math/big"
	"unicode/utf8"
)

// Decoder consumes BCS encodings from the front of a byte slice. Offset reports
// how much has been read, so callers decoding a prefix can chain decoders.
// After an error the position of the Decoder is unspecified.
type Decoder struct {
	data   []byte
	offset int
	limits Limits
	depth  uint32
}

func NewDecoder(data []byte, limits Limits) *Decoder {
	return &Decoder{data: data, limits: limits.withDefaults()}
}

// Offset is the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.offset
}

func (d *Decoder) Remaining() int {
	return len(d.data) - d.offset
}

func (d *Decoder) take(n int) ([]byte, error) {
	if n < 0 || n > d.Remaining() {
		return nil, fmt.Errorf(errTruncated, ErrTruncatedInput, n, d.Remaining())
	}
	b := d.data[d.offset : d.offset+n]
	d.offset += n
	return b, nil
}

func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.take(widthBool)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf(errInvalidBool, ErrInvalidEncoding, b[0])
	}
}

func (d *Decoder) ReadU8() (uint8, error) {
	b, err := d.take(widthU8)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) ReadU16() (uint16, error) {
	b, err := d.take(widthU16)
	if err != nil {
		return 0, err
	}
	return trivialNatural[uint16](b), nil
}

func (d *Decoder) ReadU32() (uint32, error) {
	b, err := d.take(widthU32)
	if err != nil {
		return 0, err
	}
	return trivialNatural[uint32](b), nil
}

func (d *Decoder) ReadU64() (uint64, error) {
	b, err := d.take(widthU64)
	if err != nil {
		return 0, err
	}
	return trivialNatural[uint64](b), nil
}

func (d *Decoder) ReadU128() (*big.Int, error) {
	b, err := d.take(widthU128)
	if err != nil {
		return nil, err
	}
	return u128(b), nil
}

func (d *Decoder) ReadULEB128() (uint32, error) {
	v, n, err := readULEB128(d.data[d.offset:])
	if err != nil {
		return 0, err
	}
	d.offset += n
	return v, nil
}

// ReadLength reads a ULEB128 sequence length and checks it against
// MaxSequenceLength before any element is decoded.
func (d *Decoder) ReadLength() (int, error) {
	n, err := d.ReadULEB128()
	if err != nil {
		return 0, err
	}
	if err := d.checkLength(int(n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (d *Decoder) checkLength(n int) error {
	if n < 0 {
		return fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, n, 32)
	}
	if uint64(n) > uint64(d.limits.MaxSequenceLength) {
		return fmt.Errorf(errSequenceTooLong, ErrSequenceTooLong, n, d.limits.MaxSequenceLength)
	}
	return nil
}

// ReadFixedBytes returns a copy of the next n bytes.
func (d *Decoder) ReadFixedBytes(n int) ([]byte, error) {
	b, err := d.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadBytes reads a length-prefixed vector<u8>.
func (d *Decoder) ReadBytes() ([]byte, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	n, err := d.ReadLength()
	if err != nil {
		return nil, err
	}
	return d.ReadFixedBytes(n)
}

func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf(errInvalidUTF8, ErrInvalidEncoding)
	}
	return string(b), nil
}

// ReadOptionTag reports whether an option value follows. Tags other than 0
// and 1 are rejected.
func (d *Decoder) ReadOptionTag() (bool, error) {
	b, err := d.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf(errInvalidOptionTag, ErrInvalidEncoding, b[0])
	}
}

func (d *Decoder) ReadNativeAddress() (NativeAddress, error) {
	var a NativeAddress
	b, err := d.take(NativeAddressLength)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// ReadForeignAddress reads the 21 byte [0x14][address] framing.
func (d *Decoder) ReadForeignAddress() (ForeignAddress, error) {
	var a ForeignAddress
	l, err := d.ReadU8()
	if err != nil {
		return a, err
	}
	if l != ForeignAddressLength {
		return a, fmt.Errorf(errForeignLengthByte, ErrInvalidAddressLength, l)
	}
	b, err := d.take(ForeignAddressLength)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// ReadStruct runs the field decoders in order.
func (d *Decoder) ReadStruct(fields ...FieldDecoder) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	for i, f := range fields {
		if err := f(d); err != nil {
			return fmt.Errorf(errDecodingField, i, err)
		}
	}
	return nil
}

func (d *Decoder) enter() error {
	if d.depth >= d.limits.MaxContainerDepth {
		return fmt.Errorf(errContainerTooDeep, ErrContainerTooDeep, d.limits.MaxContainerDepth)
	}
	d.depth++
	return nil
}

func (d *Decoder) leave() {
	d.depth--
}
