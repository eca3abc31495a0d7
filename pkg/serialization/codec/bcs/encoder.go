package bcs

import (
	"fmt"
	"math/big"
	"unicode/utf8"
)

// Encoder appends BCS encodings to an in-memory buffer. It tracks container
// depth so nested vectors, options and structs stay within the limits.
// An Encoder is not safe for concurrent use.
type Encoder struct {
	buf    []byte
	limits Limits
	depth  uint32
}

func NewEncoder(limits Limits) *Encoder {
	return &Encoder{limits: limits.withDefaults()}
}

// Bytes returns the encoding written so far. The slice aliases the buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) WriteBool(v bool) error {
	if v {
		e.buf = append(e.buf, 0x01)
	} else {
		e.buf = append(e.buf, 0x00)
	}
	return nil
}

func (e *Encoder) WriteU8(v uint8) error {
	e.buf = append(e.buf, v)
	return nil
}

func (e *Encoder) WriteU16(v uint16) error {
	e.buf = appendTrivialNatural(e.buf, v, widthU16)
	return nil
}

func (e *Encoder) WriteU32(v uint32) error {
	e.buf = appendTrivialNatural(e.buf, v, widthU32)
	return nil
}

func (e *Encoder) WriteU64(v uint64) error {
	e.buf = appendTrivialNatural(e.buf, v, widthU64)
	return nil
}

func (e *Encoder) WriteU128(v *big.Int) error {
	buf, err := appendU128(e.buf, v)
	if err != nil {
		return err
	}
	e.buf = buf
	return nil
}

func (e *Encoder) WriteULEB128(v uint32) error {
	e.buf = appendULEB128(e.buf, v)
	return nil
}

// WriteLength writes a sequence length prefix after checking it against
// MaxSequenceLength.
func (e *Encoder) WriteLength(n int) error {
	if err := e.checkLength(n); err != nil {
		return err
	}
	return e.WriteULEB128(uint32(n))
}

func (e *Encoder) checkLength(n int) error {
	if n < 0 {
		return fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, n, 32)
	}
	if uint64(n) > uint64(e.limits.MaxSequenceLength) {
		return fmt.Errorf(errSequenceTooLong, ErrSequenceTooLong, n, e.limits.MaxSequenceLength)
	}
	return nil
}

// WriteFixedBytes writes b with no length prefix.
func (e *Encoder) WriteFixedBytes(b []byte) error {
	e.buf = append(e.buf, b...)
	return nil
}

// WriteBytes writes b as a length-prefixed vector<u8>.
func (e *Encoder) WriteBytes(b []byte) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.WriteLength(len(b)); err != nil {
		return err
	}
	return e.WriteFixedBytes(b)
}

// WriteString writes the UTF-8 bytes of s as a vector<u8>. Strings holding
// invalid UTF-8 are rejected.
func (e *Encoder) WriteString(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf(errInvalidUTF8, ErrInvalidInput)
	}
	return e.WriteBytes([]byte(s))
}

func (e *Encoder) WriteOptionTag(present bool) error {
	return e.WriteBool(present)
}

func (e *Encoder) WriteNativeAddress(a NativeAddress) error {
	return e.WriteFixedBytes(a[:])
}

// WriteForeignAddress writes the length byte 20 followed by the raw address.
func (e *Encoder) WriteForeignAddress(a ForeignAddress) error {
	if err := e.WriteU8(ForeignAddressLength); err != nil {
		return err
	}
	return e.WriteFixedBytes(a[:])
}

// WriteStruct writes each field in order with no framing.
func (e *Encoder) WriteStruct(fields ...FieldEncoder) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	for i, f := range fields {
		if err := f(e); err != nil {
			return fmt.Errorf(errEncodingField, i, err)
		}
	}
	return nil
}

func (e *Encoder) enter() error {
	if e.depth >= e.limits.MaxContainerDepth {
		return fmt.Errorf(errContainerTooDeep, ErrContainerTooDeep, e.limits.MaxContainerDepth)
	}
	e.depth++
	return nil
}

func (e *Encoder) leave() {
	e.depth--
}
