package typetag

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// Encode writes v, shaped like a decoded JSON or YAML document, as the BCS
// encoding of t. Integers may be numbers or decimal strings, vector<u8> may be
// a 0x hex string, and nil is an absent option.
func Encode(c bcs.Codec, t Tag, v any) ([]byte, error) {
	e := c.NewEncoder()
	if err := encodeValue(e, t, v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	return e.Bytes(), nil
}

// EncodeJSON decodes raw as a single JSON value, keeping numbers exact, and
// encodes it as t.
func EncodeJSON(c bcs.Codec, t Tag, raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", bcs.ErrInvalidInput, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", bcs.ErrInvalidInput)
	}
	return Encode(c, t, v)
}

// Decode reads a value of type t from the front of data. u64 and u128 come
// back as decimal strings and vector<u8> as a 0x hex string so the result
// survives a JSON round trip. A present option whose element is itself an
// option comes back wrapped in a one element array, keeping Some(None) apart
// from None.
func Decode(c bcs.Codec, t Tag, data []byte) (any, int, error) {
	d := c.NewDecoder(data)
	v, err := decodeValue(d, t)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", t, err)
	}
	return v, d.Offset(), nil
}

func encodeValue(e *bcs.Encoder, t Tag, v any) error {
	switch t.Kind {
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return typeMismatch(t, v)
		}
		return e.WriteBool(b)
	case U8:
		n, err := unsigned(v, 8)
		if err != nil {
			return err
		}
		return e.WriteU8(uint8(n.Uint64()))
	case U16:
		n, err := unsigned(v, 16)
		if err != nil {
			return err
		}
		return e.WriteU16(uint16(n.Uint64()))
	case U32:
		n, err := unsigned(v, 32)
		if err != nil {
			return err
		}
		return e.WriteU32(uint32(n.Uint64()))
	case U64:
		n, err := unsigned(v, 64)
		if err != nil {
			return err
		}
		return e.WriteU64(n.Uint64())
	case U128:
		n, err := unsigned(v, 128)
		if err != nil {
			return err
		}
		return e.WriteU128(n)
	case Address:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(t, v)
		}
		a, err := bcs.ParseNativeAddress(s)
		if err != nil {
			return err
		}
		return e.WriteNativeAddress(a)
	case EthAddress:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(t, v)
		}
		a, err := bcs.ParseForeignAddress(s)
		if err != nil {
			return err
		}
		return e.WriteForeignAddress(a)
	case String:
		s, ok := v.(string)
		if !ok {
			return typeMismatch(t, v)
		}
		return e.WriteString(s)
	case Vector:
		if s, ok := v.(string); ok && t.Elem.Kind == U8 {
			b, err := hexBytes(s)
			if err != nil {
				return err
			}
			return e.WriteBytes(b)
		}
		items, ok := v.([]any)
		if !ok {
			return typeMismatch(t, v)
		}
		return bcs.WriteVector(e, items, elemEncoder(*t.Elem))
	case Option:
		if v == nil {
			return bcs.WriteOption(e, nil, elemEncoder(*t.Elem))
		}
		if t.Elem.Kind == Option {
			wrapped, ok := v.([]any)
			if !ok || len(wrapped) != 1 {
				return fmt.Errorf("%w: present %s must be a one element array", bcs.ErrInvalidInput, t)
			}
			v = wrapped[0]
		}
		return bcs.WriteOption(e, &v, elemEncoder(*t.Elem))
	default:
		return fmt.Errorf("%w: kind %d", ErrUnknownType, t.Kind)
	}
}

func elemEncoder(t Tag) bcs.EncodeFunc[any] {
	return func(e *bcs.Encoder, v any) error {
		return encodeValue(e, t, v)
	}
}

func decodeValue(d *bcs.Decoder, t Tag) (any, error) {
	switch t.Kind {
	case Bool:
		return d.ReadBool()
	case U8:
		return d.ReadU8()
	case U16:
		return d.ReadU16()
	case U32:
		return d.ReadU32()
	case U64:
		v, err := d.ReadU64()
		if err != nil {
			return nil, err
		}
		return strconv.FormatUint(v, 10), nil
	case U128:
		v, err := d.ReadU128()
		if err != nil {
			return nil, err
		}
		return v.String(), nil
	case Address:
		a, err := d.ReadNativeAddress()
		if err != nil {
			return nil, err
		}
		return a.String(), nil
	case EthAddress:
		a, err := d.ReadForeignAddress()
		if err != nil {
			return nil, err
		}
		return a.Checksum(), nil
	case String:
		return d.ReadString()
	case Vector:
		if t.Elem.Kind == U8 {
			b, err := d.ReadBytes()
			if err != nil {
				return nil, err
			}
			return "0x" + hex.EncodeToString(b), nil
		}
		items, err := bcs.ReadVector(d, elemDecoder(*t.Elem))
		if err != nil {
			return nil, err
		}
		return items, nil
	case Option:
		v, err := bcs.ReadOption(d, elemDecoder(*t.Elem))
		if err != nil || v == nil {
			return nil, err
		}
		if t.Elem.Kind == Option {
			return []any{*v}, nil
		}
		return *v, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownType, t.Kind)
	}
}

func elemDecoder(t Tag) bcs.DecodeFunc[any] {
	return func(d *bcs.Decoder) (any, error) {
		return decodeValue(d, t)
	}
}

// unsigned converts the numeric shapes JSON and YAML decoders produce and
// checks the result fits in bits.
func unsigned(v any, bits int) (*big.Int, error) {
	var n *big.Int
	switch x := v.(type) {
	case string:
		parsed, err := bcs.ParseInteger(x)
		if err != nil {
			return nil, err
		}
		n = parsed
	case json.Number:
		parsed, err := bcs.ParseInteger(x.String())
		if err != nil {
			return nil, err
		}
		n = parsed
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return nil, fmt.Errorf("%w: %v is not an integer", bcs.ErrInvalidInput, x)
		}
		n, _ = big.NewFloat(x).Int(nil)
	case int:
		n = big.NewInt(int64(x))
	case int64:
		n = big.NewInt(x)
	case uint8:
		n = new(big.Int).SetUint64(uint64(x))
	case uint16:
		n = new(big.Int).SetUint64(uint64(x))
	case uint32:
		n = new(big.Int).SetUint64(uint64(x))
	case uint64:
		n = new(big.Int).SetUint64(x)
	case *big.Int:
		if x == nil {
			return nil, fmt.Errorf("%w: nil integer", bcs.ErrInvalidInput)
		}
		n = x
	default:
		return nil, fmt.Errorf("%w: %T is not an integer", bcs.ErrInvalidInput, v)
	}
	if n.Sign() < 0 || n.BitLen() > bits {
		return nil, fmt.Errorf("%w: %v does not fit in u%d", bcs.ErrValueOutOfRange, n, bits)
	}
	return n, nil
}

func hexBytes(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") {
		return nil, fmt.Errorf("%w: vector<u8> string must be 0x hex", bcs.ErrInvalidInput)
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bcs.ErrInvalidInput, err)
	}
	return b, nil
}

func typeMismatch(t Tag, v any) error {
	return fmt.Errorf("%w: %s cannot hold %T", bcs.ErrInvalidInput, t, v)
}
