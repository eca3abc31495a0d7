package bridge

import (
	"fmt"

	"github.com/eigerco/ibtbridge/internal/crypto"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// Entry functions of the token module.
const (
	FunctionMint   = "mint"
	FunctionBurn   = "burn"
	FunctionBridge = "bridge"
)

type ArgumentKind uint8

const (
	// ArgumentPure carries a BCS encoded value.
	ArgumentPure ArgumentKind = iota
	// ArgumentObject carries the 32 byte id of an on-chain object.
	ArgumentObject
)

func (k ArgumentKind) String() string {
	switch k {
	case ArgumentPure:
		return "pure"
	case ArgumentObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func parseArgumentKind(s string) (ArgumentKind, error) {
	switch s {
	case "pure":
		return ArgumentPure, nil
	case "object":
		return ArgumentObject, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownArgument, s)
	}
}

// Argument is one input of a move call.
type Argument struct {
	Kind  ArgumentKind
	Value []byte
}

func Pure(value []byte) Argument {
	return Argument{Kind: ArgumentPure, Value: value}
}

func Object(id bcs.NativeAddress) Argument {
	return Argument{Kind: ArgumentObject, Value: id[:]}
}

// MarshalBCS writes the kind as an enum variant index followed by the value
// as vector<u8>.
func (a Argument) MarshalBCS(e *bcs.Encoder) error {
	return e.WriteStruct(
		bcs.Field(uint32(a.Kind), (*bcs.Encoder).WriteULEB128),
		bcs.Field(a.Value, (*bcs.Encoder).WriteBytes),
	)
}

func (a *Argument) UnmarshalBCS(d *bcs.Decoder) error {
	var kind uint32
	err := d.ReadStruct(
		bcs.Into(&kind, (*bcs.Decoder).ReadULEB128),
		bcs.Into(&a.Value, (*bcs.Decoder).ReadBytes),
	)
	if err != nil {
		return err
	}
	if kind > uint32(ArgumentObject) {
		return fmt.Errorf("%w: %w: variant %d", bcs.ErrInvalidEncoding, ErrUnknownArgument, kind)
	}
	a.Kind = ArgumentKind(kind)
	return a.validate()
}

// validate checks what every decoder of an argument must enforce: a known
// kind, and a full object id for object arguments.
func (a Argument) validate() error {
	switch a.Kind {
	case ArgumentPure:
		return nil
	case ArgumentObject:
		if len(a.Value) != bcs.NativeAddressLength {
			return fmt.Errorf("%w: object id is %d bytes", bcs.ErrInvalidAddressLength, len(a.Value))
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownArgument, a.Kind)
	}
}

// Call is an unsigned move call against the token module. It is what a
// wallet signs after wrapping it in a transaction.
type Call struct {
	Package   bcs.NativeAddress
	Module    string
	Function  string
	Arguments []Argument
}

func (c Call) Target() string {
	return c.Package.String() + "::" + c.Module + "::" + c.Function
}

func (c Call) MarshalBCS(e *bcs.Encoder) error {
	return e.WriteStruct(
		bcs.Field(c.Package, bcs.WriteValue[bcs.NativeAddress]),
		bcs.Field(c.Module, (*bcs.Encoder).WriteString),
		bcs.Field(c.Function, (*bcs.Encoder).WriteString),
		bcs.Field(c.Arguments, writeArguments),
	)
}

func (c *Call) UnmarshalBCS(d *bcs.Decoder) error {
	return d.ReadStruct(
		bcs.Into(&c.Package, bcs.ReadValue[bcs.NativeAddress]),
		bcs.Into(&c.Module, (*bcs.Decoder).ReadString),
		bcs.Into(&c.Function, (*bcs.Decoder).ReadString),
		bcs.Into(&c.Arguments, readArguments),
	)
}

func writeArguments(e *bcs.Encoder, args []Argument) error {
	return bcs.WriteVector(e, args, bcs.WriteValue[Argument])
}

func readArguments(d *bcs.Decoder) ([]Argument, error) {
	return bcs.ReadVector(d, bcs.ReadValue[Argument])
}

// Encode returns the BCS encoding of the call.
func (c Call) Encode(codec bcs.Codec) ([]byte, error) {
	b, err := codec.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf(errEncodeCall, c.Function, err)
	}
	return b, nil
}

// DecodeCall reads a call and rejects trailing bytes.
func DecodeCall(codec bcs.Codec, data []byte) (Call, error) {
	var c Call
	if err := codec.UnmarshalExact(data, &c); err != nil {
		return Call{}, fmt.Errorf(errDecodeCall, err)
	}
	return c, nil
}

// Digest is the blake2b-256 hash of the call's BCS encoding.
func (c Call) Digest(codec bcs.Codec) (crypto.Hash, error) {
	b, err := c.Encode(codec)
	if err != nil {
		return crypto.Hash{}, err
	}
	return crypto.HashData(b), nil
}
