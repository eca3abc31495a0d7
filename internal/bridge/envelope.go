package bridge

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eigerco/ibtbridge/internal/crypto"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// Envelopes hand a prepared call to signing tools. They carry the call's
// fields and its digest; the BCS encoding stays the source of truth.

var cborCodec = &codec.CBORCodec{}

type cborArgument struct {
	_     struct{} `cbor:",toarray"`
	Kind  uint8
	Value []byte
}

type cborCall struct {
	Package   []byte         `cbor:"1,keyasint"`
	Module    string         `cbor:"2,keyasint"`
	Function  string         `cbor:"3,keyasint"`
	Arguments []cborArgument `cbor:"4,keyasint"`
	Digest    []byte         `cbor:"5,keyasint,omitempty"`
}

// MarshalCBOR encodes the call as a map with integer keys, using core
// deterministic encoding so equal calls give equal bytes.
func (c Call) MarshalCBOR() ([]byte, error) {
	digest, err := c.Digest(bcs.Default())
	if err != nil {
		return nil, err
	}
	env := cborCall{
		Package:   c.Package[:],
		Module:    c.Module,
		Function:  c.Function,
		Arguments: make([]cborArgument, len(c.Arguments)),
		Digest:    digest[:],
	}
	for i, a := range c.Arguments {
		env.Arguments[i] = cborArgument{Kind: uint8(a.Kind), Value: a.Value}
	}
	return cborCodec.Marshal(env)
}

// UnmarshalCBOR decodes an envelope. A digest that does not match the
// decoded call is rejected.
func (c *Call) UnmarshalCBOR(data []byte) error {
	var env cborCall
	if err := cborCodec.Unmarshal(data, &env); err != nil {
		return fmt.Errorf(errEnvelopeField, "cbor", err)
	}
	if len(env.Package) != bcs.NativeAddressLength {
		return fmt.Errorf(errEnvelopeField, "package", bcs.ErrInvalidAddressLength)
	}
	out := Call{
		Module:    env.Module,
		Function:  env.Function,
		Arguments: make([]Argument, len(env.Arguments)),
	}
	copy(out.Package[:], env.Package)
	for i, a := range env.Arguments {
		arg := Argument{Kind: ArgumentKind(a.Kind), Value: a.Value}
		if err := arg.validate(); err != nil {
			return fmt.Errorf(errEnvelopeField, "arguments", err)
		}
		out.Arguments[i] = arg
	}
	if err := out.checkDigest(env.Digest); err != nil {
		return err
	}
	*c = out
	return nil
}

type jsonArgument struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type jsonCall struct {
	Target    string         `json:"target"`
	Package   string         `json:"package"`
	Module    string         `json:"module"`
	Function  string         `json:"function"`
	Arguments []jsonArgument `json:"arguments"`
	Digest    string         `json:"digest,omitempty"`
}

// MarshalJSON renders byte fields as 0x hex.
func (c Call) MarshalJSON() ([]byte, error) {
	digest, err := c.Digest(bcs.Default())
	if err != nil {
		return nil, err
	}
	env := jsonCall{
		Target:    c.Target(),
		Package:   c.Package.String(),
		Module:    c.Module,
		Function:  c.Function,
		Arguments: make([]jsonArgument, len(c.Arguments)),
		Digest:    digest.String(),
	}
	for i, a := range c.Arguments {
		env.Arguments[i] = jsonArgument{Kind: a.Kind.String(), Value: "0x" + hex.EncodeToString(a.Value)}
	}
	return json.Marshal(env)
}

func (c *Call) UnmarshalJSON(data []byte) error {
	var env jsonCall
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf(errEnvelopeField, "json", err)
	}
	pkg, err := bcs.ParseNativeAddress(env.Package)
	if err != nil {
		return fmt.Errorf(errEnvelopeField, "package", err)
	}
	out := Call{
		Package:   pkg,
		Module:    env.Module,
		Function:  env.Function,
		Arguments: make([]Argument, len(env.Arguments)),
	}
	for i, a := range env.Arguments {
		kind, err := parseArgumentKind(a.Kind)
		if err != nil {
			return fmt.Errorf(errEnvelopeField, "arguments", err)
		}
		value, err := hex.DecodeString(strings.TrimPrefix(a.Value, "0x"))
		if err != nil {
			return fmt.Errorf(errEnvelopeField, "arguments", fmt.Errorf("%w: %v", bcs.ErrInvalidInput, err))
		}
		arg := Argument{Kind: kind, Value: value}
		if err := arg.validate(); err != nil {
			return fmt.Errorf(errEnvelopeField, "arguments", err)
		}
		out.Arguments[i] = arg
	}

	var digest []byte
	if env.Digest != "" {
		h, err := crypto.ParseHash(env.Digest)
		if err != nil {
			return fmt.Errorf(errEnvelopeField, "digest", err)
		}
		digest = h[:]
	}
	if err := out.checkDigest(digest); err != nil {
		return err
	}
	*c = out
	return nil
}

// checkDigest accepts an absent digest.
func (c Call) checkDigest(want []byte) error {
	if len(want) == 0 {
		return nil
	}
	got, err := c.Digest(bcs.Default())
	if err != nil {
		return err
	}
	if string(got[:]) != string(want) {
		return fmt.Errorf(errEnvelopeField, "digest", fmt.Errorf("%w: got %s", ErrDigestMismatch, got))
	}
	return nil
}
