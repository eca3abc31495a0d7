package serialization

import (
	"fmt"

	"github.com/eigerco/ibtbridge/pkg/serialization/codec"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// Format names accepted by ForFormat.
const (
	FormatBCS  = "bcs"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Serializer provides methods to encode and decode using a specified codec.
type Serializer struct {
	codec codec.Codec
}

// NewSerializer initializes a new Serializer with the given codec.
func NewSerializer(c codec.Codec) *Serializer {
	return &Serializer{codec: c}
}

// ForFormat returns a Serializer for a named format. BCS uses the limits of c.
func ForFormat(name string, c bcs.Codec) (*Serializer, error) {
	switch name {
	case FormatBCS:
		return NewSerializer(codec.NewBCSCodec(c)), nil
	case FormatJSON:
		return NewSerializer(&codec.JSONCodec{}), nil
	case FormatCBOR:
		return NewSerializer(&codec.CBORCodec{}), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

// Encode serializes the given value using the codec.
func (s *Serializer) Encode(v any) ([]byte, error) {
	return s.codec.Marshal(v)
}

// Decode deserializes the given data into the specified value using the codec.
func (s *Serializer) Decode(data []byte, v any) error {
	return s.codec.Unmarshal(data, v)
}
