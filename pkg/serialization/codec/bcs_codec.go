package codec

import (
	"fmt"

	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// BCSCodec implements the Codec interface for types that know their own BCS
// layout. Unmarshal rejects trailing bytes.
type BCSCodec struct {
	c bcs.Codec
}

func NewBCSCodec(c bcs.Codec) *BCSCodec {
	return &BCSCodec{c: c}
}

func (b *BCSCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(bcs.Marshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %T has no BCS layout", ErrUnsupportedType, v)
	}
	return b.c.Marshal(m)
}

func (b *BCSCodec) Unmarshal(data []byte, v any) error {
	u, ok := v.(bcs.Unmarshaler)
	if !ok {
		return fmt.Errorf("%w: %T has no BCS layout", ErrUnsupportedType, v)
	}
	return b.c.UnmarshalExact(data, u)
}
