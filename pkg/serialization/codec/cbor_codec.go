package codec

import (
	"github.com/fxamacker/cbor/v2"
)

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error
	// Core deterministic encoding: equal values always give equal bytes.
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBORCodec implements the Codec interface for CBOR encoding and decoding.
type CBORCodec struct{}

func (c *CBORCodec) Marshal(v any) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

func (c *CBORCodec) Unmarshal(data []byte, v any) error {
	return cborDecMode.Unmarshal(data, v)
}
