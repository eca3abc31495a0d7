package codec

import (
	"errors"
)

var ErrUnsupportedType = errors.New("type not supported by codec")

// Codec encodes values in one wire format.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}
