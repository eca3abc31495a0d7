package bcs

import "errors"

var (
	// ErrValueOutOfRange is returned when a numeric input does not fit the target width.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrInvalidInput is returned for malformed textual input such as a non-numeric amount or non-hex address.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidAddressLength is returned when an address does not have the fixed width of its kind.
	ErrInvalidAddressLength = errors.New("invalid address length")
	// ErrInvalidChecksum is returned when a mixed-case foreign address fails its EIP-55 checksum.
	ErrInvalidChecksum    = errors.New("invalid address checksum")
	ErrSequenceTooLong    = errors.New("sequence too long")
	ErrTruncatedInput     = errors.New("truncated input")
	ErrInvalidEncoding    = errors.New("invalid encoding")
	ErrContainerTooDeep   = errors.New("container too deep")
	ErrFieldCountMismatch = errors.New("field count mismatch")
)

const (
	errTruncated         = "%w: need %d bytes, %d remaining"
	errTruncatedULEB128  = "%w: uleb128 not terminated after %d bytes"
	errNonCanonicalULEB  = "%w: non-canonical uleb128"
	errULEB128Overflow   = "%w: uleb128 exceeds 32 bits"
	errOutOfRangeWidth   = "%w: %v does not fit in %d bits"
	errInvalidBool       = "%w: bool byte 0x%02x"
	errInvalidOptionTag  = "%w: option tag 0x%02x"
	errInvalidUTF8       = "%w: string is not valid utf-8"
	errSequenceTooLong   = "%w: %d elements, max %d"
	errContainerTooDeep  = "%w: max depth %d"
	errInvalidNumber     = "%w: %q is not a decimal integer"
	errAddressLength     = "%w: %s address needs %d hex characters, got %d"
	errAddressHex        = "%w: %s address: %v"
	errForeignLengthByte = "%w: foreign address length byte %d"
	errFieldCount        = "%w: %d fields, %d encoders"
	errTrailingBytes     = "%w: %d trailing bytes"
	errEncodingElement   = "encoding element %d: %w"
	errDecodingElement   = "decoding element %d: %w"
	errEncodingField     = "encoding field %d: %w"
	errDecodingField     = "decoding field %d: %w"
	errEncodingOptionVal = "encoding option value: %w"
	errDecodingOptionVal = "decoding option value: %w"
)
