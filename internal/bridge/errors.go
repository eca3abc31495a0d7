package bridge

import "errors"

var (
	ErrZeroAmount      = errors.New("amount must be greater than zero")
	ErrInvalidConfig   = errors.New("invalid bridge config")
	ErrUnknownFunction = errors.New("unknown bridge function")
	ErrUnknownArgument = errors.New("unknown argument kind")
	ErrDigestMismatch  = errors.New("digest does not match call")
)

const (
	errMissingField  = "%w: %s is not set"
	errBuildCall     = "build %s call: %w"
	errEncodeCall    = "encode %s call: %w"
	errDecodeCall    = "decode call: %w"
	errEnvelopeField = "call envelope: %s: %w"
)
