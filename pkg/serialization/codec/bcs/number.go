package bcs

import (
	"fmt"
	"math/big"
)

type u64Kind uint8

const (
	u64Exact u64Kind = iota
	u64Decimal
	u64Big
)

// U64Input is a u64 argument as callers hold it: an exact integer, a decimal
// string or an arbitrary precision integer. The zero value is exact 0.
type U64Input struct {
	kind    u64Kind
	exact   uint64
	decimal string
	big     *big.Int
}

func U64(v uint64) U64Input {
	return U64Input{kind: u64Exact, exact: v}
}

// U64String wraps a decimal string. It is parsed by Resolve.
func U64String(s string) U64Input {
	return U64Input{kind: u64Decimal, decimal: s}
}

func U64Big(v *big.Int) U64Input {
	return U64Input{kind: u64Big, big: v}
}

// Resolve validates the input and returns it as a uint64. Non-numeric strings
// fail with ErrInvalidInput, negative or too large values with ErrValueOutOfRange.
func (in U64Input) Resolve() (uint64, error) {
	switch in.kind {
	case u64Exact:
		return in.exact, nil
	case u64Decimal:
		n, err := ParseInteger(in.decimal)
		if err != nil {
			return 0, err
		}
		return bigToU64(n)
	case u64Big:
		return bigToU64(in.big)
	default:
		return 0, fmt.Errorf("%w: unknown u64 input kind %d", ErrInvalidInput, in.kind)
	}
}

func (in U64Input) String() string {
	switch in.kind {
	case u64Decimal:
		return in.decimal
	case u64Big:
		if in.big == nil {
			return "<nil>"
		}
		return in.big.String()
	default:
		return fmt.Sprintf("%d", in.exact)
	}
}

// UnmarshalText lets flag and config decoders fill a U64Input from text.
func (in *U64Input) UnmarshalText(text []byte) error {
	*in = U64String(string(text))
	_, err := in.Resolve()
	return err
}

// ParseInteger parses a base 10 integer of any size: an optional minus sign
// followed by digits, nothing else. Sign and range checks are left to the
// caller.
func ParseInteger(s string) (*big.Int, error) {
	if s == "" || s[0] == '+' {
		return nil, fmt.Errorf(errInvalidNumber, ErrInvalidInput, s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf(errInvalidNumber, ErrInvalidInput, s)
	}
	return n, nil
}

// ParseU128 parses a decimal string and checks it fits in 128 unsigned bits.
func ParseU128(s string) (*big.Int, error) {
	n, err := ParseInteger(s)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 || n.Cmp(maxU128) > 0 {
		return nil, fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, n, 128)
	}
	return n, nil
}

func bigToU64(n *big.Int) (uint64, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil u64", ErrInvalidInput)
	}
	if n.Sign() < 0 || !n.IsUint64() {
		return 0, fmt.Errorf(errOutOfRangeWidth, ErrValueOutOfRange, n, 64)
	}
	return n.Uint64(), nil
}
