package bcs

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/eigerco/ibtbridge/internal/crypto"
)

const (
	// NativeAddressLength is the width of a Sui account or object id.
	NativeAddressLength = 32
	// ForeignAddressLength is the width of an Ethereum account.
	ForeignAddressLength = 20
)

// NativeAddress is a 32 byte ledger address, encoded as its raw bytes.
type NativeAddress [NativeAddressLength]byte

// ParseNativeAddress accepts exactly 64 hex characters with an optional 0x prefix.
func ParseNativeAddress(s string) (NativeAddress, error) {
	var a NativeAddress
	if err := decodeHexAddress(a[:], s, "native"); err != nil {
		return NativeAddress{}, err
	}
	return a, nil
}

func (a NativeAddress) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a NativeAddress) IsZero() bool {
	return a == NativeAddress{}
}

func (a NativeAddress) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *NativeAddress) UnmarshalText(text []byte) error {
	parsed, err := ParseNativeAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a NativeAddress) MarshalBCS(e *Encoder) error {
	return e.WriteNativeAddress(a)
}

func (a *NativeAddress) UnmarshalBCS(d *Decoder) error {
	v, err := d.ReadNativeAddress()
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ForeignAddress is a 20 byte Ethereum address. On the wire it travels as a
// vector<u8>, so it is framed with a single length byte.
type ForeignAddress [ForeignAddressLength]byte

// ParseForeignAddress accepts 40 hex characters with an optional 0x prefix.
// All-lowercase and all-uppercase input is taken as is; mixed case input must
// carry a valid EIP-55 checksum.
func ParseForeignAddress(s string) (ForeignAddress, error) {
	var a ForeignAddress
	if err := decodeHexAddress(a[:], s, "foreign"); err != nil {
		return ForeignAddress{}, err
	}
	digits := strings.TrimPrefix(s, "0x")
	if isMixedCase(digits) && a.checksumDigits() != digits {
		return ForeignAddress{}, fmt.Errorf("%w: %s", ErrInvalidChecksum, s)
	}
	return a, nil
}

// Checksum renders the address in EIP-55 mixed case form.
func (a ForeignAddress) Checksum() string {
	return "0x" + a.checksumDigits()
}

func (a ForeignAddress) String() string {
	return a.Checksum()
}

func (a ForeignAddress) MarshalText() ([]byte, error) {
	return []byte(a.Checksum()), nil
}

func (a *ForeignAddress) UnmarshalText(text []byte) error {
	parsed, err := ParseForeignAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a ForeignAddress) MarshalBCS(e *Encoder) error {
	return e.WriteForeignAddress(a)
}

func (a *ForeignAddress) UnmarshalBCS(d *Decoder) error {
	v, err := d.ReadForeignAddress()
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// checksumDigits uppercases every hex letter whose nibble in the keccak-256
// hash of the lowercase address is 8 or more.
func (a ForeignAddress) checksumDigits() string {
	lower := []byte(hex.EncodeToString(a[:]))
	hash := crypto.KeccakData(lower)
	for i, c := range lower {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := hash[i/2] >> 4
		if i%2 == 1 {
			nibble = hash[i/2] & 0x0f
		}
		if nibble >= 8 {
			lower[i] = c - 'a' + 'A'
		}
	}
	return string(lower)
}

func decodeHexAddress(dst []byte, s, kind string) error {
	digits := strings.TrimPrefix(s, "0x")
	if len(digits) != 2*len(dst) {
		return fmt.Errorf(errAddressLength, ErrInvalidAddressLength, kind, 2*len(dst), len(digits))
	}
	if _, err := hex.Decode(dst, []byte(digits)); err != nil {
		return fmt.Errorf(errAddressHex, ErrInvalidInput, kind, err)
	}
	return nil
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
