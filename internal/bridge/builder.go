package bridge

import (
	"fmt"

	"github.com/eigerco/ibtbridge/pkg/log"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// Builder prepares the arguments of the token module's entry functions.
// It never signs or submits anything.
type Builder struct {
	cfg   Config
	codec bcs.Codec
}

func NewBuilder(cfg Config, codec bcs.Codec) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, codec: codec}, nil
}

func (b *Builder) Config() Config {
	return b.cfg
}

func (b *Builder) Codec() bcs.Codec {
	return b.codec
}

// Mint builds mint(auth, to: address, amount: u64).
func (b *Builder) Mint(to bcs.NativeAddress, amount bcs.U64Input) (Call, error) {
	if to.IsZero() {
		return Call{}, fmt.Errorf(errBuildCall, FunctionMint, fmt.Errorf(errMissingField, bcs.ErrInvalidInput, "recipient"))
	}
	amountArg, err := b.amount(amount)
	if err != nil {
		return Call{}, fmt.Errorf(errBuildCall, FunctionMint, err)
	}
	return b.call(FunctionMint, Pure(to[:]), amountArg), nil
}

// Burn builds burn(auth, amount: u64).
func (b *Builder) Burn(amount bcs.U64Input) (Call, error) {
	amountArg, err := b.amount(amount)
	if err != nil {
		return Call{}, fmt.Errorf(errBuildCall, FunctionBurn, err)
	}
	return b.call(FunctionBurn, amountArg), nil
}

// Bridge builds bridge(auth, amount: u64, recipient: vector<u8>). The
// recipient is the length prefixed 20 byte Ethereum address.
func (b *Builder) Bridge(amount bcs.U64Input, recipient bcs.ForeignAddress) (Call, error) {
	amountArg, err := b.amount(amount)
	if err != nil {
		return Call{}, fmt.Errorf(errBuildCall, FunctionBridge, err)
	}
	e := b.codec.NewEncoder()
	if err := e.WriteForeignAddress(recipient); err != nil {
		return Call{}, fmt.Errorf(errBuildCall, FunctionBridge, err)
	}
	return b.call(FunctionBridge, amountArg, Pure(e.Bytes())), nil
}

func (b *Builder) amount(in bcs.U64Input) (Argument, error) {
	v, err := in.Resolve()
	if err != nil {
		return Argument{}, err
	}
	if v == 0 {
		return Argument{}, ErrZeroAmount
	}
	e := b.codec.NewEncoder()
	if err := e.WriteU64(v); err != nil {
		return Argument{}, err
	}
	return Pure(e.Bytes()), nil
}

func (b *Builder) call(function string, args ...Argument) Call {
	c := Call{
		Package:   b.cfg.PackageID,
		Module:    b.cfg.Module,
		Function:  function,
		Arguments: append([]Argument{Object(b.cfg.BridgeAuthID)}, args...),
	}
	log.Bridge.Debug().
		Str("target", c.Target()).
		Int("arguments", len(c.Arguments)).
		Msg("built call")
	return c
}
