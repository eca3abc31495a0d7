package bridge

import (
	"fmt"

	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// DefaultModule is the Move module holding the bridged token.
const DefaultModule = "IBT"

// Config names the deployed package and the shared object that authorises
// mints and burns.
type Config struct {
	PackageID    bcs.NativeAddress
	BridgeAuthID bcs.NativeAddress
	Module       string
}

func (c Config) Validate() error {
	if c.PackageID.IsZero() {
		return fmt.Errorf(errMissingField, ErrInvalidConfig, "package id")
	}
	if c.BridgeAuthID.IsZero() {
		return fmt.Errorf(errMissingField, ErrInvalidConfig, "bridge auth id")
	}
	if c.Module == "" {
		return fmt.Errorf(errMissingField, ErrInvalidConfig, "module")
	}
	return nil
}
