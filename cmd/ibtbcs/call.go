package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/eigerco/ibtbridge/internal/bridge"
	"github.com/eigerco/ibtbridge/internal/config"
	"github.com/eigerco/ibtbridge/internal/crypto"
	"github.com/eigerco/ibtbridge/internal/store"
	"github.com/eigerco/ibtbridge/pkg/db/pebble"
	"github.com/eigerco/ibtbridge/pkg/log"
	"github.com/eigerco/ibtbridge/pkg/serialization"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

var errNoStorePath = errors.New("payload store path is not set: use store.path in the config file or " + config.EnvStorePath)

func runCall(e env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("call needs a function: mint, burn or bridge")
	}
	function := args[0]
	switch function {
	case bridge.FunctionMint, bridge.FunctionBurn, bridge.FunctionBridge:
	default:
		return fmt.Errorf("%w: %q", bridge.ErrUnknownFunction, function)
	}

	var to, recipient, amountText, format string
	var save bool
	flagSet := pflag.NewFlagSet("call "+function, pflag.ContinueOnError)
	flagSet.StringVar(&to, "to", "", "mint recipient address")
	flagSet.StringVar(&recipient, "recipient", "", "Ethereum recipient of a bridge transfer")
	flagSet.StringVar(&amountText, "amount", "", "token amount as a decimal integer")
	flagSet.StringVar(&format, "format", "hex", "output format: hex, json or cbor")
	flagSet.BoolVar(&save, "store", false, "archive the call in the payload store")
	if err := flagSet.Parse(args[1:]); err != nil {
		return err
	}

	switch format {
	case "hex", "json", "cbor":
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	amount := bcs.U64String(amountText)

	cfg, err := e.cfg.Bridge()
	if err != nil {
		return err
	}
	codec := bcs.New(e.cfg.Limits())
	builder, err := bridge.NewBuilder(cfg, codec)
	if err != nil {
		return err
	}

	var call bridge.Call
	switch function {
	case bridge.FunctionMint:
		addr, err := bcs.ParseNativeAddress(to)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		call, err = builder.Mint(addr, amount)
		if err != nil {
			return err
		}
	case bridge.FunctionBurn:
		call, err = builder.Burn(amount)
		if err != nil {
			return err
		}
	case bridge.FunctionBridge:
		addr, err := bcs.ParseForeignAddress(recipient)
		if err != nil {
			return fmt.Errorf("--recipient: %w", err)
		}
		call, err = builder.Bridge(amount, addr)
		if err != nil {
			return err
		}
	}

	if save {
		if err := withCalls(e, codec, func(calls *store.Calls) error {
			digest, err := calls.PutCall(call)
			if err != nil {
				return err
			}
			log.CLI.Info().Str("digest", digest.String()).Str("target", call.Target()).Msg("archived call")
			return nil
		}); err != nil {
			return err
		}
	}
	return writeCall(e, codec, call, format)
}

// writeCall prints hex as the 0x encoded BCS bytes, json as one line and
// cbor as raw bytes.
func writeCall(e env, codec bcs.Codec, call bridge.Call, format string) error {
	name := format
	if format == "hex" {
		name = serialization.FormatBCS
	}
	s, err := serialization.ForFormat(name, codec)
	if err != nil {
		return err
	}
	b, err := s.Encode(call)
	if err != nil {
		return err
	}
	switch format {
	case "hex":
		_, err = fmt.Fprintln(e.stdout, "0x"+hex.EncodeToString(b))
	case "json":
		_, err = fmt.Fprintln(e.stdout, string(b))
	default:
		_, err = e.stdout.Write(b)
	}
	return err
}

func runCalls(e env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("calls needs list, show or delete")
	}
	codec := bcs.New(e.cfg.Limits())

	switch args[0] {
	case "list":
		return withCalls(e, codec, func(calls *store.Calls) error {
			stored, err := calls.ListCalls()
			if err != nil {
				return err
			}
			for _, s := range stored {
				if _, err := fmt.Fprintf(e.stdout, "%s %s\n", s.Digest, s.Call.Target()); err != nil {
					return err
				}
			}
			return nil
		})
	case "show", "delete":
		if len(args) != 2 {
			return fmt.Errorf("calls %s needs a digest", args[0])
		}
		digest, err := crypto.ParseHash(args[1])
		if err != nil {
			return err
		}
		return withCalls(e, codec, func(calls *store.Calls) error {
			if args[0] == "delete" {
				return calls.DeleteCall(digest)
			}
			call, err := calls.GetCall(digest)
			if err != nil {
				return err
			}
			return writeJSON(e, call)
		})
	default:
		return fmt.Errorf("unknown calls command %q", args[0])
	}
}

// withCalls opens the payload store. An in-memory store would lose every
// call when the command exits, so a path is required.
func withCalls(e env, codec bcs.Codec, fn func(calls *store.Calls) error) error {
	if e.cfg.Store.Path == "" {
		return errNoStorePath
	}
	kv, err := pebble.NewKVStore(e.cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.CLI.Error().Err(err).Msg("closing payload store")
		}
	}()
	return fn(store.NewCalls(kv, codec))
}
