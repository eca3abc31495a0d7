package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs/typetag"
)

func runEncode(e env, args []string) error {
	var typ, value string
	flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	flagSet.StringVar(&typ, "type", "", "type tag of the value")
	flagSet.StringVar(&value, "value", "", "value as JSON")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if typ == "" || value == "" {
		return fmt.Errorf("encode needs --type and --value")
	}

	tag, err := typetag.Parse(typ)
	if err != nil {
		return err
	}
	b, err := typetag.EncodeJSON(bcs.New(e.cfg.Limits()), tag, []byte(value))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, "0x"+hex.EncodeToString(b))
	return err
}

type decodeOutput struct {
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Consumed int    `json:"consumed"`
}

func runDecode(e env, args []string) error {
	var typ, input string
	var exact bool
	flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	flagSet.StringVar(&typ, "type", "", "type tag of the value")
	flagSet.StringVar(&input, "hex", "", "BCS bytes as hex, 0x prefix optional")
	flagSet.BoolVar(&exact, "exact", false, "fail if bytes remain after the value")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if typ == "" {
		return fmt.Errorf("decode needs --type")
	}

	tag, err := typetag.Parse(typ)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(strings.TrimPrefix(input, "0x"))
	if err != nil {
		return fmt.Errorf("%w: %v", bcs.ErrInvalidInput, err)
	}
	v, n, err := typetag.Decode(bcs.New(e.cfg.Limits()), tag, data)
	if err != nil {
		return err
	}
	if exact && n != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", bcs.ErrInvalidEncoding, len(data)-n)
	}
	return writeJSON(e, decodeOutput{Type: tag.String(), Value: v, Consumed: n})
}

func writeJSON(e env, v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
