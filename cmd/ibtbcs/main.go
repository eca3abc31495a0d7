package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/eigerco/ibtbridge/internal/config"
	"github.com/eigerco/ibtbridge/pkg/log"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// env is what every subcommand gets: the loaded configuration and where to
// write results.
type env struct {
	cfg    *config.Config
	stdout io.Writer
}

type command func(e env, args []string) error

var commands = map[string]command{
	"encode": runEncode,
	"decode": runDecode,
	"call":   runCall,
	"calls":  runCalls,
}

func run(args []string, stdout, stderr io.Writer) error {
	var configPath, logLevel, logFormat string

	flagSet := pflag.NewFlagSet("ibtbcs", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file")
	flagSet.StringVar(&logLevel, "log-level", "", "log level, overrides the config file")
	flagSet.StringVar(&logFormat, "log-format", "", "log format: console or json")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		printHelp(stderr, flagSet)
		return fmt.Errorf("unknown command %q", rest[0])
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Init(cfg.LogOptions(stderr))
	log.CLI.Debug().Str("command", rest[0]).Msg("running")

	return cmd(env{cfg: cfg, stdout: stdout}, rest[1:])
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `ibtbcs encodes and decodes BCS values and prepares IBT bridge calls.

Usage:
  ibtbcs [flags] <command> [command flags]

Commands:
  encode --type <tag> --value <json>     encode a JSON value as BCS hex
  decode --type <tag> --hex <bytes>      decode BCS hex into JSON
  call mint --to <address> --amount <n>
  call burn --amount <n>
  call bridge --amount <n> --recipient <eth address>
                                         prepare a call (--format hex|json|cbor, --store)
  calls list                             list archived calls
  calls show <digest>                    print an archived call as JSON
  calls delete <digest>                  remove an archived call

Type tags: bool u8 u16 u32 u64 u128 address eth_address string vector<T> option<T>

Flags:
`)
	fmt.Fprint(w, flagSet.FlagUsages())
}
