package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eigerco/ibtbridge/internal/bridge"
	"github.com/eigerco/ibtbridge/pkg/log"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

// Environment variables that override the file.
const (
	EnvPackageID    = "IBT_PACKAGE_ID"
	EnvBridgeAuthID = "IBT_BRIDGE_AUTH_ID"
	EnvModule       = "IBT_MODULE"
	EnvStorePath    = "IBT_STORE_PATH"
	EnvLogLevel     = "IBT_LOG_LEVEL"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the tool configuration as read from YAML.
type Config struct {
	Contract Contract `yaml:"contract"`
	Codec    Codec    `yaml:"codec"`
	Log      Log      `yaml:"log"`
	Store    Store    `yaml:"store"`
}

// Contract identifies the deployed token module.
type Contract struct {
	PackageID    string `yaml:"package_id"`
	BridgeAuthID string `yaml:"bridge_auth_id"`
	Module       string `yaml:"module"`
}

// Codec limits. Zero keeps the default.
type Codec struct {
	MaxSequenceLength uint32 `yaml:"max_sequence_length"`
	MaxContainerDepth uint32 `yaml:"max_container_depth"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Store holds the payload archive location. An empty path keeps the archive
// in memory.
type Store struct {
	Path string `yaml:"path"`
}

// Default returns a configuration with no contract set.
func Default() *Config {
	return &Config{
		Contract: Contract{Module: bridge.DefaultModule},
		Codec: Codec{
			MaxSequenceLength: bcs.DefaultLimits.MaxSequenceLength,
			MaxContainerDepth: bcs.DefaultLimits.MaxContainerDepth,
		},
		Log: Log{Level: "info", Format: "console"},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv(lookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) {
	overrides := []struct {
		name string
		dst  *string
	}{
		{EnvPackageID, &c.Contract.PackageID},
		{EnvBridgeAuthID, &c.Contract.BridgeAuthID},
		{EnvModule, &c.Contract.Module},
		{EnvStorePath, &c.Store.Path},
		{EnvLogLevel, &c.Log.Level},
	}
	for _, o := range overrides {
		if v, ok := lookupEnv(o.name); ok {
			*o.dst = v
		}
	}
}

// Validate checks the fields that are always required. Contract ids are only
// checked for syntax here; Bridge requires them to be set.
func (c *Config) Validate() error {
	if _, err := log.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
	}
	if _, err := log.ParseLoggerType(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log format: %v", ErrInvalidConfig, err)
	}
	if c.Contract.PackageID != "" {
		if _, err := bcs.ParseNativeAddress(c.Contract.PackageID); err != nil {
			return fmt.Errorf("%w: package id: %w", ErrInvalidConfig, err)
		}
	}
	if c.Contract.BridgeAuthID != "" {
		if _, err := bcs.ParseNativeAddress(c.Contract.BridgeAuthID); err != nil {
			return fmt.Errorf("%w: bridge auth id: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Bridge returns the contract section as a bridge.Config.
func (c *Config) Bridge() (bridge.Config, error) {
	var out bridge.Config
	var err error
	if out.PackageID, err = bcs.ParseNativeAddress(c.Contract.PackageID); err != nil {
		return bridge.Config{}, fmt.Errorf("%w: package id: %w", ErrInvalidConfig, err)
	}
	if out.BridgeAuthID, err = bcs.ParseNativeAddress(c.Contract.BridgeAuthID); err != nil {
		return bridge.Config{}, fmt.Errorf("%w: bridge auth id: %w", ErrInvalidConfig, err)
	}
	out.Module = c.Contract.Module
	if err := out.Validate(); err != nil {
		return bridge.Config{}, err
	}
	return out, nil
}

func (c *Config) Limits() bcs.Limits {
	return bcs.Limits{
		MaxSequenceLength: c.Codec.MaxSequenceLength,
		MaxContainerDepth: c.Codec.MaxContainerDepth,
	}
}

// LogOptions converts the log section. Call Validate first.
func (c *Config) LogOptions(out io.Writer) log.Options {
	level, _ := log.ParseLogLevel(c.Log.Level)
	typ, _ := log.ParseLoggerType(c.Log.Format)
	return log.Options{LogLevel: level, Type: typ, Out: out}
}
