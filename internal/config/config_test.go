package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ibtbridge/internal/bridge"
	"github.com/eigerco/ibtbridge/pkg/log"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

var (
	packageID = "0x" + strings.Repeat("0a", 32)
	authID    = "0x" + strings.Repeat("0b", 32)
)

func noEnv(string) (string, bool) { return "", false }

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, bcs.DefaultLimits, cfg.Limits())

	_, err = cfg.Bridge()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
contract:
  package_id: "`+packageID+`"
  bridge_auth_id: "`+authID+`"
codec:
  max_container_depth: 8
log:
  level: debug
  format: json
store:
  path: /tmp/calls
`)
	cfg, err := load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, bcs.Limits{MaxSequenceLength: bcs.DefaultLimits.MaxSequenceLength, MaxContainerDepth: 8}, cfg.Limits())
	assert.Equal(t, "/tmp/calls", cfg.Store.Path)

	opts := cfg.LogOptions(nil)
	assert.Equal(t, zerolog.DebugLevel, opts.LogLevel)
	assert.Equal(t, log.JSONLogger, opts.Type)

	bc, err := cfg.Bridge()
	require.NoError(t, err)
	assert.Equal(t, bridge.DefaultModule, bc.Module)
	assert.Equal(t, packageID, bc.PackageID.String())
	assert.Equal(t, authID, bc.BridgeAuthID.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "contract:\n  module: FILE\n")
	env := map[string]string{
		EnvPackageID:    packageID,
		EnvBridgeAuthID: authID,
		EnvModule:       "ENV",
		EnvStorePath:    "/var/lib/ibt",
		EnvLogLevel:     "warn",
	}
	cfg, err := load(path, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NoError(t, err)
	assert.Equal(t, "ENV", cfg.Contract.Module)
	assert.Equal(t, "/var/lib/ibt", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Log.Level)

	bc, err := cfg.Bridge()
	require.NoError(t, err)
	assert.Equal(t, packageID, bc.PackageID.String())
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"unknown field", "contract:\n  pkg: 0x1\n"},
		{"bad package id", "contract:\n  package_id: \"0x1234\"\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"bad log format", "log:\n  format: xml\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(writeConfig(t, tc.content), noEnv)
			assert.Error(t, err)
		})
	}

	_, err := load(writeConfig(t, "contract:\n  package_id: \"0x1234\"\n"), noEnv)
	assert.ErrorIs(t, err, bcs.ErrInvalidAddressLength)

	_, err = load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
