package bridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ibtbridge/internal/crypto"
	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

func testConfig() Config {
	var cfg Config
	for i := range cfg.PackageID {
		cfg.PackageID[i] = 0xaa
		cfg.BridgeAuthID[i] = 0xbb
	}
	cfg.Module = DefaultModule
	return cfg
}

func testBuilder(t *testing.T) *Builder {
	b, err := NewBuilder(testConfig(), bcs.Default())
	require.NoError(t, err)
	return b
}

func TestNewBuilderValidatesConfig(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *Config)
	}{
		{"missing package", func(c *Config) { c.PackageID = bcs.NativeAddress{} }},
		{"missing auth", func(c *Config) { c.BridgeAuthID = bcs.NativeAddress{} }},
		{"missing module", func(c *Config) { c.Module = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.modify(&cfg)
			_, err := NewBuilder(cfg, bcs.Default())
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestMintLayout(t *testing.T) {
	b := testBuilder(t)
	to := bcs.NativeAddress{31: 0x01}

	call, err := b.Mint(to, bcs.U64String("1000"))
	require.NoError(t, err)
	assert.Equal(t, "0x"+string(bytes.Repeat([]byte("aa"), 32))+"::IBT::mint", call.Target())

	encoded, err := call.Encode(bcs.Default())
	require.NoError(t, err)

	var expected []byte
	expected = append(expected, bytes.Repeat([]byte{0xaa}, 32)...)
	expected = append(expected, 3, 'I', 'B', 'T')
	expected = append(expected, 4, 'm', 'i', 'n', 't')
	expected = append(expected, 3)
	expected = append(expected, 1, 32)
	expected = append(expected, bytes.Repeat([]byte{0xbb}, 32)...)
	expected = append(expected, 0, 32)
	expected = append(expected, to[:]...)
	expected = append(expected, 0, 8, 0xe8, 0x03, 0, 0, 0, 0, 0, 0)
	assert.Equal(t, expected, encoded)

	digest, err := call.Digest(bcs.Default())
	require.NoError(t, err)
	assert.Equal(t, crypto.HashData(expected), digest)
}

func TestBurnAndBridge(t *testing.T) {
	b := testBuilder(t)

	burn, err := b.Burn(bcs.U64(5))
	require.NoError(t, err)
	require.Len(t, burn.Arguments, 2)
	assert.Equal(t, ArgumentObject, burn.Arguments[0].Kind)
	assert.Equal(t, []byte{5, 0, 0, 0, 0, 0, 0, 0}, burn.Arguments[1].Value)

	recipient, err := bcs.ParseForeignAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)
	bridged, err := b.Bridge(bcs.U64(7), recipient)
	require.NoError(t, err)
	require.Len(t, bridged.Arguments, 3)
	assert.Equal(t, FunctionBridge, bridged.Function)
	assert.Equal(t, append([]byte{0x14}, recipient[:]...), bridged.Arguments[2].Value)

	burnDigest, err := burn.Digest(bcs.Default())
	require.NoError(t, err)
	bridgeDigest, err := bridged.Digest(bcs.Default())
	require.NoError(t, err)
	assert.NotEqual(t, burnDigest, bridgeDigest)
}

func TestBuilderErrors(t *testing.T) {
	b := testBuilder(t)

	_, err := b.Burn(bcs.U64(0))
	assert.ErrorIs(t, err, ErrZeroAmount)

	_, err = b.Burn(bcs.U64String("18446744073709551616"))
	assert.ErrorIs(t, err, bcs.ErrValueOutOfRange)

	_, err = b.Bridge(bcs.U64String("ten"), bcs.ForeignAddress{})
	assert.ErrorIs(t, err, bcs.ErrInvalidInput)

	_, err = b.Mint(bcs.NativeAddress{}, bcs.U64(1))
	assert.ErrorIs(t, err, bcs.ErrInvalidInput)
}
