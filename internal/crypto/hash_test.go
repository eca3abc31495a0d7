package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDataEmpty(t *testing.T) {
	h := HashData(nil)
	assert.Equal(t, "0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", h.String())
}

func TestKeccakDataEmpty(t *testing.T) {
	h := KeccakData([]byte{})
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", h.String())
}

func TestParseHash(t *testing.T) {
	h := HashData([]byte("ibt"))

	parsed, err := ParseHash(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	parsed, err = ParseHash(h.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	_, err = ParseHash("0x1234")
	assert.Error(t, err)

	_, err = ParseHash("0x" + string(make([]byte, 64)))
	assert.Error(t, err)
}
