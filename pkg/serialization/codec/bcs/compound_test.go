package bcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ibtbridge/pkg/serialization/codec/bcs"
)

func TestVectorRoundTrip(t *testing.T) {
	c := bcs.Default()
	values := []uint64{1, 2, 1 << 40}

	b, err := bcs.EncodeVector(c, values, (*bcs.Encoder).WriteU64, true)
	require.NoError(t, err)
	assert.Equal(t, byte(3), b[0])
	assert.Len(t, b, 1+3*8)

	// The length prefix is ULEB128 on both paths, so decode inverts encode.
	got, n, err := bcs.DecodeVector(c, b, (*bcs.Decoder).ReadU64)
	require.NoError(t, err)
	assert.Equal(t, values, got)
	assert.Equal(t, len(b), n)
}

func TestVectorLongPrefixRoundTrip(t *testing.T) {
	c := bcs.Default()
	values := make([]bool, 300)
	values[299] = true

	b, err := bcs.EncodeVector(c, values, (*bcs.Encoder).WriteBool, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xac, 0x02}, b[:2])

	got, n, err := bcs.DecodeVector(c, b, (*bcs.Decoder).ReadBool)
	require.NoError(t, err)
	assert.Equal(t, values, got)
	assert.Equal(t, 2+300, n)
}

func TestVectorWithoutPrefix(t *testing.T) {
	c := bcs.Default()
	values := []uint32{7, 8}

	b, err := bcs.EncodeVector(c, values, (*bcs.Encoder).WriteU32, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0, 8, 0, 0, 0}, b)

	got, n, err := bcs.DecodeVectorN(c, b, len(values), (*bcs.Decoder).ReadU32)
	require.NoError(t, err)
	assert.Equal(t, values, got)
	assert.Equal(t, 8, n)
}

func TestEmptyVector(t *testing.T) {
	c := bcs.Default()

	b, err := bcs.EncodeVector(c, []uint8{}, (*bcs.Encoder).WriteU8, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, b)

	got, n, err := bcs.DecodeVector(c, b, (*bcs.Decoder).ReadU8)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, n)
}

func TestVectorTooLong(t *testing.T) {
	c := bcs.Default()

	_, err := bcs.EncodeVector(c, make([]bool, 1_000_001), (*bcs.Encoder).WriteBool, true)
	assert.ErrorIs(t, err, bcs.ErrSequenceTooLong)

	_, err = bcs.EncodeVector(c, make([]bool, 1_000_001), (*bcs.Encoder).WriteBool, false)
	assert.ErrorIs(t, err, bcs.ErrSequenceTooLong)

	small := bcs.New(bcs.Limits{MaxSequenceLength: 2})
	_, err = small.EncodeString("abc")
	assert.ErrorIs(t, err, bcs.ErrSequenceTooLong)

	// The declared length is checked before any element is read.
	_, _, err = bcs.DecodeVector(small, []byte{0x03}, (*bcs.Decoder).ReadU8)
	assert.ErrorIs(t, err, bcs.ErrSequenceTooLong)
}

func TestVectorElementErrors(t *testing.T) {
	c := bcs.Default()

	_, _, err := bcs.DecodeVector(c, []byte{0x02, 0x01, 0x07}, (*bcs.Decoder).ReadBool)
	assert.ErrorIs(t, err, bcs.ErrInvalidEncoding)
	assert.Contains(t, err.Error(), "decoding element 1")

	_, _, err = bcs.DecodeVector(c, []byte{0x02, 0x01}, (*bcs.Decoder).ReadBool)
	assert.ErrorIs(t, err, bcs.ErrTruncatedInput)
}

func TestNestedVector(t *testing.T) {
	c := bcs.Default()
	values := [][]byte{{1, 2}, {}, {3}}

	b, err := bcs.EncodeVector(c, values, (*bcs.Encoder).WriteBytes, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 2, 1, 2, 0, 1, 3}, b)

	got, n, err := bcs.DecodeVector(c, b, (*bcs.Decoder).ReadBytes)
	require.NoError(t, err)
	assert.Equal(t, values, got)
	assert.Equal(t, len(b), n)
}

func TestOption(t *testing.T) {
	c := bcs.Default()

	b, err := bcs.EncodeOption[uint8](c, nil, (*bcs.Encoder).WriteU8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, b)

	five := uint8(5)
	b, err = bcs.EncodeOption(c, &five, (*bcs.Encoder).WriteU8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x05}, b)

	got, n, err := bcs.DecodeOption(c, b, (*bcs.Decoder).ReadU8)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, five, *got)
	assert.Equal(t, 2, n)

	got, n, err = bcs.DecodeOption(c, []byte{0x00, 0x99}, (*bcs.Decoder).ReadU8)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, n)

	_, _, err = bcs.DecodeOption(c, []byte{0x02, 0x05}, (*bcs.Decoder).ReadU8)
	assert.ErrorIs(t, err, bcs.ErrInvalidEncoding)

	_, _, err = bcs.DecodeOption(c, []byte{0x01}, (*bcs.Decoder).ReadU8)
	assert.ErrorIs(t, err, bcs.ErrTruncatedInput)
}

func TestOptionOfString(t *testing.T) {
	c := bcs.Default()
	s := "ibt"

	b, err := bcs.EncodeOption(c, &s, (*bcs.Encoder).WriteString)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x03, 'i', 'b', 't'}, b)

	got, n, err := bcs.DecodeOption(c, b, (*bcs.Decoder).ReadString)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s, *got)
	assert.Equal(t, 5, n)
}

func TestStruct(t *testing.T) {
	c := bcs.Default()

	b, err := c.EncodeStruct(
		[]any{true, uint32(300), "hi"},
		[]bcs.EncodeFunc[any]{
			bcs.Erase((*bcs.Encoder).WriteBool),
			bcs.Erase((*bcs.Encoder).WriteU32),
			bcs.Erase((*bcs.Encoder).WriteString),
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x2c, 0x01, 0x00, 0x00, 0x02, 'h', 'i'}, b)

	var (
		flag  bool
		count uint32
		label string
	)
	n, err := c.DecodeStruct(b,
		bcs.Into(&flag, (*bcs.Decoder).ReadBool),
		bcs.Into(&count, (*bcs.Decoder).ReadU32),
		bcs.Into(&label, (*bcs.Decoder).ReadString),
	)
	require.NoError(t, err)
	assert.True(t, flag)
	assert.Equal(t, uint32(300), count)
	assert.Equal(t, "hi", label)
	assert.Equal(t, len(b), n)
}

func TestStructErrors(t *testing.T) {
	c := bcs.Default()

	_, err := c.EncodeStruct([]any{true}, nil)
	assert.ErrorIs(t, err, bcs.ErrFieldCountMismatch)

	_, err = c.EncodeStruct([]any{"not a bool"}, []bcs.EncodeFunc[any]{bcs.Erase((*bcs.Encoder).WriteBool)})
	assert.ErrorIs(t, err, bcs.ErrInvalidInput)

	var v uint64
	_, err = c.DecodeStruct([]byte{1, 2}, bcs.Into(&v, (*bcs.Decoder).ReadU64))
	assert.ErrorIs(t, err, bcs.ErrTruncatedInput)
	assert.Contains(t, err.Error(), "decoding field 0")
}

type transfer struct {
	Recipient bcs.NativeAddress
	Amount    uint64
	Memo      *string
}

func (tr transfer) MarshalBCS(e *bcs.Encoder) error {
	return e.WriteStruct(
		bcs.Field(tr.Recipient, bcs.WriteValue[bcs.NativeAddress]),
		bcs.Field(tr.Amount, (*bcs.Encoder).WriteU64),
		func(e *bcs.Encoder) error { return bcs.WriteOption(e, tr.Memo, (*bcs.Encoder).WriteString) },
	)
}

func (tr *transfer) UnmarshalBCS(d *bcs.Decoder) error {
	return d.ReadStruct(
		bcs.Into(&tr.Recipient, bcs.ReadValue[bcs.NativeAddress]),
		bcs.Into(&tr.Amount, (*bcs.Decoder).ReadU64),
		bcs.Into(&tr.Memo, func(d *bcs.Decoder) (*string, error) {
			return bcs.ReadOption(d, (*bcs.Decoder).ReadString)
		}),
	)
}

func TestMarshalerRoundTrip(t *testing.T) {
	c := bcs.Default()
	memo := "bridge"
	original := transfer{Amount: 42, Memo: &memo}
	original.Recipient[31] = 0x01

	b, err := c.Marshal(original)
	require.NoError(t, err)
	assert.Len(t, b, 32+8+1+1+len(memo))

	var decoded transfer
	n, err := c.Unmarshal(b, &decoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
	assert.Equal(t, len(b), n)

	require.NoError(t, c.UnmarshalExact(b, &decoded))
	err = c.UnmarshalExact(append(b, 0x00), &decoded)
	assert.ErrorIs(t, err, bcs.ErrInvalidEncoding)
}

func TestVectorOfMarshalers(t *testing.T) {
	c := bcs.Default()
	values := []transfer{{Amount: 1}, {Amount: 2}}

	b, err := bcs.EncodeVector(c, values, bcs.WriteValue[transfer], true)
	require.NoError(t, err)

	got, n, err := bcs.DecodeVector(c, b, bcs.ReadValue[transfer])
	require.NoError(t, err)
	assert.Equal(t, values, got)
	assert.Equal(t, len(b), n)
}
