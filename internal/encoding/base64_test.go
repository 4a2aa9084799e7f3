package encoding

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", []byte{}, ""},
		{"ascii", []byte("1234"), "MTIzNA"},
		{"padding boundary 1", []byte("a"), "YQ"},
		{"padding boundary 2", []byte("ab"), "YWI"},
		{"padding boundary 3", []byte("abc"), "YWJj"},
		{"url-unsafe bytes", []byte{0xfb, 0xff}, "-_8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xff, 0xfe, 0xfd},
		[]byte("hello world"),
		bytes.Repeat([]byte{0xab}, 65),
	}

	// Cover every padding-boundary length.
	for n := 0; n < 8; n++ {
		inputs = append(inputs, bytes.Repeat([]byte{0x2b}, n))
	}

	for _, in := range inputs {
		got, err := Decode(Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestDecodeAcceptsPadding(t *testing.T) {
	got, err := Decode("MTIzNA==")
	require.NoError(t, err)
	assert.Equal(t, []byte("1234"), got)
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"standard alphabet plus", "MT+zNA"},
		{"standard alphabet slash", "MT/zNA"},
		{"whitespace", "MTIz NA"},
		{"null byte", "MTIz\x00NA"},
		{"interior padding", "MT==NA"},
		{"padding only", "===="},
		{"impossible length", "MTIzN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			require.Error(t, err)
			assert.Nil(t, got, "invalid input must not decode to a value")
		})
	}
}

func TestDecodeRejectsOversizedSegment(t *testing.T) {
	_, err := Decode(strings.Repeat("A", MaxSegmentLength+1))
	assert.ErrorIs(t, err, ErrSegmentTooLarge)
}
