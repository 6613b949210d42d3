package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odysseytools/gff/format"
)

// samplePayload mimics an encoded resource buffer: repetitive label-like
// text plus some binary field data.
func samplePayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 64; i++ {
		buf.WriteString("LocalizedName\x00\x00\x00")
		buf.WriteString("Appearance_Type\x00")
		buf.Write([]byte{byte(i), 0x00, 0x10, 0xFF})
	}

	return buf.Bytes()
}

func TestCodecRoundTrip(t *testing.T) {
	payload := samplePayload()

	tests := []struct {
		name  string
		ctype format.CompressionType
	}{
		{"none", format.CompressionNone},
		{"zstd", format.CompressionZstd},
		{"s2", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.ctype)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCodecCompressesRepetitiveData(t *testing.T) {
	payload := samplePayload()

	for _, ctype := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		assert.Less(t, len(compressed), len(payload), "%s should shrink repetitive data", ctype)
	}
}

func TestGetCodecUnknownType(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xEE))
	require.Error(t, err)
}

func TestNoOpPassthrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := []byte("untouched")

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func TestEmptyInput(t *testing.T) {
	for _, ctype := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		assert.Empty(t, restored)
	}
}

func TestZstdRejectsGarbage(t *testing.T) {
	codec := NewZstdCompressor()
	_, err := codec.Decompress([]byte("definitely not a zstd frame"))
	require.Error(t, err)
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{
		Algorithm:      format.CompressionZstd,
		OriginalSize:   1000,
		CompressedSize: 250,
	}
	assert.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	assert.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	assert.Zero(t, empty.CompressionRatio())
}
