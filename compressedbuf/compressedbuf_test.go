package compressedbuf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
)

func samplePayload() []byte {
	return bytes.Repeat([]byte("FirstName\x00LastName\x00\x01\x02\x03"), 50)
}

func TestEnvelopeRoundTrip(t *testing.T) {
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
			wrapped, err := Compress(payload, tt.ctype)
			require.NoError(t, err)
			require.True(t, IsCompressed(wrapped))

			algorithm, err := Algorithm(wrapped)
			require.NoError(t, err)
			require.Equal(t, tt.ctype, algorithm)

			restored, err := Decompress(wrapped)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestEnvelopeLayout(t *testing.T) {
	payload := []byte("payload")
	wrapped, err := Compress(payload, format.CompressionNone)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	require.Equal(t, []byte(Magic), wrapped[0:4])
	require.Equal(t, uint32(format.CompressionNone), engine.Uint32(wrapped[4:8]))
	require.Equal(t, uint32(len(payload)), engine.Uint32(wrapped[8:12]))
	require.Equal(t, payload, wrapped[HeaderSize:])
}

func TestCompressUnknownAlgorithm(t *testing.T) {
	_, err := Compress([]byte("data"), format.CompressionType(0xEE))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestDecompressRejectsBadMagic(t *testing.T) {
	_, err := Decompress([]byte("GFF V3.2 is not an envelope"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestDecompressRejectsShortBuffer(t *testing.T) {
	_, err := Decompress([]byte("CMP"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestDecompressRejectsUnknownAlgorithm(t *testing.T) {
	wrapped, err := Compress(samplePayload(), format.CompressionS2)
	require.NoError(t, err)

	endian.GetLittleEndianEngine().PutUint32(wrapped[4:8], 0xEE)

	_, err = Decompress(wrapped)
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestDecompressRejectsSizeMismatch(t *testing.T) {
	wrapped, err := Compress(samplePayload(), format.CompressionS2)
	require.NoError(t, err)

	endian.GetLittleEndianEngine().PutUint32(wrapped[8:12], 3)

	_, err = Decompress(wrapped)
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestIsCompressed(t *testing.T) {
	assert.False(t, IsCompressed(nil))
	assert.False(t, IsCompressed([]byte("GFF V3.2")))

	wrapped, err := Compress([]byte("x"), format.CompressionNone)
	require.NoError(t, err)
	assert.True(t, IsCompressed(wrapped))
}

func TestStats(t *testing.T) {
	payload := samplePayload()
	wrapped, err := Compress(payload, format.CompressionZstd)
	require.NoError(t, err)

	stats, err := Stats(wrapped)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(len(payload)), stats.OriginalSize)
	require.Equal(t, int64(len(wrapped)-HeaderSize), stats.CompressedSize)
	assert.Less(t, stats.CompressionRatio(), 1.0)
}
