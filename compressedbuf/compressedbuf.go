// Package compressedbuf wraps compressed resource buffers in a minimal
// self-describing envelope, so a reader can pick the right decompressor and
// verify the result without out-of-band information.
//
// The envelope is a 12-byte header followed by the codec output:
//
//	offset 0-3:  magic "CMPB"
//	offset 4-7:  compression algorithm (u32, format.CompressionType value)
//	offset 8-11: uncompressed size in bytes (u32)
//
// All integers are little-endian, matching the resource format itself.
package compressedbuf

import (
	"fmt"

	"github.com/odysseytools/gff/compress"
	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
)

// Magic identifies a compressed buffer envelope.
const Magic = "CMPB"

// HeaderSize is the envelope header size in bytes.
const HeaderSize = 12

// Compress wraps data in an envelope after compressing it with the given
// algorithm.
//
// CompressionNone is valid and stores the payload verbatim behind the
// envelope, which keeps readers uniform.
//
// Parameters:
//   - data: Uncompressed payload
//   - compressionType: Algorithm to apply
//
// Returns:
//   - []byte: Envelope header followed by the compressed payload
//   - error: ErrUnknownCompression for unrecognized algorithms
func Compress(data []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]byte, 0, HeaderSize+len(compressed))
	out = append(out, Magic...)
	out = engine.AppendUint32(out, uint32(compressionType))
	out = engine.AppendUint32(out, uint32(len(data))) //nolint:gosec
	out = append(out, compressed...)

	return out, nil
}

// Decompress unwraps an envelope and restores the original payload.
//
// Returns:
//   - []byte: Uncompressed payload
//   - error: ErrInvalidMagic, ErrUnknownCompression, ErrSizeMismatch if the
//     payload does not decompress to the declared size, or the underlying
//     codec's error for corrupt payloads
func Decompress(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d-byte buffer is smaller than the envelope header",
			errs.ErrInvalidMagic, len(data))
	}
	if string(data[0:4]) != Magic {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidMagic, data[0:4])
	}

	engine := endian.GetLittleEndianEngine()
	compressionType := format.CompressionType(engine.Uint32(data[4:8])) //nolint:gosec
	declaredSize := engine.Uint32(data[8:12])

	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return nil, err
	}

	if uint32(len(payload)) != declaredSize { //nolint:gosec
		return nil, fmt.Errorf("%w: envelope declares %d bytes, payload decompressed to %d",
			errs.ErrSizeMismatch, declaredSize, len(payload))
	}

	return payload, nil
}

// IsCompressed reports whether data starts with the envelope magic.
func IsCompressed(data []byte) bool {
	return len(data) >= len(Magic) && string(data[0:4]) == Magic
}

// Algorithm returns the compression algorithm recorded in the envelope
// without decompressing the payload.
//
// Returns:
//   - format.CompressionType: Recorded algorithm
//   - error: ErrInvalidMagic if data is not an envelope
func Algorithm(data []byte) (format.CompressionType, error) {
	if len(data) < HeaderSize {
		return 0, fmt.Errorf("%w: %d-byte buffer is smaller than the envelope header",
			errs.ErrInvalidMagic, len(data))
	}
	if string(data[0:4]) != Magic {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidMagic, data[0:4])
	}

	engine := endian.GetLittleEndianEngine()

	return format.CompressionType(engine.Uint32(data[4:8])), nil //nolint:gosec
}

// Stats computes compression statistics for an envelope produced by
// Compress.
//
// Returns:
//   - compress.CompressionStats: Algorithm, original and compressed sizes
//   - error: ErrInvalidMagic if data is not an envelope
func Stats(data []byte) (compress.CompressionStats, error) {
	algorithm, err := Algorithm(data)
	if err != nil {
		return compress.CompressionStats{}, err
	}

	engine := endian.GetLittleEndianEngine()

	return compress.CompressionStats{
		Algorithm:      algorithm,
		OriginalSize:   int64(engine.Uint32(data[8:12])),
		CompressedSize: int64(len(data) - HeaderSize),
	}, nil
}
