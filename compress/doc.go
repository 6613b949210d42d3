// Package compress provides the compression codecs used for whole encoded
// resource buffers: Zstandard for ratio, S2 and LZ4 for speed, and a no-op
// codec for uncompressed storage.
//
// Codecs are stateless values retrieved by algorithm tag:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	compressed, err := codec.Compress(encoded)
//
// Raw codec output carries no framing. The compressedbuf package wraps it
// in a self-describing envelope recording the algorithm and original size,
// which is what most callers want.
package compress
