// Package gff reads and writes hierarchical binary resource files in the
// General File Format: a header-plus-regions container holding a tree of
// structs whose fields are typed scalars, strings, blobs and nested
// structs or lists.
//
// The top-level functions cover the common paths; the subpackages expose
// the layers they are built from:
//
//   - document: the in-memory tree (Document, Struct, Field, List, LocString)
//   - codec: the binary encoder and decoder
//   - compress, compressedbuf: whole-buffer compression and its envelope
//   - bridge: JSON conversion for tooling
//   - section, format, errs: wire layout, type tags and sentinel errors
//
// Building and encoding a resource:
//
//	doc, err := gff.NewDocument("UTC")
//	if err != nil {
//		return err
//	}
//	if err := doc.Root.SetString("Tag", "mytag"); err != nil {
//		return err
//	}
//	data, err := gff.Encode(doc)
package gff

import (
	"github.com/odysseytools/gff/codec"
	"github.com/odysseytools/gff/compressedbuf"
	"github.com/odysseytools/gff/document"
	"github.com/odysseytools/gff/format"
)

// NewDocument creates an empty document with the given 4-byte content tag
// and a root struct ready for fields.
func NewDocument(fileType string) (*document.Document, error) {
	return document.New(fileType)
}

// Encode serializes a document into its binary form.
//
// The output is deterministic; see codec.Encode for options.
func Encode(doc *document.Document, opts ...codec.EncoderOption) ([]byte, error) {
	return codec.Encode(doc, opts...)
}

// Decode parses a binary buffer into a document, validating the whole
// structure up front.
func Decode(data []byte) (*document.Document, error) {
	return codec.Decode(data)
}

// EncodeCompressed serializes a document and wraps the result in a
// compressed buffer envelope using the given algorithm.
func EncodeCompressed(doc *document.Document, compressionType format.CompressionType, opts ...codec.EncoderOption) ([]byte, error) {
	data, err := codec.Encode(doc, opts...)
	if err != nil {
		return nil, err
	}

	return compressedbuf.Compress(data, compressionType)
}

// DecodeCompressed unwraps a compressed buffer envelope and decodes the
// document inside. Buffers without an envelope are decoded directly, so
// callers can read both forms through one entry point.
func DecodeCompressed(data []byte) (*document.Document, error) {
	if !compressedbuf.IsCompressed(data) {
		return codec.Decode(data)
	}

	raw, err := compressedbuf.Decompress(data)
	if err != nil {
		return nil, err
	}

	return codec.Decode(raw)
}
