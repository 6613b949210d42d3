// Package errs defines the sentinel errors shared by the gff packages.
//
// Callers can match them with errors.Is even when call sites wrap them with
// additional context via fmt.Errorf("%w: ...").
package errs

import "errors"

// Decode errors. Any of these aborts the whole decode; no partial document
// is ever returned.
var (
	// ErrInvalidHeaderSize is returned when the buffer is too small to hold
	// the fixed-size file header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrUnsupportedVersion is returned when the 4-byte version tag is not a
	// version this codec understands.
	ErrUnsupportedVersion = errors.New("unsupported file version")

	// ErrTruncated is returned when a region declared by the header extends
	// past the end of the buffer.
	ErrTruncated = errors.New("declared region exceeds buffer")

	// ErrOffsetOutOfRange is returned when an out-of-line field offset, or
	// the data it declares, resolves outside the field data region.
	ErrOffsetOutOfRange = errors.New("offset outside field data region")

	// ErrUnknownFieldType is returned when a field entry carries a type tag
	// this codec does not know.
	ErrUnknownFieldType = errors.New("unknown field type tag")

	// ErrInvalidStructIndex is returned when a struct index resolves outside
	// the struct array.
	ErrInvalidStructIndex = errors.New("struct index out of range")

	// ErrInvalidFieldIndex is returned when a field index resolves outside
	// the field array.
	ErrInvalidFieldIndex = errors.New("field index out of range")

	// ErrInvalidLabelIndex is returned when a label index resolves outside
	// the label array.
	ErrInvalidLabelIndex = errors.New("label index out of range")

	// ErrInvalidIndicesOffset is returned when a field indices or list
	// indices offset resolves outside its region.
	ErrInvalidIndicesOffset = errors.New("indices offset out of range")

	// ErrNotATree is returned when the struct graph is not a tree: a struct
	// is referenced by more than one parent, references the root, or the
	// encoder revisits a struct during traversal.
	ErrNotATree = errors.New("struct graph is not a tree")

	// ErrDuplicateLabel is returned when one struct carries two fields with
	// the same label.
	ErrDuplicateLabel = errors.New("duplicate field label in struct")

	// ErrDuplicateSubstring is returned when a localized string carries two
	// substrings with the same language/gender key.
	ErrDuplicateSubstring = errors.New("duplicate localized substring key")
)

// Document construction errors, raised synchronously at the mutating call.
var (
	// ErrLabelTooLong is returned when a field label exceeds 16 bytes.
	ErrLabelTooLong = errors.New("label exceeds 16 bytes")

	// ErrEmptyLabel is returned when a field label is empty.
	ErrEmptyLabel = errors.New("empty label")

	// ErrResRefTooLong is returned when a resource reference exceeds 16 bytes.
	ErrResRefTooLong = errors.New("resource reference exceeds 16 bytes")

	// ErrInvalidFileType is returned when a document content tag is longer
	// than 4 bytes.
	ErrInvalidFileType = errors.New("content tag exceeds 4 bytes")
)

// Access errors raised by the typed getters.
var (
	// ErrFieldNotFound is returned when a getter is invoked with a label the
	// struct does not carry.
	ErrFieldNotFound = errors.New("field not found")

	// ErrTypeMismatch is returned when a getter is invoked with a type that
	// does not match the stored field's type.
	ErrTypeMismatch = errors.New("field type mismatch")
)

// Compressed buffer envelope errors.
var (
	// ErrInvalidMagic is returned when a buffer does not start with the
	// compressed buffer magic.
	ErrInvalidMagic = errors.New("invalid compressed buffer magic")

	// ErrUnknownCompression is returned when a compressed buffer declares an
	// unknown compression algorithm.
	ErrUnknownCompression = errors.New("unknown compression algorithm")

	// ErrSizeMismatch is returned when decompressed data does not match the
	// size declared by the compressed buffer header.
	ErrSizeMismatch = errors.New("decompressed size mismatch")
)
