// Package document provides the in-memory tree representation of a gff
// resource: a Document owning a root Struct, whose fields hold scalar
// values, strings, nested Structs and Lists of Structs.
//
// A Document is constructed either programmatically, starting from an empty
// root struct:
//
//	doc, _ := document.New("UTC")
//	_ = doc.Root.SetString("Tag", "mytag")
//
//	inner := document.NewStruct(0)
//	_ = inner.SetInt32("Value", 42)
//	_ = doc.Root.SetStruct("Inner", inner)
//
// or by decoding an encoded buffer with the codec package, in which case
// the whole tree materializes atomically.
//
// Ownership is a strict tree: every Struct has at most one parent and the
// root has none. The tree invariant is not enforced while mutating (a
// struct can be attached in two places), but the encoder rejects any
// document that violates it.
package document

import (
	"fmt"

	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/section"
)

// RootTypeID is the conventional type id of a root struct.
const RootTypeID int32 = -1

// Document is one decodable/encodable unit: a content tag, a format version
// and a root struct owning the whole tree.
type Document struct {
	// Root is the root struct, never nil.
	Root *Struct

	fileType    string
	fileVersion string
}

// New creates an empty document with the given 4-byte content tag and an
// empty root struct with type id -1.
//
// The content tag is free-form and consumer-defined (for example "UTC ",
// "DLG " or "ARE "); tags shorter than 4 bytes are space-padded.
//
// Returns:
//   - *Document: New document with an empty root struct
//   - error: ErrInvalidFileType if fileType exceeds 4 bytes
func New(fileType string) (*Document, error) {
	normalized, err := normalizeFileType(fileType)
	if err != nil {
		return nil, err
	}

	return &Document{
		Root:        NewStruct(RootTypeID),
		fileType:    normalized,
		fileVersion: section.Version32,
	}, nil
}

// FileType returns the document's 4-byte content tag.
func (d *Document) FileType() string {
	return d.fileType
}

// SetFileType replaces the document's content tag.
//
// Returns:
//   - error: ErrInvalidFileType if fileType exceeds 4 bytes
func (d *Document) SetFileType(fileType string) error {
	normalized, err := normalizeFileType(fileType)
	if err != nil {
		return err
	}
	d.fileType = normalized

	return nil
}

// FileVersion returns the document's format version tag, always "V3.2".
func (d *Document) FileVersion() string {
	return d.fileVersion
}

// Restore rebuilds a document from already-validated parts. It is intended
// for the codec and bridge packages; most callers should use New.
func Restore(fileType string, root *Struct) *Document {
	if root == nil {
		root = NewStruct(RootTypeID)
	}

	return &Document{
		Root:        root,
		fileType:    fileType,
		fileVersion: section.Version32,
	}
}

func normalizeFileType(fileType string) (string, error) {
	if len(fileType) > section.FileTypeSize {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidFileType, fileType)
	}
	for len(fileType) < section.FileTypeSize {
		fileType += " "
	}

	return fileType, nil
}
