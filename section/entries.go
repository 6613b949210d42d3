package section

import (
	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
)

// StructEntry represents one struct array entry.
//
// The meaning of DataOrOffset depends on FieldCount: unused when zero, a
// field array index when one, and a byte offset into the field indices
// region when more than one.
type StructEntry struct {
	// TypeID is the opaque schema discriminator. The codec carries it
	// verbatim; only external consumers interpret it.
	TypeID int32 // byte offset 0-3
	// DataOrOffset is the field selector slot, see above.
	DataOrOffset uint32 // byte offset 4-7
	// FieldCount is the number of fields the struct carries.
	FieldCount uint32 // byte offset 8-11
}

// ParseStructEntry parses a struct array entry.
//
// Parameters:
//   - data: Byte slice containing the entry (must be exactly 12 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - StructEntry: Parsed entry
//   - error: ErrTruncated if data is not 12 bytes
func ParseStructEntry(data []byte, engine endian.EndianEngine) (StructEntry, error) {
	if len(data) != StructEntrySize {
		return StructEntry{}, errs.ErrTruncated
	}

	return StructEntry{
		TypeID:       int32(engine.Uint32(data[0:4])), //nolint:gosec
		DataOrOffset: engine.Uint32(data[4:8]),
		FieldCount:   engine.Uint32(data[8:12]),
	}, nil
}

// Append serializes the entry and appends it to dst.
func (e StructEntry) Append(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(e.TypeID)) //nolint:gosec
	dst = engine.AppendUint32(dst, e.DataOrOffset)
	dst = engine.AppendUint32(dst, e.FieldCount)

	return dst
}

// FieldEntry represents one field array entry.
//
// For inline types DataOrOffset holds the value bits directly. For field
// data types it holds a byte offset into the field data region. For struct
// fields it holds a struct array index, and for list fields a byte offset
// into the list indices region.
type FieldEntry struct {
	Type         format.FieldType // byte offset 0-3
	LabelIndex   uint32           // byte offset 4-7
	DataOrOffset uint32           // byte offset 8-11
}

// ParseFieldEntry parses a field array entry.
//
// The type tag is not validated here; the tree builder rejects unknown tags
// when it dispatches on them.
//
// Parameters:
//   - data: Byte slice containing the entry (must be exactly 12 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - FieldEntry: Parsed entry
//   - error: ErrTruncated if data is not 12 bytes
func ParseFieldEntry(data []byte, engine endian.EndianEngine) (FieldEntry, error) {
	if len(data) != FieldEntrySize {
		return FieldEntry{}, errs.ErrTruncated
	}

	return FieldEntry{
		Type:         format.FieldType(engine.Uint32(data[0:4])),
		LabelIndex:   engine.Uint32(data[4:8]),
		DataOrOffset: engine.Uint32(data[8:12]),
	}, nil
}

// Append serializes the entry and appends it to dst.
func (e FieldEntry) Append(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(e.Type))
	dst = engine.AppendUint32(dst, e.LabelIndex)
	dst = engine.AppendUint32(dst, e.DataOrOffset)

	return dst
}
