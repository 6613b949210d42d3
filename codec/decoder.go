package codec

import (
	"fmt"
	"math"

	"github.com/odysseytools/gff/document"
	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
	"github.com/odysseytools/gff/section"
)

// decoder holds the parsed tables of one decode call. All state is local to
// the call; separate buffers may be decoded concurrently without
// synchronization.
type decoder struct {
	engine endian.EndianEngine
	header section.Header

	labels        []string
	structEntries []section.StructEntry
	fieldEntries  []section.FieldEntry
	fieldData     []byte
	fieldIndices  []byte
	listIndices   []byte

	// structs is the arena of decoded structs, indexed exactly like the
	// wire struct array. claimed marks structs already owned by a parent
	// struct or list, enforcing the tree invariant.
	structs []*document.Struct
	claimed []bool
}

// Decode decodes an encoded buffer into a document tree.
//
// Decoding is atomic: either the whole tree materializes or an error is
// returned and no partial document exists. The buffer is fully validated;
// corrupt offsets, indices or counts yield an error, never an out-of-range
// read.
//
// Parameters:
//   - data: Encoded byte buffer (must contain a complete file)
//
// Returns:
//   - *document.Document: Decoded document with a navigable root struct
//   - error: Any sentinel from the errs package, wrapped with context
func Decode(data []byte) (*document.Document, error) {
	d := &decoder{engine: endian.GetLittleEndianEngine()}

	header, err := section.ParseHeader(data, d.engine)
	if err != nil {
		return nil, err
	}
	if err := header.Validate(len(data)); err != nil {
		return nil, err
	}
	d.header = header

	if header.StructCount == 0 {
		return nil, fmt.Errorf("%w: file has no root struct", errs.ErrInvalidStructIndex)
	}

	if err := d.parseTables(data); err != nil {
		return nil, err
	}

	// Pre-create the whole arena so nested struct and list fields can be
	// linked by index in a single pass, regardless of resolution order.
	d.structs = make([]*document.Struct, len(d.structEntries))
	d.claimed = make([]bool, len(d.structEntries))
	for i, entry := range d.structEntries {
		d.structs[i] = document.NewStruct(entry.TypeID)
	}

	for i := range d.structEntries {
		if err := d.resolveStruct(i); err != nil {
			return nil, err
		}
	}

	return document.Restore(header.FileType, d.structs[0]), nil
}

// parseTables slices the five regions out of the buffer and parses the
// fixed-size entries. Region bounds were already validated by the header.
func (d *decoder) parseTables(data []byte) error {
	h := &d.header

	d.structEntries = make([]section.StructEntry, h.StructCount)
	for i := range d.structEntries {
		start := h.StructOffset + uint32(i)*section.StructEntrySize
		entry, err := section.ParseStructEntry(data[start:start+section.StructEntrySize], d.engine)
		if err != nil {
			return err
		}
		d.structEntries[i] = entry
	}

	d.fieldEntries = make([]section.FieldEntry, h.FieldCount)
	for i := range d.fieldEntries {
		start := h.FieldOffset + uint32(i)*section.FieldEntrySize
		entry, err := section.ParseFieldEntry(data[start:start+section.FieldEntrySize], d.engine)
		if err != nil {
			return err
		}
		d.fieldEntries[i] = entry
	}

	d.labels = make([]string, h.LabelCount)
	for i := range d.labels {
		start := h.LabelOffset + uint32(i)*section.LabelSize
		label, err := section.ParseLabel(data[start : start+section.LabelSize])
		if err != nil {
			return err
		}
		d.labels[i] = label
	}

	d.fieldData = data[h.FieldDataOffset : h.FieldDataOffset+h.FieldDataSize]
	d.fieldIndices = data[h.FieldIndicesOffset : h.FieldIndicesOffset+h.FieldIndicesSize]
	d.listIndices = data[h.ListIndicesOffset : h.ListIndicesOffset+h.ListIndicesSize]

	return nil
}

// resolveStruct populates the struct at idx with its decoded fields.
//
// A struct with one field stores the field index directly in its data slot;
// a struct with more stores a byte offset into the field indices region
// where field_count consecutive u32 indices live.
func (d *decoder) resolveStruct(idx int) error {
	entry := d.structEntries[idx]
	s := d.structs[idx]

	switch entry.FieldCount {
	case 0:
		return nil
	case 1:
		return d.resolveField(s, entry.DataOrOffset)
	}

	off := uint64(entry.DataOrOffset)
	end := off + uint64(entry.FieldCount)*4
	if end > uint64(len(d.fieldIndices)) {
		return fmt.Errorf("%w: struct %d field indices [%d, %d) in %d-byte region",
			errs.ErrInvalidIndicesOffset, idx, off, end, len(d.fieldIndices))
	}

	for k := uint32(0); k < entry.FieldCount; k++ {
		fieldIdx := d.engine.Uint32(d.fieldIndices[entry.DataOrOffset+k*4:])
		if err := d.resolveField(s, fieldIdx); err != nil {
			return err
		}
	}

	return nil
}

// resolveField decodes the field array entry at fieldIdx into s.
func (d *decoder) resolveField(s *document.Struct, fieldIdx uint32) error {
	if fieldIdx >= uint32(len(d.fieldEntries)) {
		return fmt.Errorf("%w: %d of %d", errs.ErrInvalidFieldIndex, fieldIdx, len(d.fieldEntries))
	}
	entry := d.fieldEntries[fieldIdx]

	if entry.LabelIndex >= uint32(len(d.labels)) {
		return fmt.Errorf("%w: %d of %d", errs.ErrInvalidLabelIndex, entry.LabelIndex, len(d.labels))
	}
	label := d.labels[entry.LabelIndex]

	if s.Has(label) {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateLabel, label)
	}

	switch entry.Type {
	case format.TypeByte:
		return s.SetUint8(label, uint8(entry.DataOrOffset))
	case format.TypeChar:
		return s.SetInt8(label, int8(uint8(entry.DataOrOffset)))
	case format.TypeWord:
		return s.SetUint16(label, uint16(entry.DataOrOffset))
	case format.TypeShort:
		return s.SetInt16(label, int16(uint16(entry.DataOrOffset)))
	case format.TypeDWord:
		return s.SetUint32(label, entry.DataOrOffset)
	case format.TypeInt:
		return s.SetInt32(label, int32(entry.DataOrOffset)) //nolint:gosec
	case format.TypeFloat:
		return s.SetFloat32(label, math.Float32frombits(entry.DataOrOffset))
	case format.TypeStrRef:
		return s.SetStrRef(label, int32(entry.DataOrOffset)) //nolint:gosec
	case format.TypeDWord64:
		b, err := d.fieldDataAt(entry.DataOrOffset, 8)
		if err != nil {
			return err
		}

		return s.SetUint64(label, d.engine.Uint64(b))
	case format.TypeInt64:
		b, err := d.fieldDataAt(entry.DataOrOffset, 8)
		if err != nil {
			return err
		}

		return s.SetInt64(label, int64(d.engine.Uint64(b))) //nolint:gosec
	case format.TypeDouble:
		b, err := d.fieldDataAt(entry.DataOrOffset, 8)
		if err != nil {
			return err
		}

		return s.SetFloat64(label, math.Float64frombits(d.engine.Uint64(b)))
	case format.TypeString:
		str, err := d.readString(entry.DataOrOffset)
		if err != nil {
			return err
		}

		return s.SetString(label, str)
	case format.TypeResRef:
		resref, err := d.readResRef(entry.DataOrOffset)
		if err != nil {
			return err
		}

		return s.SetResRef(label, resref)
	case format.TypeLocString:
		loc, err := d.readLocString(entry.DataOrOffset)
		if err != nil {
			return err
		}

		return s.SetLocString(label, loc)
	case format.TypeVoid:
		blob, err := d.readVoid(entry.DataOrOffset)
		if err != nil {
			return err
		}

		return s.SetVoid(label, blob)
	case format.TypeQuaternion:
		b, err := d.fieldDataAt(entry.DataOrOffset, 16)
		if err != nil {
			return err
		}

		return s.SetQuaternion(label, document.Quaternion{
			X: math.Float32frombits(d.engine.Uint32(b[0:4])),
			Y: math.Float32frombits(d.engine.Uint32(b[4:8])),
			Z: math.Float32frombits(d.engine.Uint32(b[8:12])),
			W: math.Float32frombits(d.engine.Uint32(b[12:16])),
		})
	case format.TypeVector:
		b, err := d.fieldDataAt(entry.DataOrOffset, 12)
		if err != nil {
			return err
		}

		return s.SetVector(label, document.Vector{
			X: math.Float32frombits(d.engine.Uint32(b[0:4])),
			Y: math.Float32frombits(d.engine.Uint32(b[4:8])),
			Z: math.Float32frombits(d.engine.Uint32(b[8:12])),
		})
	case format.TypeStruct:
		child, err := d.claimStruct(entry.DataOrOffset)
		if err != nil {
			return err
		}

		return s.SetStruct(label, child)
	case format.TypeList:
		list, err := d.readList(entry.DataOrOffset)
		if err != nil {
			return err
		}

		_, err = s.SetList(label, list)

		return err
	default:
		return fmt.Errorf("%w: %d for field %q", errs.ErrUnknownFieldType, uint32(entry.Type), label)
	}
}

// fieldDataAt returns n bytes of the field data region starting at off.
// The offset itself resolving outside the region is an offset range error.
func (d *decoder) fieldDataAt(off uint32, n int) ([]byte, error) {
	end := uint64(off) + uint64(n)
	if end > uint64(len(d.fieldData)) {
		return nil, fmt.Errorf("%w: [%d, %d) in %d-byte region",
			errs.ErrOffsetOutOfRange, off, end, len(d.fieldData))
	}

	return d.fieldData[off:end], nil
}

// fieldDataSpan returns n bytes at off where n came from a length prefix
// already read from the region. A span that overruns the region means the
// declared length is truncated rather than the offset being bad.
func (d *decoder) fieldDataSpan(off uint64, n uint64) ([]byte, error) {
	end := off + n
	if end > uint64(len(d.fieldData)) {
		return nil, fmt.Errorf("%w: %d declared bytes at offset %d in %d-byte region",
			errs.ErrTruncated, n, off, len(d.fieldData))
	}

	return d.fieldData[off:end], nil
}

func (d *decoder) readString(off uint32) (string, error) {
	b, err := d.fieldDataAt(off, 4)
	if err != nil {
		return "", err
	}
	length := d.engine.Uint32(b)

	data, err := d.fieldDataSpan(uint64(off)+4, uint64(length))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (d *decoder) readResRef(off uint32) (string, error) {
	b, err := d.fieldDataAt(off, 1)
	if err != nil {
		return "", err
	}
	length := b[0]

	if length > section.MaxResRefLen {
		return "", fmt.Errorf("%w: %d bytes on wire", errs.ErrResRefTooLong, length)
	}

	data, err := d.fieldDataSpan(uint64(off)+1, uint64(length))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (d *decoder) readVoid(off uint32) ([]byte, error) {
	b, err := d.fieldDataAt(off, 4)
	if err != nil {
		return nil, err
	}
	length := d.engine.Uint32(b)

	return d.fieldDataSpan(uint64(off)+4, uint64(length))
}

func (d *decoder) readLocString(off uint32) (*document.LocString, error) {
	// Layout: total size u32 (bytes after this field), string table
	// reference i32, substring count u32, then per substring an id u32, a
	// byte length u32 and the text bytes.
	b, err := d.fieldDataAt(off, 12)
	if err != nil {
		return nil, err
	}

	strRef := int32(d.engine.Uint32(b[4:8])) //nolint:gosec
	count := d.engine.Uint32(b[8:12])

	loc := document.NewLocString(strRef)
	cursor := uint64(off) + 12
	for i := uint32(0); i < count; i++ {
		head, err := d.fieldDataSpan(cursor, 8)
		if err != nil {
			return nil, err
		}
		id := d.engine.Uint32(head[0:4])
		length := d.engine.Uint32(head[4:8])

		text, err := d.fieldDataSpan(cursor+8, uint64(length))
		if err != nil {
			return nil, err
		}

		if _, exists := loc.Substring(id); exists {
			return nil, fmt.Errorf("%w: %d", errs.ErrDuplicateSubstring, id)
		}
		loc.SetSubstring(id, string(text))

		cursor += 8 + uint64(length)
	}

	return loc, nil
}

// claimStruct marks the struct at index idx as owned by a parent and
// returns it. The root can never be claimed and no struct can have two
// parents.
func (d *decoder) claimStruct(idx uint32) (*document.Struct, error) {
	if idx >= uint32(len(d.structs)) {
		return nil, fmt.Errorf("%w: %d of %d", errs.ErrInvalidStructIndex, idx, len(d.structs))
	}
	if idx == 0 {
		return nil, fmt.Errorf("%w: root struct referenced as a child", errs.ErrNotATree)
	}
	if d.claimed[idx] {
		return nil, fmt.Errorf("%w: struct %d referenced by two parents", errs.ErrNotATree, idx)
	}
	d.claimed[idx] = true

	return d.structs[idx], nil
}

func (d *decoder) readList(off uint32) (*document.List, error) {
	end := uint64(off) + 4
	if end > uint64(len(d.listIndices)) {
		return nil, fmt.Errorf("%w: list header [%d, %d) in %d-byte region",
			errs.ErrInvalidIndicesOffset, off, end, len(d.listIndices))
	}
	count := d.engine.Uint32(d.listIndices[off:])

	end += uint64(count) * 4
	if end > uint64(len(d.listIndices)) {
		return nil, fmt.Errorf("%w: list of %d entries at offset %d in %d-byte region",
			errs.ErrInvalidIndicesOffset, count, off, len(d.listIndices))
	}

	list := document.NewList()
	for i := uint32(0); i < count; i++ {
		idx := d.engine.Uint32(d.listIndices[off+4+i*4:])
		child, err := d.claimStruct(idx)
		if err != nil {
			return nil, err
		}
		list.Append(child)
	}

	return list, nil
}
