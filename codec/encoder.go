package codec

import (
	"bytes"
	"fmt"
	"math"

	"github.com/odysseytools/gff/document"
	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
	"github.com/odysseytools/gff/internal/hash"
	"github.com/odysseytools/gff/internal/options"
	"github.com/odysseytools/gff/internal/pool"
	"github.com/odysseytools/gff/section"
)

// EncoderConfig controls the behavior of a single Encode call.
type EncoderConfig struct {
	// payloadDedup shares identical field data payloads between fields.
	// Enabled by default; trades a hash lookup per payload for a smaller
	// field data region.
	payloadDedup bool
}

// EncoderOption configures an Encode call.
type EncoderOption = options.Option[*EncoderConfig]

// WithPayloadDedup enables or disables sharing of identical out-of-line
// payloads in the field data region. Defaults to enabled.
func WithPayloadDedup(enabled bool) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.payloadDedup = enabled
	})
}

// dataSpan records one payload already written to the field data region.
type dataSpan struct {
	off  uint32
	size uint32
}

type encoder struct {
	engine endian.EndianEngine
	cfg    EncoderConfig

	structEntries []section.StructEntry
	fieldEntries  []section.FieldEntry
	labels        []string
	labelIndex    map[string]uint32

	fieldData    *pool.ByteBuffer
	fieldIndices []uint32
	listIndices  []uint32

	// dedup maps payload hashes to spans already written to fieldData.
	// Spans are confirmed byte-wise before reuse, so a hash collision
	// costs a comparison and never corrupts output.
	dedup map[uint64][]dataSpan

	// visited tracks structs already emitted during traversal. A struct
	// reachable twice means the document is not a tree.
	visited map[*document.Struct]struct{}

	scratch []byte
}

// Encode serializes a document tree into the binary container format.
//
// Output is deterministic: the same tree always yields the same bytes, so a
// decode followed by an Encode with identical options reproduces the input
// buffer byte for byte. Fields serialize in insertion order, structs in
// pre-order with the root first.
//
// Parameters:
//   - doc: Document to serialize (must have a root struct)
//   - opts: Optional encoder options, e.g. WithPayloadDedup
//
// Returns:
//   - []byte: Complete encoded buffer, header first
//   - error: errs.ErrNotATree if a struct is reachable twice, or any
//     option application error
func Encode(doc *document.Document, opts ...EncoderOption) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: document has no root struct", errs.ErrInvalidStructIndex)
	}

	cfg := EncoderConfig{payloadDedup: true}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	e := &encoder{
		engine:     endian.GetLittleEndianEngine(),
		cfg:        cfg,
		labelIndex: make(map[string]uint32),
		fieldData:  pool.GetRegionBuffer(),
		visited:    make(map[*document.Struct]struct{}),
	}
	if cfg.payloadDedup {
		e.dedup = make(map[uint64][]dataSpan)
	}
	defer pool.PutRegionBuffer(e.fieldData)

	if _, err := e.encodeStruct(doc.Root); err != nil {
		return nil, err
	}

	return e.assemble(doc.FileType(), doc.FileVersion()), nil
}

// encodeStruct appends s to the struct array and serializes its fields,
// returning the struct's index.
func (e *encoder) encodeStruct(s *document.Struct) (uint32, error) {
	if _, seen := e.visited[s]; seen {
		return 0, fmt.Errorf("%w: struct reachable from two parents", errs.ErrNotATree)
	}
	e.visited[s] = struct{}{}

	idx := uint32(len(e.structEntries))
	e.structEntries = append(e.structEntries, section.StructEntry{
		TypeID:     s.TypeID(),
		FieldCount: uint32(s.Len()), //nolint:gosec
	})

	var fieldIdxs []uint32
	for f := range s.Fields() {
		fi, err := e.encodeField(f)
		if err != nil {
			return 0, err
		}
		fieldIdxs = append(fieldIdxs, fi)
	}

	// One field stores its index directly in the data slot; only structs
	// with two or more fields consume field indices region space.
	switch len(fieldIdxs) {
	case 0:
	case 1:
		e.structEntries[idx].DataOrOffset = fieldIdxs[0]
	default:
		e.structEntries[idx].DataOrOffset = uint32(len(e.fieldIndices)) * 4 //nolint:gosec
		e.fieldIndices = append(e.fieldIndices, fieldIdxs...)
	}

	return idx, nil
}

// encodeField appends f to the field array and returns its index.
func (e *encoder) encodeField(f *document.Field) (uint32, error) {
	entry := section.FieldEntry{
		Type:       f.Type(),
		LabelIndex: e.internLabel(f.Label()),
	}

	switch f.Type() {
	case format.TypeByte:
		entry.DataOrOffset = uint32(f.Value().(uint8))
	case format.TypeChar:
		entry.DataOrOffset = uint32(uint8(f.Value().(int8)))
	case format.TypeWord:
		entry.DataOrOffset = uint32(f.Value().(uint16))
	case format.TypeShort:
		entry.DataOrOffset = uint32(uint16(f.Value().(int16)))
	case format.TypeDWord:
		entry.DataOrOffset = f.Value().(uint32)
	case format.TypeInt:
		entry.DataOrOffset = uint32(f.Value().(int32)) //nolint:gosec
	case format.TypeFloat:
		entry.DataOrOffset = math.Float32bits(f.Value().(float32))
	case format.TypeStrRef:
		entry.DataOrOffset = uint32(f.Value().(int32)) //nolint:gosec
	case format.TypeDWord64:
		p := e.engine.AppendUint64(e.scratch[:0], f.Value().(uint64))
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeInt64:
		p := e.engine.AppendUint64(e.scratch[:0], uint64(f.Value().(int64))) //nolint:gosec
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeDouble:
		p := e.engine.AppendUint64(e.scratch[:0], math.Float64bits(f.Value().(float64)))
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeString:
		str := f.Value().(string)
		p := e.engine.AppendUint32(e.scratch[:0], uint32(len(str))) //nolint:gosec
		p = append(p, str...)
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeResRef:
		resref := f.Value().(string)
		p := append(e.scratch[:0], byte(len(resref)))
		p = append(p, resref...)
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeLocString:
		p := e.appendLocString(e.scratch[:0], f.Value().(*document.LocString))
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeVoid:
		blob := f.Value().([]byte)
		p := e.engine.AppendUint32(e.scratch[:0], uint32(len(blob))) //nolint:gosec
		p = append(p, blob...)
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeQuaternion:
		q := f.Value().(document.Quaternion)
		p := e.engine.AppendUint32(e.scratch[:0], math.Float32bits(q.X))
		p = e.engine.AppendUint32(p, math.Float32bits(q.Y))
		p = e.engine.AppendUint32(p, math.Float32bits(q.Z))
		p = e.engine.AppendUint32(p, math.Float32bits(q.W))
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeVector:
		v := f.Value().(document.Vector)
		p := e.engine.AppendUint32(e.scratch[:0], math.Float32bits(v.X))
		p = e.engine.AppendUint32(p, math.Float32bits(v.Y))
		p = e.engine.AppendUint32(p, math.Float32bits(v.Z))
		entry.DataOrOffset = e.addFieldData(p)
		e.scratch = p
	case format.TypeStruct:
		childIdx, err := e.encodeStruct(f.Value().(*document.Struct))
		if err != nil {
			return 0, err
		}
		entry.DataOrOffset = childIdx
	case format.TypeList:
		off, err := e.encodeList(f.Value().(*document.List))
		if err != nil {
			return 0, err
		}
		entry.DataOrOffset = off
	default:
		return 0, fmt.Errorf("%w: %d for field %q", errs.ErrUnknownFieldType, uint32(f.Type()), f.Label())
	}

	fi := uint32(len(e.fieldEntries))
	e.fieldEntries = append(e.fieldEntries, entry)

	return fi, nil
}

// encodeList writes the list's count and struct indices into the list
// indices region and returns the byte offset of the count.
//
// The count and index slots are reserved as one contiguous block before any
// child is encoded: a child may itself hold a list, and its recursive block
// must land after this one, not in the middle of it.
func (e *encoder) encodeList(list *document.List) (uint32, error) {
	base := len(e.listIndices)
	off := uint32(base) * 4 //nolint:gosec

	e.listIndices = append(e.listIndices, uint32(list.Len())) //nolint:gosec
	e.listIndices = append(e.listIndices, make([]uint32, list.Len())...)

	slot := base + 1
	for s := range list.All() {
		idx, err := e.encodeStruct(s)
		if err != nil {
			return 0, err
		}
		e.listIndices[slot] = idx
		slot++
	}

	return off, nil
}

// appendLocString serializes a localized string payload. The leading size
// field counts the bytes that follow it.
func (e *encoder) appendLocString(dst []byte, loc *document.LocString) []byte {
	total := uint32(8)
	for sub := range loc.All() {
		total += 8 + uint32(len(sub.Text)) //nolint:gosec
	}

	dst = e.engine.AppendUint32(dst, total)
	dst = e.engine.AppendUint32(dst, uint32(loc.StrRef())) //nolint:gosec
	dst = e.engine.AppendUint32(dst, uint32(loc.Len()))    //nolint:gosec
	for sub := range loc.All() {
		dst = e.engine.AppendUint32(dst, sub.ID)
		dst = e.engine.AppendUint32(dst, uint32(len(sub.Text))) //nolint:gosec
		dst = append(dst, sub.Text...)
	}

	return dst
}

// internLabel returns the label array index for label, appending it on
// first use. Labels were validated when the field was set.
func (e *encoder) internLabel(label string) uint32 {
	if idx, ok := e.labelIndex[label]; ok {
		return idx
	}

	idx := uint32(len(e.labels))
	e.labels = append(e.labels, label)
	e.labelIndex[label] = idx

	return idx
}

// addFieldData writes payload into the field data region and returns its
// byte offset, reusing an existing identical payload when dedup is on.
func (e *encoder) addFieldData(payload []byte) uint32 {
	var h uint64
	if e.cfg.payloadDedup {
		h = hash.Sum64(payload)
		region := e.fieldData.Bytes()
		for _, span := range e.dedup[h] {
			if int(span.size) == len(payload) && bytes.Equal(region[span.off:span.off+span.size], payload) {
				return span.off
			}
		}
	}

	off := uint32(e.fieldData.Len()) //nolint:gosec
	e.fieldData.MustWrite(payload)

	if e.cfg.payloadDedup {
		e.dedup[h] = append(e.dedup[h], dataSpan{off: off, size: uint32(len(payload))}) //nolint:gosec
	}

	return off
}

// assemble lays the six regions out behind the header and returns the
// finished buffer.
func (e *encoder) assemble(fileType, fileVersion string) []byte {
	if fileVersion == "" {
		fileVersion = section.Version32
	}

	structBytes := uint32(len(e.structEntries)) * section.StructEntrySize //nolint:gosec
	fieldBytes := uint32(len(e.fieldEntries)) * section.FieldEntrySize    //nolint:gosec
	labelBytes := uint32(len(e.labels)) * section.LabelSize               //nolint:gosec
	dataBytes := uint32(e.fieldData.Len())                                //nolint:gosec
	fieldIdxBytes := uint32(len(e.fieldIndices)) * 4                      //nolint:gosec
	listIdxBytes := uint32(len(e.listIndices)) * 4                       //nolint:gosec

	h := section.Header{
		FileType:    fileType,
		FileVersion: fileVersion,

		StructOffset: section.HeaderSize,
		StructCount:  uint32(len(e.structEntries)), //nolint:gosec
	}
	h.FieldOffset = h.StructOffset + structBytes
	h.FieldCount = uint32(len(e.fieldEntries)) //nolint:gosec
	h.LabelOffset = h.FieldOffset + fieldBytes
	h.LabelCount = uint32(len(e.labels)) //nolint:gosec
	h.FieldDataOffset = h.LabelOffset + labelBytes
	h.FieldDataSize = dataBytes
	h.FieldIndicesOffset = h.FieldDataOffset + dataBytes
	h.FieldIndicesSize = fieldIdxBytes
	h.ListIndicesOffset = h.FieldIndicesOffset + fieldIdxBytes
	h.ListIndicesSize = listIdxBytes

	total := section.HeaderSize + structBytes + fieldBytes + labelBytes + dataBytes + fieldIdxBytes + listIdxBytes
	out := make([]byte, 0, total)

	out = append(out, h.Bytes(e.engine)...)
	for _, entry := range e.structEntries {
		out = entry.Append(out, e.engine)
	}
	for _, entry := range e.fieldEntries {
		out = entry.Append(out, e.engine)
	}
	for _, label := range e.labels {
		out, _ = section.AppendLabel(out, label)
	}
	out = append(out, e.fieldData.Bytes()...)
	for _, v := range e.fieldIndices {
		out = e.engine.AppendUint32(out, v)
	}
	for _, v := range e.listIndices {
		out = e.engine.AppendUint32(out, v)
	}

	return out
}
