package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odysseytools/gff/document"
	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/section"
)

// encodeChildren encodes a root holding two empty child structs "A" and "B".
// Wire layout is deterministic: structs root=0, A=1, B=2; field entries
// A=0, B=1.
func encodeChildren(t *testing.T) []byte {
	t.Helper()

	doc, err := document.New("GFF")
	require.NoError(t, err)
	require.NoError(t, doc.Root.SetStruct("A", document.NewStruct(0)))
	require.NoError(t, doc.Root.SetStruct("B", document.NewStruct(0)))

	data, err := Encode(doc)
	require.NoError(t, err)

	return data
}

// patchFieldEntry overwrites one u32 slot of the field entry at index idx.
// slot 0 is the type, slot 1 the label index, slot 2 the data slot.
func patchFieldEntry(t *testing.T, data []byte, idx, slot int, value uint32) {
	t.Helper()

	engine := endian.GetLittleEndianEngine()
	h, err := section.ParseHeader(data, engine)
	require.NoError(t, err)

	off := int(h.FieldOffset) + idx*section.FieldEntrySize + slot*4
	engine.PutUint32(data[off:off+4], value)
}

func TestDecodeEmptyBuffer(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestDecodeShortHeader(t *testing.T) {
	_, err := Decode(make([]byte, section.HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestDecodeBadVersion(t *testing.T) {
	data := encodeChildren(t)
	copy(data[4:8], "V9.9")

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	data := encodeChildren(t)

	_, err := Decode(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestDecodeNoRootStruct(t *testing.T) {
	h := section.Header{FileType: "GFF ", FileVersion: section.Version32}
	data := h.Bytes(endian.GetLittleEndianEngine())

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidStructIndex)
}

func TestDecodeUnknownFieldType(t *testing.T) {
	data := encodeChildren(t)
	patchFieldEntry(t, data, 0, 0, 99)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrUnknownFieldType)
}

func TestDecodeBadLabelIndex(t *testing.T) {
	data := encodeChildren(t)
	patchFieldEntry(t, data, 0, 1, 1000)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidLabelIndex)
}

func TestDecodeDuplicateLabel(t *testing.T) {
	data := encodeChildren(t)
	// Point field "B" at field "A"'s label.
	patchFieldEntry(t, data, 1, 1, 0)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrDuplicateLabel)
}

func TestDecodeStructIndexOutOfRange(t *testing.T) {
	data := encodeChildren(t)
	patchFieldEntry(t, data, 0, 2, 40)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidStructIndex)
}

func TestDecodeRootClaimedAsChild(t *testing.T) {
	data := encodeChildren(t)
	patchFieldEntry(t, data, 0, 2, 0)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrNotATree)
}

func TestDecodeStructClaimedTwice(t *testing.T) {
	data := encodeChildren(t)
	// Both field entries point at struct 1.
	patchFieldEntry(t, data, 1, 2, 1)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrNotATree)
}

func TestDecodeFieldDataOffsetOutOfRange(t *testing.T) {
	doc, err := document.New("GFF")
	require.NoError(t, err)
	require.NoError(t, doc.Root.SetString("Name", "hello"))

	data, err := Encode(doc)
	require.NoError(t, err)
	patchFieldEntry(t, data, 0, 2, 5000)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrOffsetOutOfRange)
}

func TestDecodeStringLengthOverrunsRegion(t *testing.T) {
	doc, err := document.New("GFF")
	require.NoError(t, err)
	require.NoError(t, doc.Root.SetString("Name", "hello"))

	data, err := Encode(doc)
	require.NoError(t, err)

	// Inflate the string's length prefix past the end of the field data
	// region. The offset is fine, the declared length is not.
	engine := endian.GetLittleEndianEngine()
	h, err := section.ParseHeader(data, engine)
	require.NoError(t, err)
	engine.PutUint32(data[h.FieldDataOffset:h.FieldDataOffset+4], 5000)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestDecodeListOffsetOutOfRange(t *testing.T) {
	doc, err := document.New("GFF")
	require.NoError(t, err)
	list, err := doc.Root.SetList("L", nil)
	require.NoError(t, err)
	list.Add(0)

	data, err := Encode(doc)
	require.NoError(t, err)
	patchFieldEntry(t, data, 0, 2, 4000)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidIndicesOffset)
}

func TestDecodeListCountOverrunsRegion(t *testing.T) {
	doc, err := document.New("GFF")
	require.NoError(t, err)
	list, err := doc.Root.SetList("L", nil)
	require.NoError(t, err)
	list.Add(0)

	data, err := Encode(doc)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	h, err := section.ParseHeader(data, engine)
	require.NoError(t, err)
	engine.PutUint32(data[h.ListIndicesOffset:h.ListIndicesOffset+4], 1000)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidIndicesOffset)
}

func TestDecodeFieldIndicesOffsetOutOfRange(t *testing.T) {
	doc, err := document.New("GFF")
	require.NoError(t, err)
	require.NoError(t, doc.Root.SetUint8("A", 1))
	require.NoError(t, doc.Root.SetUint8("B", 2))

	data, err := Encode(doc)
	require.NoError(t, err)

	// Push the root's field indices offset past the region.
	engine := endian.GetLittleEndianEngine()
	h, err := section.ParseHeader(data, engine)
	require.NoError(t, err)
	engine.PutUint32(data[h.StructOffset+4:h.StructOffset+8], 1000)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidIndicesOffset)
}

func TestDecodeFieldIndexOutOfRange(t *testing.T) {
	data := encodeChildren(t)

	// Root stores a field indices offset; rewrite the first index entry to
	// an out-of-range field index.
	engine := endian.GetLittleEndianEngine()
	h, err := section.ParseHeader(data, engine)
	require.NoError(t, err)
	engine.PutUint32(data[h.FieldIndicesOffset:h.FieldIndicesOffset+4], 700)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidFieldIndex)
}

func TestDecodeResRefLengthTooLong(t *testing.T) {
	doc, err := document.New("GFF")
	require.NoError(t, err)
	require.NoError(t, doc.Root.SetResRef("Ref", "sw_helmet"))

	data, err := Encode(doc)
	require.NoError(t, err)

	engine := endian.GetLittleEndianEngine()
	h, err := section.ParseHeader(data, engine)
	require.NoError(t, err)
	data[h.FieldDataOffset] = 200

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrResRefTooLong)
}

func TestDecodeDuplicateLocStringSubstring(t *testing.T) {
	doc, err := document.New("GFF")
	require.NoError(t, err)
	loc := document.NewLocString(document.NoStrRef)
	loc.SetSubstring(0, "one")
	loc.SetSubstring(1, "two")
	require.NoError(t, doc.Root.SetLocString("Name", loc))

	data, err := Encode(doc)
	require.NoError(t, err)

	// Rewrite the second substring's id to collide with the first. The
	// substring table starts 12 bytes into the payload and "one" occupies 11.
	engine := endian.GetLittleEndianEngine()
	h, err := section.ParseHeader(data, engine)
	require.NoError(t, err)
	second := h.FieldDataOffset + 12 + 8 + 3
	engine.PutUint32(data[second:second+4], 0)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrDuplicateSubstring)
}
