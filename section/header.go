package section

import (
	"fmt"

	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
)

// Header represents the fixed-size header at the start of an encoded file.
//
// After the content and version tags it carries an (offset, count) pair for
// each of the six tables that follow, in wire order. The struct, field and
// label counts are element counts; the field data, field indices and list
// indices counts are byte sizes.
type Header struct {
	// FileType is the 4-byte content tag. It is free-form and distinguishes
	// resource kinds for external consumers; the codec does not interpret it.
	FileType string // byte offset 0-3
	// FileVersion is the 4-byte format version tag, always "V3.2".
	FileVersion string // byte offset 4-7

	StructOffset uint32 // byte offset 8-11
	StructCount  uint32 // byte offset 12-15

	FieldOffset uint32 // byte offset 16-19
	FieldCount  uint32 // byte offset 20-23

	LabelOffset uint32 // byte offset 24-27
	LabelCount  uint32 // byte offset 28-31

	FieldDataOffset uint32 // byte offset 32-35
	FieldDataSize   uint32 // byte offset 36-39

	FieldIndicesOffset uint32 // byte offset 40-43
	FieldIndicesSize   uint32 // byte offset 44-47

	ListIndicesOffset uint32 // byte offset 48-51
	ListIndicesSize   uint32 // byte offset 52-55
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 56 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 56 bytes, or
//     ErrUnsupportedVersion if the version tag is not "V3.2"
func (h *Header) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.FileType = string(data[0:4])
	h.FileVersion = string(data[4:8])

	if h.FileVersion != Version32 {
		return fmt.Errorf("%w: %q", errs.ErrUnsupportedVersion, h.FileVersion)
	}

	h.StructOffset = engine.Uint32(data[8:12])
	h.StructCount = engine.Uint32(data[12:16])
	h.FieldOffset = engine.Uint32(data[16:20])
	h.FieldCount = engine.Uint32(data[20:24])
	h.LabelOffset = engine.Uint32(data[24:28])
	h.LabelCount = engine.Uint32(data[28:32])
	h.FieldDataOffset = engine.Uint32(data[32:36])
	h.FieldDataSize = engine.Uint32(data[36:40])
	h.FieldIndicesOffset = engine.Uint32(data[40:44])
	h.FieldIndicesSize = engine.Uint32(data[44:48])
	h.ListIndicesOffset = engine.Uint32(data[48:52])
	h.ListIndicesSize = engine.Uint32(data[52:56])

	return nil
}

// Bytes serializes the header into a byte slice.
//
// The FileType tag is space-padded to 4 bytes. The FileVersion tag is
// emitted as-is and should be Version32.
func (h *Header) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, 0, HeaderSize)

	b = appendTag(b, h.FileType)
	b = appendTag(b, h.FileVersion)
	b = engine.AppendUint32(b, h.StructOffset)
	b = engine.AppendUint32(b, h.StructCount)
	b = engine.AppendUint32(b, h.FieldOffset)
	b = engine.AppendUint32(b, h.FieldCount)
	b = engine.AppendUint32(b, h.LabelOffset)
	b = engine.AppendUint32(b, h.LabelCount)
	b = engine.AppendUint32(b, h.FieldDataOffset)
	b = engine.AppendUint32(b, h.FieldDataSize)
	b = engine.AppendUint32(b, h.FieldIndicesOffset)
	b = engine.AppendUint32(b, h.FieldIndicesSize)
	b = engine.AppendUint32(b, h.ListIndicesOffset)
	b = engine.AppendUint32(b, h.ListIndicesSize)

	return b
}

// appendTag appends a 4-byte tag, space-padded on the right.
func appendTag(dst []byte, tag string) []byte {
	for i := 0; i < FileTypeSize; i++ {
		if i < len(tag) {
			dst = append(dst, tag[i])
		} else {
			dst = append(dst, ' ')
		}
	}

	return dst
}

// Validate checks that every region declared by the header lies within a
// buffer of bufLen bytes.
//
// Returns:
//   - error: ErrTruncated naming the offending region, or nil
func (h *Header) Validate(bufLen int) error {
	regions := []struct {
		name   string
		offset uint32
		size   uint64
	}{
		{"struct array", h.StructOffset, uint64(h.StructCount) * StructEntrySize},
		{"field array", h.FieldOffset, uint64(h.FieldCount) * FieldEntrySize},
		{"label array", h.LabelOffset, uint64(h.LabelCount) * LabelSize},
		{"field data", h.FieldDataOffset, uint64(h.FieldDataSize)},
		{"field indices", h.FieldIndicesOffset, uint64(h.FieldIndicesSize)},
		{"list indices", h.ListIndicesOffset, uint64(h.ListIndicesSize)},
	}

	for _, r := range regions {
		end := uint64(r.offset) + r.size
		if end > uint64(bufLen) {
			return fmt.Errorf("%w: %s [%d, %d) in %d-byte buffer",
				errs.ErrTruncated, r.name, r.offset, end, bufLen)
		}
	}

	return nil
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 56 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or ErrUnsupportedVersion
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize], engine); err != nil {
		return Header{}, err
	}

	return h, nil
}
