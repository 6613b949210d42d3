package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odysseytools/gff/endian"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
)

func TestStructEntryRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	tests := []struct {
		name  string
		entry StructEntry
	}{
		{"root struct", StructEntry{TypeID: -1, DataOrOffset: 0, FieldCount: 0}},
		{"one field", StructEntry{TypeID: 7, DataOrOffset: 3, FieldCount: 1}},
		{"many fields", StructEntry{TypeID: 42, DataOrOffset: 128, FieldCount: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.entry.Append(nil, engine)
			require.Len(t, data, StructEntrySize)

			got, err := ParseStructEntry(data, engine)
			require.NoError(t, err)
			assert.Equal(t, tt.entry, got)
		})
	}
}

func TestStructEntryNegativeTypeID(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	data := StructEntry{TypeID: -1}.Append(nil, engine)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, data[0:4])
}

func TestParseStructEntryTruncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := ParseStructEntry(make([]byte, StructEntrySize-1), engine)
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestFieldEntryRoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	tests := []struct {
		name  string
		entry FieldEntry
	}{
		{"inline int", FieldEntry{Type: format.TypeInt, LabelIndex: 0, DataOrOffset: 42}},
		{"string offset", FieldEntry{Type: format.TypeString, LabelIndex: 3, DataOrOffset: 100}},
		{"list offset", FieldEntry{Type: format.TypeList, LabelIndex: 7, DataOrOffset: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.entry.Append(nil, engine)
			require.Len(t, data, FieldEntrySize)

			got, err := ParseFieldEntry(data, engine)
			require.NoError(t, err)
			assert.Equal(t, tt.entry, got)
		})
	}
}

func TestParseFieldEntryTruncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := ParseFieldEntry(make([]byte, FieldEntrySize+1), engine)
	require.ErrorIs(t, err, errs.ErrTruncated)
}
