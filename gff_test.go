package gff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odysseytools/gff/document"
	"github.com/odysseytools/gff/format"
)

func TestBuildEncodeDecode(t *testing.T) {
	doc, err := NewDocument("GFF")
	require.NoError(t, err)
	require.Equal(t, document.RootTypeID, doc.Root.TypeID())

	require.NoError(t, doc.Root.SetString("Tag", "mytag"))

	inner := document.NewStruct(0)
	require.NoError(t, inner.SetInt32("Value", 42))
	require.NoError(t, doc.Root.SetStruct("Inner", inner))

	data, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "GFF ", decoded.FileType())
	require.Equal(t, document.RootTypeID, decoded.Root.TypeID())

	tag, err := decoded.Root.GetString("Tag")
	require.NoError(t, err)
	require.Equal(t, "mytag", tag)

	got, err := decoded.Root.GetStruct("Inner")
	require.NoError(t, err)
	value, err := got.GetInt32("Value")
	require.NoError(t, err)
	require.Equal(t, int32(42), value)

	// Re-encoding the decoded tree reproduces the buffer.
	again, err := Encode(decoded)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestCompressedRoundTrip(t *testing.T) {
	doc, err := NewDocument("SAV")
	require.NoError(t, err)
	require.NoError(t, doc.Root.SetString("Module", "danm13"))
	list, err := doc.Root.SetList("Party", nil)
	require.NoError(t, err)
	require.NoError(t, list.Add(0).SetResRef("Template", "p_carth"))

	for _, ctype := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		wrapped, err := EncodeCompressed(doc, ctype)
		require.NoError(t, err)

		decoded, err := DecodeCompressed(wrapped)
		require.NoError(t, err)

		module, err := decoded.Root.GetString("Module")
		require.NoError(t, err)
		require.Equal(t, "danm13", module)

		party, err := decoded.Root.GetList("Party")
		require.NoError(t, err)
		require.Equal(t, 1, party.Len())
	}
}

func TestDecodeCompressedAcceptsRawBuffer(t *testing.T) {
	doc, err := NewDocument("GFF")
	require.NoError(t, err)
	require.NoError(t, doc.Root.SetUint8("Flag", 1))

	raw, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := DecodeCompressed(raw)
	require.NoError(t, err)
	flag, err := decoded.Root.GetUint8("Flag")
	require.NoError(t, err)
	require.Equal(t, uint8(1), flag)
}
