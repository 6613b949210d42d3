package section

// Wire format version tag. Only V3.2 is understood by this codec.
const Version32 = "V3.2"

// Fixed sizes of the wire structures.
const (
	HeaderSize      = 56 // fixed header size in bytes
	StructEntrySize = 12 // struct array entry size in bytes
	FieldEntrySize  = 12 // field array entry size in bytes
	LabelSize       = 16 // label array entry size in bytes, null-padded

	FileTypeSize = 4 // content tag size in bytes, space-padded

	MaxLabelLen  = 16 // maximum field label length in bytes
	MaxResRefLen = 16 // maximum resource reference length in bytes
)
