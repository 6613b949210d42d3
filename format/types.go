package format

import "fmt"

type (
	FieldType       uint32
	CompressionType uint8
)

// Field type tags as stored in the field array. The tag decides whether the
// value lives inline in the 4-byte data slot or out-of-line in the field
// data region.
const (
	TypeByte       FieldType = 0  // TypeByte represents an unsigned 8-bit integer, stored inline.
	TypeChar       FieldType = 1  // TypeChar represents a signed 8-bit integer, stored inline.
	TypeWord       FieldType = 2  // TypeWord represents an unsigned 16-bit integer, stored inline.
	TypeShort      FieldType = 3  // TypeShort represents a signed 16-bit integer, stored inline.
	TypeDWord      FieldType = 4  // TypeDWord represents an unsigned 32-bit integer, stored inline.
	TypeInt        FieldType = 5  // TypeInt represents a signed 32-bit integer, stored inline.
	TypeDWord64    FieldType = 6  // TypeDWord64 represents an unsigned 64-bit integer, stored in the field data region.
	TypeInt64      FieldType = 7  // TypeInt64 represents a signed 64-bit integer, stored in the field data region.
	TypeFloat      FieldType = 8  // TypeFloat represents a 32-bit float, stored inline.
	TypeDouble     FieldType = 9  // TypeDouble represents a 64-bit float, stored in the field data region.
	TypeString     FieldType = 10 // TypeString represents a length-prefixed string, stored in the field data region.
	TypeResRef     FieldType = 11 // TypeResRef represents a resource reference of at most 16 bytes, stored in the field data region.
	TypeLocString  FieldType = 12 // TypeLocString represents a localized string, stored in the field data region.
	TypeVoid       FieldType = 13 // TypeVoid represents an opaque binary blob, stored in the field data region.
	TypeStruct     FieldType = 14 // TypeStruct represents a nested struct; the data slot holds a struct array index.
	TypeList       FieldType = 15 // TypeList represents a list of structs; the data slot holds a list index region offset.
	TypeQuaternion FieldType = 16 // TypeQuaternion represents four 32-bit floats, stored in the field data region.
	TypeVector     FieldType = 17 // TypeVector represents three 32-bit floats, stored in the field data region.
	TypeStrRef     FieldType = 18 // TypeStrRef represents a signed 32-bit external string table reference, stored inline.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var fieldTypeNames = [...]string{
	TypeByte:       "byte",
	TypeChar:       "char",
	TypeWord:       "word",
	TypeShort:      "short",
	TypeDWord:      "dword",
	TypeInt:        "int",
	TypeDWord64:    "dword64",
	TypeInt64:      "int64",
	TypeFloat:      "float",
	TypeDouble:     "double",
	TypeString:     "string",
	TypeResRef:     "resref",
	TypeLocString:  "locstring",
	TypeVoid:       "void",
	TypeStruct:     "struct",
	TypeList:       "list",
	TypeQuaternion: "quaternion",
	TypeVector:     "vector",
	TypeStrRef:     "strref",
}

// Valid reports whether t is one of the 19 known field type tags.
func (t FieldType) Valid() bool {
	return t <= TypeStrRef
}

// HasFieldData reports whether values of this type are stored out-of-line
// in the field data region. For these types the field entry's data slot
// holds a byte offset into that region instead of the value itself.
//
// TypeStruct and TypeList are not field data types even though their
// payloads live outside the field entry: their data slots hold a struct
// array index and a list index region offset respectively.
func (t FieldType) HasFieldData() bool {
	switch t {
	case TypeDWord64, TypeInt64, TypeDouble, TypeString, TypeResRef,
		TypeLocString, TypeVoid, TypeQuaternion, TypeVector:
		return true
	default:
		return false
	}
}

func (t FieldType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}

	return fieldTypeNames[t]
}

// ParseFieldType converts a type name produced by FieldType.String back to
// its tag. It is used by the JSON bridge to restore typed fields.
func ParseFieldType(name string) (FieldType, bool) {
	for t, n := range fieldTypeNames {
		if n == name {
			return FieldType(t), true
		}
	}

	return 0, false
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
