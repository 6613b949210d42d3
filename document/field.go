package document

import (
	"math"

	"github.com/odysseytools/gff/format"
)

// Vector is a 3-component float vector value.
type Vector struct {
	X, Y, Z float32
}

// Quaternion is a 4-component float rotation value, stored in X, Y, Z, W
// wire order.
type Quaternion struct {
	X, Y, Z, W float32
}

// Field is one labeled, typed value owned by a Struct.
//
// A field is a tagged union of the 19 wire kinds. Exactly one payload slot
// is populated, selected by the type tag; the typed getters on Struct
// enforce the tag match at the boundary.
type Field struct {
	ftype format.FieldType
	label string

	num   uint64 // integer and float kinds (bit pattern)
	str   string // string and resref kinds
	data  []byte // void kind
	vec   Vector
	quat  Quaternion
	loc   *LocString
	child *Struct // struct kind
	list  *List   // list kind
}

// Type returns the field's type tag.
func (f *Field) Type() format.FieldType {
	return f.ftype
}

// Label returns the field's label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the field's payload as its natural Go type:
// uint8, int8, uint16, int16, uint32, int32 (TypeInt and TypeStrRef),
// uint64, int64, float32, float64, string (TypeString and TypeResRef),
// *LocString, []byte, *Struct, *List, Quaternion or Vector.
//
// Struct, List, LocString and void payloads are returned without copying;
// mutating them mutates the document.
func (f *Field) Value() any {
	switch f.ftype {
	case format.TypeByte:
		return uint8(f.num)
	case format.TypeChar:
		return int8(f.num) //nolint:gosec
	case format.TypeWord:
		return uint16(f.num)
	case format.TypeShort:
		return int16(f.num) //nolint:gosec
	case format.TypeDWord:
		return uint32(f.num)
	case format.TypeInt, format.TypeStrRef:
		return int32(f.num) //nolint:gosec
	case format.TypeDWord64:
		return f.num
	case format.TypeInt64:
		return int64(f.num) //nolint:gosec
	case format.TypeFloat:
		return math.Float32frombits(uint32(f.num))
	case format.TypeDouble:
		return math.Float64frombits(f.num)
	case format.TypeString, format.TypeResRef:
		return f.str
	case format.TypeLocString:
		return f.loc
	case format.TypeVoid:
		return f.data
	case format.TypeStruct:
		return f.child
	case format.TypeList:
		return f.list
	case format.TypeQuaternion:
		return f.quat
	case format.TypeVector:
		return f.vec
	default:
		return nil
	}
}
