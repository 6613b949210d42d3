package document

import (
	"fmt"
	"iter"
	"math"

	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
	"github.com/odysseytools/gff/section"
)

// Struct is a node in the document tree: an insertion-ordered collection of
// uniquely labeled fields plus an opaque 32-bit type id.
//
// Setters validate their input synchronously (label length, resource
// reference length) so that an invalid value is rejected at the call that
// introduced it, never later at encode time. Setting an existing label
// replaces the field in place, keeping its position.
//
// Note: a Struct is NOT safe for concurrent mutation. Separate documents
// may be encoded and decoded concurrently without synchronization.
type Struct struct {
	typeID  int32
	fields  []*Field
	byLabel map[string]int
}

// NewStruct creates an empty struct with the given type id.
//
// The type id is an opaque schema discriminator carried verbatim on the
// wire; the codec never interprets it. By convention root structs use -1.
func NewStruct(typeID int32) *Struct {
	return &Struct{
		typeID:  typeID,
		byLabel: make(map[string]int),
	}
}

// TypeID returns the struct's opaque type id.
func (s *Struct) TypeID() int32 {
	return s.typeID
}

// SetTypeID replaces the struct's opaque type id.
func (s *Struct) SetTypeID(id int32) {
	s.typeID = id
}

// Len returns the number of fields the struct carries.
func (s *Struct) Len() int {
	return len(s.fields)
}

// Has reports whether the struct carries a field with the given label.
func (s *Struct) Has(label string) bool {
	_, ok := s.byLabel[label]
	return ok
}

// Field returns the field with the given label for generic traversal.
func (s *Struct) Field(label string) (*Field, bool) {
	i, ok := s.byLabel[label]
	if !ok {
		return nil, false
	}

	return s.fields[i], true
}

// Fields iterates over the struct's fields in insertion order.
//
// Example:
//
//	for f := range s.Fields() {
//	    fmt.Printf("%s (%s) = %v\n", f.Label(), f.Type(), f.Value())
//	}
func (s *Struct) Fields() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		for _, f := range s.fields {
			if !yield(f) {
				return
			}
		}
	}
}

// Remove deletes the field with the given label, preserving the order of
// the remaining fields. It reports whether a field was removed.
func (s *Struct) Remove(label string) bool {
	i, ok := s.byLabel[label]
	if !ok {
		return false
	}

	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.byLabel, label)
	for l, j := range s.byLabel {
		if j > i {
			s.byLabel[l] = j - 1
		}
	}

	return true
}

// setField validates the label and inserts or replaces the field.
func (s *Struct) setField(f *Field) error {
	if err := section.ValidateLabel(f.label); err != nil {
		return err
	}

	if i, ok := s.byLabel[f.label]; ok {
		s.fields[i] = f
		return nil
	}

	s.byLabel[f.label] = len(s.fields)
	s.fields = append(s.fields, f)

	return nil
}

// SetUint8 sets an unsigned 8-bit integer field.
func (s *Struct) SetUint8(label string, value uint8) error {
	return s.setField(&Field{ftype: format.TypeByte, label: label, num: uint64(value)})
}

// SetInt8 sets a signed 8-bit integer field.
func (s *Struct) SetInt8(label string, value int8) error {
	return s.setField(&Field{ftype: format.TypeChar, label: label, num: uint64(uint8(value))})
}

// SetUint16 sets an unsigned 16-bit integer field.
func (s *Struct) SetUint16(label string, value uint16) error {
	return s.setField(&Field{ftype: format.TypeWord, label: label, num: uint64(value)})
}

// SetInt16 sets a signed 16-bit integer field.
func (s *Struct) SetInt16(label string, value int16) error {
	return s.setField(&Field{ftype: format.TypeShort, label: label, num: uint64(uint16(value))})
}

// SetUint32 sets an unsigned 32-bit integer field.
func (s *Struct) SetUint32(label string, value uint32) error {
	return s.setField(&Field{ftype: format.TypeDWord, label: label, num: uint64(value)})
}

// SetInt32 sets a signed 32-bit integer field.
func (s *Struct) SetInt32(label string, value int32) error {
	return s.setField(&Field{ftype: format.TypeInt, label: label, num: uint64(uint32(value))})
}

// SetUint64 sets an unsigned 64-bit integer field.
func (s *Struct) SetUint64(label string, value uint64) error {
	return s.setField(&Field{ftype: format.TypeDWord64, label: label, num: value})
}

// SetInt64 sets a signed 64-bit integer field.
func (s *Struct) SetInt64(label string, value int64) error {
	return s.setField(&Field{ftype: format.TypeInt64, label: label, num: uint64(value)}) //nolint:gosec
}

// SetFloat32 sets a 32-bit float field.
func (s *Struct) SetFloat32(label string, value float32) error {
	return s.setField(&Field{ftype: format.TypeFloat, label: label, num: uint64(math.Float32bits(value))})
}

// SetFloat64 sets a 64-bit float field.
func (s *Struct) SetFloat64(label string, value float64) error {
	return s.setField(&Field{ftype: format.TypeDouble, label: label, num: math.Float64bits(value)})
}

// SetString sets a string field. Strings may be arbitrarily long and are
// not required to be valid UTF-8.
func (s *Struct) SetString(label, value string) error {
	return s.setField(&Field{ftype: format.TypeString, label: label, str: value})
}

// SetResRef sets a resource reference field.
//
// Returns ErrResRefTooLong if value exceeds 16 bytes.
func (s *Struct) SetResRef(label, value string) error {
	if err := section.ValidateResRef(value); err != nil {
		return err
	}

	return s.setField(&Field{ftype: format.TypeResRef, label: label, str: value})
}

// SetLocString sets a localized string field. A nil value is replaced by an
// empty localized string with no external reference.
func (s *Struct) SetLocString(label string, value *LocString) error {
	if value == nil {
		value = NewLocString(NoStrRef)
	}

	return s.setField(&Field{ftype: format.TypeLocString, label: label, loc: value})
}

// SetStrRef sets an external string table reference field.
func (s *Struct) SetStrRef(label string, value int32) error {
	return s.setField(&Field{ftype: format.TypeStrRef, label: label, num: uint64(uint32(value))})
}

// SetVoid sets a binary blob field. The data is copied.
func (s *Struct) SetVoid(label string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	return s.setField(&Field{ftype: format.TypeVoid, label: label, data: cp})
}

// SetVector sets a 3-component float vector field.
func (s *Struct) SetVector(label string, value Vector) error {
	return s.setField(&Field{ftype: format.TypeVector, label: label, vec: value})
}

// SetQuaternion sets a 4-component float quaternion field.
func (s *Struct) SetQuaternion(label string, value Quaternion) error {
	return s.setField(&Field{ftype: format.TypeQuaternion, label: label, quat: value})
}

// SetStruct sets a nested struct field owning the given child. A nil child
// is replaced by an empty struct with type id 0.
//
// The child becomes part of this document's tree; attaching a struct to
// more than one parent makes the document unencodable.
func (s *Struct) SetStruct(label string, child *Struct) error {
	if child == nil {
		child = NewStruct(0)
	}

	return s.setField(&Field{ftype: format.TypeStruct, label: label, child: child})
}

// SetList sets a list field owning the given list. A nil list is replaced
// by an empty one. The returned list can be used to append child structs.
func (s *Struct) SetList(label string, list *List) (*List, error) {
	if list == nil {
		list = NewList()
	}

	if err := s.setField(&Field{ftype: format.TypeList, label: label, list: list}); err != nil {
		return nil, err
	}

	return list, nil
}

// field returns the field with the given label if it matches the wanted
// type tag exactly.
func (s *Struct) field(label string, want format.FieldType) (*Field, error) {
	i, ok := s.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrFieldNotFound, label)
	}

	f := s.fields[i]
	if f.ftype != want {
		return nil, fmt.Errorf("%w: field %q is %s, not %s", errs.ErrTypeMismatch, label, f.ftype, want)
	}

	return f, nil
}

// GetUint8 returns the unsigned 8-bit integer field with the given label.
func (s *Struct) GetUint8(label string) (uint8, error) {
	f, err := s.field(label, format.TypeByte)
	if err != nil {
		return 0, err
	}

	return uint8(f.num), nil
}

// GetInt8 returns the signed 8-bit integer field with the given label.
func (s *Struct) GetInt8(label string) (int8, error) {
	f, err := s.field(label, format.TypeChar)
	if err != nil {
		return 0, err
	}

	return int8(f.num), nil //nolint:gosec
}

// GetUint16 returns the unsigned 16-bit integer field with the given label.
func (s *Struct) GetUint16(label string) (uint16, error) {
	f, err := s.field(label, format.TypeWord)
	if err != nil {
		return 0, err
	}

	return uint16(f.num), nil
}

// GetInt16 returns the signed 16-bit integer field with the given label.
func (s *Struct) GetInt16(label string) (int16, error) {
	f, err := s.field(label, format.TypeShort)
	if err != nil {
		return 0, err
	}

	return int16(f.num), nil //nolint:gosec
}

// GetUint32 returns the unsigned 32-bit integer field with the given label.
func (s *Struct) GetUint32(label string) (uint32, error) {
	f, err := s.field(label, format.TypeDWord)
	if err != nil {
		return 0, err
	}

	return uint32(f.num), nil
}

// GetInt32 returns the signed 32-bit integer field with the given label.
func (s *Struct) GetInt32(label string) (int32, error) {
	f, err := s.field(label, format.TypeInt)
	if err != nil {
		return 0, err
	}

	return int32(f.num), nil //nolint:gosec
}

// GetUint64 returns the unsigned 64-bit integer field with the given label.
func (s *Struct) GetUint64(label string) (uint64, error) {
	f, err := s.field(label, format.TypeDWord64)
	if err != nil {
		return 0, err
	}

	return f.num, nil
}

// GetInt64 returns the signed 64-bit integer field with the given label.
func (s *Struct) GetInt64(label string) (int64, error) {
	f, err := s.field(label, format.TypeInt64)
	if err != nil {
		return 0, err
	}

	return int64(f.num), nil //nolint:gosec
}

// GetFloat32 returns the 32-bit float field with the given label.
func (s *Struct) GetFloat32(label string) (float32, error) {
	f, err := s.field(label, format.TypeFloat)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(uint32(f.num)), nil
}

// GetFloat64 returns the 64-bit float field with the given label.
func (s *Struct) GetFloat64(label string) (float64, error) {
	f, err := s.field(label, format.TypeDouble)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(f.num), nil
}

// GetString returns the string field with the given label.
func (s *Struct) GetString(label string) (string, error) {
	f, err := s.field(label, format.TypeString)
	if err != nil {
		return "", err
	}

	return f.str, nil
}

// GetResRef returns the resource reference field with the given label.
func (s *Struct) GetResRef(label string) (string, error) {
	f, err := s.field(label, format.TypeResRef)
	if err != nil {
		return "", err
	}

	return f.str, nil
}

// GetLocString returns the localized string field with the given label.
// The returned value is owned by the document; mutating it mutates the
// document.
func (s *Struct) GetLocString(label string) (*LocString, error) {
	f, err := s.field(label, format.TypeLocString)
	if err != nil {
		return nil, err
	}

	return f.loc, nil
}

// GetStrRef returns the external string table reference field with the
// given label.
func (s *Struct) GetStrRef(label string) (int32, error) {
	f, err := s.field(label, format.TypeStrRef)
	if err != nil {
		return 0, err
	}

	return int32(f.num), nil //nolint:gosec
}

// GetVoid returns a copy of the binary blob field with the given label.
func (s *Struct) GetVoid(label string) ([]byte, error) {
	f, err := s.field(label, format.TypeVoid)
	if err != nil {
		return nil, err
	}

	cp := make([]byte, len(f.data))
	copy(cp, f.data)

	return cp, nil
}

// GetVector returns the 3-component float vector field with the given label.
func (s *Struct) GetVector(label string) (Vector, error) {
	f, err := s.field(label, format.TypeVector)
	if err != nil {
		return Vector{}, err
	}

	return f.vec, nil
}

// GetQuaternion returns the 4-component float quaternion field with the
// given label.
func (s *Struct) GetQuaternion(label string) (Quaternion, error) {
	f, err := s.field(label, format.TypeQuaternion)
	if err != nil {
		return Quaternion{}, err
	}

	return f.quat, nil
}

// GetStruct returns the nested struct field with the given label.
func (s *Struct) GetStruct(label string) (*Struct, error) {
	f, err := s.field(label, format.TypeStruct)
	if err != nil {
		return nil, err
	}

	return f.child, nil
}

// GetList returns the list field with the given label.
func (s *Struct) GetList(label string) (*List, error) {
	f, err := s.field(label, format.TypeList)
	if err != nil {
		return nil, err
	}

	return f.list, nil
}
