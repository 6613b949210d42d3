// Package bridge converts document trees to and from a JSON representation.
//
// The mapping preserves field order, struct type ids and the distinction
// between the signed, unsigned and width-variant numeric kinds, because
// every field carries its wire type name alongside its value. Void payloads
// are base64 strings, following encoding/json conventions.
//
// One caveat: string and resref values are assumed to be UTF-8. The binary
// format allows arbitrary bytes in string fields, but JSON does not, and
// marshalling replaces invalid sequences with U+FFFD. Resources carrying
// non-UTF-8 string payloads should stay in binary form (or move the bytes
// to a void field).
//
// The representation is meant for tooling: diffing resources, hand-editing
// them and generating test fixtures.
package bridge

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/odysseytools/gff/document"
	"github.com/odysseytools/gff/errs"
	"github.com/odysseytools/gff/format"
)

type jsonDocument struct {
	FileType string     `json:"file_type"`
	Root     jsonStruct `json:"root"`
}

type jsonStruct struct {
	TypeID int32       `json:"type_id"`
	Fields []jsonField `json:"fields,omitempty"`
}

type jsonField struct {
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type jsonLocString struct {
	StrRef     int32           `json:"str_ref"`
	Substrings []jsonSubstring `json:"substrings,omitempty"`
}

type jsonSubstring struct {
	ID   uint32 `json:"id"`
	Text string `json:"text"`
}

type jsonVector struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type jsonQuaternion struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// ToJSON serializes a document into its JSON representation.
//
// Parameters:
//   - doc: Document to serialize
//
// Returns:
//   - []byte: JSON bytes
//   - error: Marshalling error
func ToJSON(doc *document.Document) ([]byte, error) {
	root, err := structToJSON(doc.Root)
	if err != nil {
		return nil, err
	}

	return json.Marshal(jsonDocument{
		FileType: doc.FileType(),
		Root:     root,
	})
}

// FromJSON parses a JSON representation produced by ToJSON back into a
// document.
//
// Parameters:
//   - data: JSON bytes
//
// Returns:
//   - *document.Document: Reconstructed document
//   - error: Parse error, ErrUnknownFieldType for unrecognized type names,
//     or a validation error from the document package
func FromJSON(data []byte) (*document.Document, error) {
	var jd jsonDocument
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, fmt.Errorf("parsing document json: %w", err)
	}

	root, err := structFromJSON(jd.Root)
	if err != nil {
		return nil, err
	}

	return document.Restore(jd.FileType, root), nil
}

func structToJSON(s *document.Struct) (jsonStruct, error) {
	js := jsonStruct{TypeID: s.TypeID()}

	for f := range s.Fields() {
		jf, err := fieldToJSON(f)
		if err != nil {
			return jsonStruct{}, err
		}
		js.Fields = append(js.Fields, jf)
	}

	return js, nil
}

func fieldToJSON(f *document.Field) (jsonField, error) {
	var value any

	switch f.Type() {
	case format.TypeStruct:
		child, err := structToJSON(f.Value().(*document.Struct))
		if err != nil {
			return jsonField{}, err
		}
		value = child
	case format.TypeList:
		list := f.Value().(*document.List)
		entries := make([]jsonStruct, 0, list.Len())
		for s := range list.All() {
			entry, err := structToJSON(s)
			if err != nil {
				return jsonField{}, err
			}
			entries = append(entries, entry)
		}
		value = entries
	case format.TypeLocString:
		loc := f.Value().(*document.LocString)
		jl := jsonLocString{StrRef: loc.StrRef()}
		for sub := range loc.All() {
			jl.Substrings = append(jl.Substrings, jsonSubstring{ID: sub.ID, Text: sub.Text})
		}
		value = jl
	case format.TypeVector:
		v := f.Value().(document.Vector)
		value = jsonVector{X: v.X, Y: v.Y, Z: v.Z}
	case format.TypeQuaternion:
		q := f.Value().(document.Quaternion)
		value = jsonQuaternion{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
	default:
		// Scalars, strings and void blobs marshal directly.
		value = f.Value()
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return jsonField{}, fmt.Errorf("marshalling field %q: %w", f.Label(), err)
	}

	return jsonField{
		Label: f.Label(),
		Type:  f.Type().String(),
		Value: raw,
	}, nil
}

func structFromJSON(js jsonStruct) (*document.Struct, error) {
	s := document.NewStruct(js.TypeID)

	for _, jf := range js.Fields {
		if err := fieldFromJSON(s, jf); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// decodeInto unmarshals a field's raw value with context on failure.
func decodeInto[T any](jf jsonField, out *T) error {
	if err := json.Unmarshal(jf.Value, out); err != nil {
		return fmt.Errorf("parsing field %q as %s: %w", jf.Label, jf.Type, err)
	}

	return nil
}

func fieldFromJSON(s *document.Struct, jf jsonField) error {
	ftype, ok := format.ParseFieldType(jf.Type)
	if !ok {
		return fmt.Errorf("%w: %q for field %q", errs.ErrUnknownFieldType, jf.Type, jf.Label)
	}

	if s.Has(jf.Label) {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateLabel, jf.Label)
	}

	switch ftype {
	case format.TypeByte:
		var v uint8
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetUint8(jf.Label, v)
	case format.TypeChar:
		var v int8
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetInt8(jf.Label, v)
	case format.TypeWord:
		var v uint16
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetUint16(jf.Label, v)
	case format.TypeShort:
		var v int16
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetInt16(jf.Label, v)
	case format.TypeDWord:
		var v uint32
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetUint32(jf.Label, v)
	case format.TypeInt:
		var v int32
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetInt32(jf.Label, v)
	case format.TypeDWord64:
		var v uint64
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetUint64(jf.Label, v)
	case format.TypeInt64:
		var v int64
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetInt64(jf.Label, v)
	case format.TypeFloat:
		var v float32
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetFloat32(jf.Label, v)
	case format.TypeDouble:
		var v float64
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetFloat64(jf.Label, v)
	case format.TypeString:
		var v string
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetString(jf.Label, v)
	case format.TypeResRef:
		var v string
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetResRef(jf.Label, v)
	case format.TypeStrRef:
		var v int32
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetStrRef(jf.Label, v)
	case format.TypeVoid:
		var v []byte
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetVoid(jf.Label, v)
	case format.TypeLocString:
		var v jsonLocString
		if err := decodeInto(jf, &v); err != nil {
			return err
		}
		loc := document.NewLocString(v.StrRef)
		for _, sub := range v.Substrings {
			if _, exists := loc.Substring(sub.ID); exists {
				return fmt.Errorf("%w: %d in field %q", errs.ErrDuplicateSubstring, sub.ID, jf.Label)
			}
			loc.SetSubstring(sub.ID, sub.Text)
		}

		return s.SetLocString(jf.Label, loc)
	case format.TypeVector:
		var v jsonVector
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetVector(jf.Label, document.Vector{X: v.X, Y: v.Y, Z: v.Z})
	case format.TypeQuaternion:
		var v jsonQuaternion
		if err := decodeInto(jf, &v); err != nil {
			return err
		}

		return s.SetQuaternion(jf.Label, document.Quaternion{X: v.X, Y: v.Y, Z: v.Z, W: v.W})
	case format.TypeStruct:
		var v jsonStruct
		if err := decodeInto(jf, &v); err != nil {
			return err
		}
		child, err := structFromJSON(v)
		if err != nil {
			return err
		}

		return s.SetStruct(jf.Label, child)
	case format.TypeList:
		var v []jsonStruct
		if err := decodeInto(jf, &v); err != nil {
			return err
		}
		list := document.NewList()
		for _, entry := range v {
			child, err := structFromJSON(entry)
			if err != nil {
				return err
			}
			list.Append(child)
		}
		_, err := s.SetList(jf.Label, list)

		return err
	default:
		return fmt.Errorf("%w: %q for field %q", errs.ErrUnknownFieldType, jf.Type, jf.Label)
	}
}
