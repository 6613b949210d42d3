package document

import "iter"

// List is an ordered sequence of child structs referenced by one list
// field. Children need not share a type id, although sibling structs of one
// list conventionally do.
type List struct {
	structs []*Struct
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// Len returns the number of structs in the list.
func (l *List) Len() int {
	return len(l.structs)
}

// Add appends a new empty struct with the given type id and returns it.
func (l *List) Add(typeID int32) *Struct {
	s := NewStruct(typeID)
	l.structs = append(l.structs, s)

	return s
}

// Append appends an existing struct to the list. A nil struct is ignored.
//
// The struct becomes part of the owning document's tree; appending a struct
// that already has a parent makes the document unencodable.
func (l *List) Append(s *Struct) {
	if s == nil {
		return
	}
	l.structs = append(l.structs, s)
}

// At returns the struct at index i, or nil if i is out of range.
func (l *List) At(i int) *Struct {
	if i < 0 || i >= len(l.structs) {
		return nil
	}

	return l.structs[i]
}

// All iterates over the list's structs in order.
func (l *List) All() iter.Seq[*Struct] {
	return func(yield func(*Struct) bool) {
		for _, s := range l.structs {
			if !yield(s) {
				return
			}
		}
	}
}
