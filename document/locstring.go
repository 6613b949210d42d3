package document

import "iter"

// NoStrRef is the external string table reference sentinel meaning "no
// external reference". It is stored as 0xFFFFFFFF on the wire.
const NoStrRef int32 = -1

// Substring is one localized text entry of a LocString, keyed by a small
// integer combining language and gender (language*2 + gender).
type Substring struct {
	ID   uint32
	Text string
}

// LocString is a localized string value: an optional external string table
// reference plus zero or more per-language/gender substrings.
//
// Substring keys are unique within one LocString, mirroring the label
// uniqueness invariant of Struct. SetSubstring replaces an existing entry
// with the same key in place.
type LocString struct {
	strRef int32
	subs   []Substring
}

// NewLocString creates a localized string with the given external string
// table reference and no substrings. Use NoStrRef for none.
func NewLocString(strRef int32) *LocString {
	return &LocString{strRef: strRef}
}

// StrRef returns the external string table reference, or NoStrRef.
func (l *LocString) StrRef() int32 {
	return l.strRef
}

// SetStrRef replaces the external string table reference.
func (l *LocString) SetStrRef(strRef int32) {
	l.strRef = strRef
}

// Len returns the number of substrings.
func (l *LocString) Len() int {
	return len(l.subs)
}

// Substring returns the text stored under the given language/gender key.
func (l *LocString) Substring(id uint32) (string, bool) {
	for _, sub := range l.subs {
		if sub.ID == id {
			return sub.Text, true
		}
	}

	return "", false
}

// SetSubstring stores text under the given language/gender key, replacing
// any existing entry with the same key in place.
func (l *LocString) SetSubstring(id uint32, text string) {
	for i, sub := range l.subs {
		if sub.ID == id {
			l.subs[i].Text = text
			return
		}
	}

	l.subs = append(l.subs, Substring{ID: id, Text: text})
}

// Remove deletes the substring with the given key and reports whether an
// entry was removed.
func (l *LocString) Remove(id uint32) bool {
	for i, sub := range l.subs {
		if sub.ID == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return true
		}
	}

	return false
}

// All iterates over the substrings in insertion order.
func (l *LocString) All() iter.Seq[Substring] {
	return func(yield func(Substring) bool) {
		for _, sub := range l.subs {
			if !yield(sub) {
				return
			}
		}
	}
}
