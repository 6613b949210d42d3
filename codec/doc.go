// Package codec implements the binary serialization engine: Encode turns a
// document tree into a byte buffer and Decode turns a buffer back into a
// tree.
//
// Both directions preserve field order and struct layout, so
// Encode(Decode(buf)) reproduces buf byte for byte for any buffer this
// package produced. Decode validates every offset, index and count before
// use and returns a sentinel error from the errs package for any corrupt
// input.
//
// The on-wire layout is a 56-byte header followed by six regions: struct
// entries, field entries, labels, field data, field indices and list
// indices. See the section package for the fixed-size entry formats.
package codec
