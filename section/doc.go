// Package section defines the low-level binary structures and constants of
// the gff wire format.
//
// This package provides the types that define the physical layout of an
// encoded file. It handles binary serialization and deserialization of the
// header, struct and field array entries, and the fixed-width label table,
// ensuring a consistent byte-level representation across platforms.
//
// # File Structure
//
// An encoded file is a fixed header followed by six tables, each located by
// an (offset, count) pair in the header:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (56 bytes, fixed)                                 │
//	│  - content tag (4 bytes), version tag (4 bytes)          │
//	│  - six (offset, count) pairs (48 bytes)                  │
//	├──────────────────────────────────────────────────────────┤
//	│ Struct array   (12 bytes per entry)                      │
//	│ Field array    (12 bytes per entry)                      │
//	│ Label array    (16 bytes per entry, null-padded)         │
//	│ Field data     (variable, out-of-line payloads)          │
//	│ Field indices  (flat u32 array)                          │
//	│ List indices   (flat u32 array with embedded counts)     │
//	└──────────────────────────────────────────────────────────┘
//
// All multi-byte integers are little-endian.
//
// Most users should not need this package directly; the codec package
// builds document trees on top of it.
package section
