// Package hash provides the payload hashing used for out-of-line value
// deduplication during encoding.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given payload bytes.
//
// The encoder keys its field data deduplication map by this hash; equality
// is always confirmed byte-wise before an offset is reused, so hash
// collisions cost a comparison but never corrupt output.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
