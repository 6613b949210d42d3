// Package pool provides pooled byte buffers for the encoder's region
// builders, minimizing allocations when many documents are encoded in a
// row.
package pool

import (
	"io"
	"sync"
)

const (
	// RegionBufferDefaultSize is the default capacity of a pooled buffer,
	// sized for a typical resource file region.
	RegionBufferDefaultSize = 1024 * 8 // 8KiB
	// RegionBufferMaxThreshold is the largest buffer the pool retains;
	// bigger buffers are discarded on Put to avoid memory bloat.
	RegionBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is a growable byte slice with append-oriented helpers.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by RegionBufferDefaultSize, larger ones
// by a quarter of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := RegionBufferDefaultSize
	if cap(bb.B) > 4*RegionBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
//
// A maximum size threshold keeps the pool from retaining overly large
// buffers after encoding an unusually big document.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of the given default
// capacity, discarding returned buffers larger than maxThreshold.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var regionDefaultPool = NewByteBufferPool(RegionBufferDefaultSize, RegionBufferMaxThreshold)

// GetRegionBuffer retrieves a ByteBuffer from the default region pool.
func GetRegionBuffer() *ByteBuffer {
	return regionDefaultPool.Get()
}

// PutRegionBuffer returns a ByteBuffer to the default region pool.
func PutRegionBuffer(bb *ByteBuffer) {
	regionDefaultPool.Put(bb)
}
