package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("hello"))
	assert.Equal(t, 5, bb.Len())
	assert.Equal(t, []byte("hello"), bb.Bytes())

	n, err := bb.Write([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte("hello world"), bb.Bytes())

	bb.Reset()
	assert.Zero(t, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), 11)
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("12345678"))

	bb.Grow(1024)
	assert.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	assert.Equal(t, []byte("12345678"), bb.Bytes())
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("payload"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", out.String())
}

func TestByteBufferPoolReuse(t *testing.T) {
	p := NewByteBufferPool(16, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.NotNil(t, again)
	assert.Zero(t, again.Len(), "pooled buffer must come back reset")
}

func TestByteBufferPoolDiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb) // should be dropped, not pooled

	p.Put(nil) // no-op
}

func TestDefaultRegionPool(t *testing.T) {
	bb := GetRegionBuffer()
	require.NotNil(t, bb)
	bb.MustWrite([]byte{1, 2, 3})
	PutRegionBuffer(bb)
}
