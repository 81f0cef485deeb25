package server

import "sync"

const (
	smallBufferSize = 4096
	largeBufferSize = 32768
)

// BufferPool manages reusable read buffers
type BufferPool struct {
	small sync.Pool // 4KB buffers
	large sync.Pool // 32KB buffers
}

var globalBufferPool = &BufferPool{
	small: sync.Pool{
		New: func() interface{} {
			buf := make([]byte, smallBufferSize)
			return &buf
		},
	},
	large: sync.Pool{
		New: func() interface{} {
			buf := make([]byte, largeBufferSize)
			return &buf
		},
	},
}

// GetBuffer returns a buffer of exactly size bytes
func GetBuffer(size int) []byte {
	switch {
	case size <= smallBufferSize:
		buf := globalBufferPool.small.Get().(*[]byte)
		return (*buf)[:size]
	case size <= largeBufferSize:
		buf := globalBufferPool.large.Get().(*[]byte)
		return (*buf)[:size]
	default:
		// Non-standard size, not pooled
		return make([]byte, size)
	}
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf []byte) {
	switch cap(buf) {
	case smallBufferSize:
		fullBuf := buf[:smallBufferSize]
		globalBufferPool.small.Put(&fullBuf)
	case largeBufferSize:
		fullBuf := buf[:largeBufferSize]
		globalBufferPool.large.Put(&fullBuf)
	}
	// Else: let GC handle it
}
