package op

// GrowableBuffer is an owned buffer with a fixed capacity and a tracked
// initialized length, the shape Read needs to submit into the
// uninitialized tail and extend the initialized length by the reported
// byte count on completion.
type GrowableBuffer struct {
	buf    []byte
	length int
}

// NewGrowableBuffer allocates a buffer with the given capacity and zero
// initialized length.
func NewGrowableBuffer(capacity int) *GrowableBuffer {
	return &GrowableBuffer{buf: make([]byte, capacity)}
}

// Bytes returns the initialized prefix of the buffer.
func (b *GrowableBuffer) Bytes() []byte {
	return b.buf[:b.length]
}

// Cap returns the buffer's total capacity.
func (b *GrowableBuffer) Cap() int {
	return len(b.buf)
}

// tail returns the uninitialized suffix a Read submits into.
func (b *GrowableBuffer) tail() []byte {
	return b.buf[b.length:]
}

func (b *GrowableBuffer) extend(n int) {
	b.length += n
}
