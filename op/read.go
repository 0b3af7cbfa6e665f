package op

import (
	"unsafe"

	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Read takes a borrowed descriptor and an owned growable buffer. It submits
// into the buffer's uninitialized tail; on completion it extends the
// buffer's initialized length by the reported byte count and returns the
// whole initialized buffer.
type Read struct {
	fd  BorrowedFD
	buf *GrowableBuffer
	off uint64
}

// NewRead builds a Read capability at the given file offset (0 for
// stream-like descriptors such as sockets and pipes).
func NewRead(fd BorrowedFD, buf *GrowableBuffer, offset uint64) *Read {
	return &Read{fd: fd, buf: buf, off: offset}
}

func (r *Read) Build(sqe *giouring.SubmissionQueueEntry) {
	tail := r.buf.tail()
	var addr uint64
	if len(tail) > 0 {
		addr = uint64(uintptr(unsafe.Pointer(&tail[0])))
	}
	sqe.PrepareRead(int32(r.fd), addr, uint32(len(tail)), r.off)
}

func (r *Read) Interpret(c reactor.Completion) ([]byte, error) {
	if err := errFromRes(c.Res); err != nil {
		return nil, err
	}
	r.buf.extend(int(c.Res))
	return r.buf.Bytes(), nil
}
