package op

import (
	"unsafe"

	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Write takes a borrowed descriptor and a borrowed buffer; the buffer must
// remain valid and unmoved until terminal completion. Interpret returns the
// number of bytes written.
type Write struct {
	fd  BorrowedFD
	buf []byte
	off uint64
}

// NewWrite builds a Write capability at the given file offset.
func NewWrite(fd BorrowedFD, buf []byte, offset uint64) *Write {
	return &Write{fd: fd, buf: buf, off: offset}
}

func (w *Write) Build(sqe *giouring.SubmissionQueueEntry) {
	var addr uint64
	if len(w.buf) > 0 {
		addr = uint64(uintptr(unsafe.Pointer(&w.buf[0])))
	}
	sqe.PrepareWrite(int32(w.fd), addr, uint32(len(w.buf)), w.off)
}

func (w *Write) Interpret(c reactor.Completion) (int, error) {
	if err := errFromRes(c.Res); err != nil {
		return 0, err
	}
	return int(c.Res), nil
}
