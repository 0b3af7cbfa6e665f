package op

import (
	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Splice transfers nbytes kernel-side, zero-copy, between two borrowed
// descriptors (at least one of which must be a pipe).
type Splice struct {
	fdIn, fdOut    BorrowedFD
	offIn, offOut  int64
	nbytes         uint32
}

// NewSplice builds a Splice capability. Pass -1 for an offset to mean "use
// the descriptor's current file position", matching splice(2).
func NewSplice(fdIn BorrowedFD, offIn int64, fdOut BorrowedFD, offOut int64, nbytes uint32) *Splice {
	return &Splice{fdIn: fdIn, offIn: offIn, fdOut: fdOut, offOut: offOut, nbytes: nbytes}
}

func (s *Splice) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PrepareSplice(int32(s.fdIn), s.offIn, int32(s.fdOut), s.offOut, s.nbytes, 0)
}

func (s *Splice) Interpret(c reactor.Completion) (int, error) {
	if err := errFromRes(c.Res); err != nil {
		return 0, err
	}
	return int(c.Res), nil
}
