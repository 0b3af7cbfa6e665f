package op

import (
	"github.com/pawelgaczynski/giouring"
	"golang.org/x/sys/unix"

	"github.com/ehrlich-b/uringrt/reactor"
)

// ShutdownMode selects which half (or both) of a connection to shut down.
type ShutdownMode int

const (
	ShutdownRead ShutdownMode = iota
	ShutdownWrite
	ShutdownBoth
)

// How maps a ShutdownMode to the SHUT_* constant the kernel expects.
func (m ShutdownMode) How() int32 {
	switch m {
	case ShutdownRead:
		return unix.SHUT_RD
	case ShutdownWrite:
		return unix.SHUT_WR
	default:
		return unix.SHUT_RDWR
	}
}

// Shutdown shuts down a borrowed descriptor's read side, write side, or
// both. It is a true io_uring operation (does not alias a caller buffer),
// unlike Read/Write.
type Shutdown struct {
	fd   BorrowedFD
	mode ShutdownMode
}

// NewShutdown builds a Shutdown capability.
func NewShutdown(fd BorrowedFD, mode ShutdownMode) *Shutdown {
	return &Shutdown{fd: fd, mode: mode}
}

func (s *Shutdown) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PrepareShutdown(int32(s.fd), s.mode.How())
}

func (s *Shutdown) Interpret(c reactor.Completion) (struct{}, error) {
	return struct{}{}, errFromRes(c.Res)
}
