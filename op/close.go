package op

import (
	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Close takes ownership of an OwnedFD and releases the kernel handle. It is
// buffer-less; Release guarantees the underlying descriptor can never be
// double-closed even if the caller also holds other references to the
// OwnedFD value.
type Close struct {
	fd int32
}

// NewClose consumes owned, taking over responsibility for closing it.
func NewClose(owned *OwnedFD) *Close {
	return &Close{fd: owned.Release()}
}

func (c *Close) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PrepareClose(c.fd)
}

func (c *Close) Interpret(cqe reactor.Completion) (struct{}, error) {
	return struct{}{}, errFromRes(cqe.Res)
}
