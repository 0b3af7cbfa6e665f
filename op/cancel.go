package op

import (
	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Cancel requests the kernel cancel an existing in-flight operation named by
// target. The result is the cancellation outcome, not the cancelled
// operation's own result.
type Cancel struct {
	target reactor.OpID
}

// NewCancel builds a Cancel capability naming target.
func NewCancel(target reactor.OpID) *Cancel {
	return &Cancel{target: target}
}

func (c *Cancel) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PrepareCancel64(uint64(c.target), 0)
}

func (c *Cancel) Interpret(cqe reactor.Completion) (Outcome, error) {
	return outcomeFromRes(cqe.Res)
}
