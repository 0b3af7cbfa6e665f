package op

import (
	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// PollAdd submits a readiness wait on fd for the given poll mask (POLLIN,
// POLLOUT, ...). Interpret returns the observed event mask.
type PollAdd struct {
	fd   BorrowedFD
	mask uint32
}

// NewPollAdd builds a PollAdd capability.
func NewPollAdd(fd BorrowedFD, mask uint32) *PollAdd {
	return &PollAdd{fd: fd, mask: mask}
}

func (p *PollAdd) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PreparePollAdd(int32(p.fd), p.mask)
}

func (p *PollAdd) Interpret(c reactor.Completion) (uint32, error) {
	if err := errFromRes(c.Res); err != nil {
		return 0, err
	}
	return uint32(c.Res), nil
}

// PollRemove cancels an existing PollAdd named by target. The result is the
// removal outcome, not the removed operation's own result.
type PollRemove struct {
	target reactor.OpID
}

// NewPollRemove builds a PollRemove capability naming target.
func NewPollRemove(target reactor.OpID) *PollRemove {
	return &PollRemove{target: target}
}

func (p *PollRemove) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PreparePollRemove(uint64(p.target))
}

func (p *PollRemove) Interpret(cqe reactor.Completion) (Outcome, error) {
	return outcomeFromRes(cqe.Res)
}
