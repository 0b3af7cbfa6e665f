package op

import (
	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Raw is the pass-through escape hatch: build is caller-supplied, and
// Interpret returns the CQE verbatim. The safety contract (that every
// pointer the builder encodes stays valid until terminal completion) is
// entirely delegated to the caller.
type Raw struct {
	build func(*giouring.SubmissionQueueEntry)
}

// NewRaw builds a Raw capability around an arbitrary SQE builder.
func NewRaw(build func(*giouring.SubmissionQueueEntry)) *Raw {
	return &Raw{build: build}
}

func (r *Raw) Build(sqe *giouring.SubmissionQueueEntry) {
	r.build(sqe)
}

func (r *Raw) Interpret(c reactor.Completion) (reactor.Completion, error) {
	return c, nil
}
