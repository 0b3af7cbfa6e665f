// Package op is the operation façade: a capability abstraction ("build an
// SQE, interpret one CQE into a typed output") plus two driver adapters —
// Oneshot (a single completion) and Multishot (a stream of completions) —
// over that same capability, and a catalog of concrete capabilities (Read,
// Write, Splice, Accept, Connect, Shutdown, Close, Cancel, PollAdd,
// PollRemove, Raw).
package op

import (
	"syscall"

	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Capability builds a submission exactly once and interprets every
// completion belonging to it into a typed output. Implementations must, via
// their own ownership or borrowed-buffer bounds, guarantee that every
// pointer encoded in Build's SQE remains valid until terminal completion.
type Capability[T any] interface {
	Build(sqe *giouring.SubmissionQueueEntry)
	Interpret(cqe reactor.Completion) (T, error)
}

// errFromRes converts a CQE's result field into an error: nil for a
// non-negative result, a syscall.Errno for a negative one.
func errFromRes(res int32) error {
	if res >= 0 {
		return nil
	}
	return syscall.Errno(-res)
}
