package reactor

import (
	"errors"

	"github.com/pawelgaczynski/giouring"
)

// ErrRingFull is the cause wrapped by Reactor.Submit's CodeSubmissionFull
// error. Ring.GetSQE reports a full ring by returning nil; Submit flushes and
// retries once before surfacing this.
var ErrRingFull = errors.New("reactor: submission queue full")

// Ring is the reactor's abstraction over a submission/completion ring pair:
// the three views spec.md describes (submitter, submission ring, completion
// ring) collapsed into the narrow surface the reactor actually needs. A real
// implementation backs this with github.com/pawelgaczynski/giouring; a
// FakeRing (see the module-root testing.go) backs it with plain slices for
// tests that do not require a live kernel.
type Ring interface {
	// GetSQE returns the next free submission queue entry to build into, or
	// nil if the ring is full.
	GetSQE() *giouring.SubmissionQueueEntry

	// Submit flushes pending submissions to the kernel without blocking for
	// completions. Returns the number of entries submitted.
	Submit() (int, error)

	// SQReady reports how many submission queue entries have been built
	// (via GetSQE) but not yet flushed to the kernel by Submit or
	// SubmitAndWaitCQEs.
	SQReady() uint32

	// SubmitAndWaitCQEs flushes pending submissions and blocks until at
	// least waitNr completions are available.
	SubmitAndWaitCQEs(waitNr uint32) (int, error)

	// PeekCQE returns the next completion without blocking, or (nil, false)
	// if the completion ring is currently empty.
	PeekCQE() (*giouring.CompletionQueueEntry, bool)

	// CQESeen releases a completion entry previously returned by PeekCQE
	// back to the kernel.
	CQESeen(cqe *giouring.CompletionQueueEntry)

	// Close releases the ring's kernel resources.
	Close() error
}
