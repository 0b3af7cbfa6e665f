//go:build linux

package reactor

import (
	"fmt"

	"github.com/pawelgaczynski/giouring"
)

// giouringRing backs Ring with a real kernel io_uring instance via
// pawelgaczynski/giouring, the teacher's own declared ring dependency.
type giouringRing struct {
	ring *giouring.Ring
}

// NewKernelRing creates a Ring backed by a real io_uring instance with the
// given submission queue depth. entries is typically 128-1024 per spec.md §6.
func NewKernelRing(entries uint32) (Ring, error) {
	ring, err := giouring.CreateRing(entries)
	if err != nil {
		return nil, fmt.Errorf("reactor: create io_uring: %w", err)
	}
	return &giouringRing{ring: ring}, nil
}

func (r *giouringRing) GetSQE() *giouring.SubmissionQueueEntry {
	return r.ring.GetSQE()
}

func (r *giouringRing) Submit() (int, error) {
	n, err := r.ring.Submit()
	return int(n), err
}

func (r *giouringRing) SQReady() uint32 {
	return r.ring.SQReady()
}

func (r *giouringRing) SubmitAndWaitCQEs(waitNr uint32) (int, error) {
	n, err := r.ring.SubmitAndWaitCQEs(waitNr)
	return int(n), err
}

func (r *giouringRing) PeekCQE() (*giouring.CompletionQueueEntry, bool) {
	cqe, err := r.ring.PeekCQE()
	if err != nil || cqe == nil {
		return nil, false
	}
	return cqe, true
}

func (r *giouringRing) CQESeen(cqe *giouring.CompletionQueueEntry) {
	r.ring.CQESeen(cqe)
}

func (r *giouringRing) Close() error {
	r.ring.QueueExit()
	return nil
}
