// Package reactor multiplexes io_uring submissions and completions among
// many concurrent operation holders. It owns the ring and the per-operation
// slot table, guarantees wake-up on completion, and handles multishot
// fan-out.
package reactor

import (
	"container/list"
	"fmt"

	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt"
	"github.com/ehrlich-b/uringrt/internal/cell"
	"github.com/ehrlich-b/uringrt/internal/metrics"
)

// OpID is the opaque dense identifier naming a slot in the reactor's table.
// It is embedded into the kernel user-data field of every SQE so CQEs
// round-trip it back to the slot that submitted them.
type OpID uint64

type slotState int

const (
	slotWaiting slotState = iota
	slotCompleted
	slotUnclaimed
)

// slot is the tagged union backing one live OpID. Only the field matching
// state is meaningful.
type slot struct {
	state slotState
	waker Waker      // slotWaiting
	entry Completion // slotCompleted
	queue *list.List // slotUnclaimed, of Completion
}

type ringState struct {
	ring   Ring
	slots  map[OpID]*slot
	nextID OpID
}

// Reactor owns a ring and the table of in-flight operations.
type Reactor struct {
	cell     *cell.Cell[ringState]
	observer metrics.Observer
}

// Option configures a Reactor at construction time.
type Option func(*Reactor)

// WithObserver attaches a metrics.Observer to the reactor's submit/tick hot
// path. The default is metrics.NoOp{}.
func WithObserver(obs metrics.Observer) Option {
	return func(r *Reactor) { r.observer = obs }
}

// New creates a Reactor over ring. The Ring interface (rather than a
// concrete giouring type) lets tests substitute a FakeRing that does not
// require a live kernel.
func New(ring Ring, opts ...Option) *Reactor {
	r := &Reactor{
		cell:     cell.New(ringState{ring: ring, slots: make(map[OpID]*slot)}),
		observer: metrics.NoOp{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit builds an SQE via build, assigns it a fresh OpID written into the
// SQE's user-data field, records a Waiting slot for waker, and pushes the
// SQE into the submission ring. If the ring is full, Submit flushes pending
// submissions to the kernel and retries once; a second failure is fatal to
// the caller's request (CodeSubmissionFull), not to the reactor.
func (r *Reactor) Submit(build func(sqe *giouring.SubmissionQueueEntry), waker Waker) (OpID, error) {
	return cell.With(r.cell, func(st *ringState) (OpID, error) {
		sqe := st.ring.GetSQE()
		if sqe == nil {
			if _, err := st.ring.Submit(); err != nil {
				return 0, wrapSyncErr("submit", err)
			}
			sqe = st.ring.GetSQE()
			if sqe == nil {
				return 0, &uringrt.Error{Op: "submit", Code: uringrt.CodeSubmissionFull, Msg: "ring still full after flush-and-retry", Inner: ErrRingFull}
			}
		}

		id := st.nextID
		st.nextID++

		build(sqe)
		sqe.UserData = uint64(id)

		st.slots[id] = &slot{state: slotWaiting, waker: waker}
		r.observer.ObserveSubmit()
		r.observer.ObserveQueueDepth(len(st.slots))
		return id, nil
	})
}

// Drive inspects the slot named by id and advances it per the reactor's
// state machine, returning (completion, ready, err). ready is false only
// for the Waiting case (Pending).
func (r *Reactor) Drive(id OpID, waker Waker) (Completion, bool, error) {
	return cell.With(r.cell, func(st *ringState) (Completion, bool, error) {
		s, ok := st.slots[id]
		if !ok {
			return Completion{}, false, uringrt.NewError("drive", uringrt.CodeInvariantViolation, fmt.Sprintf("unknown operation id %d", id))
		}

		switch s.state {
		case slotWaiting:
			if !s.waker.Same(waker) {
				s.waker = waker
			}
			return Completion{}, false, nil

		case slotCompleted:
			e := s.entry
			if !e.More() {
				delete(st.slots, id)
			} else {
				s.state = slotWaiting
				s.waker = waker
				s.entry = Completion{}
			}
			return e, true, nil

		case slotUnclaimed:
			front := s.queue.Front()
			e := front.Value.(Completion)
			s.queue.Remove(front)
			if s.queue.Len() > 0 {
				waker.Wake()
				return e, true, nil
			}
			if !e.More() {
				delete(st.slots, id)
			} else {
				s.state = slotWaiting
				s.waker = waker
			}
			return e, true, nil
		}
		panic("reactor: unreachable slot state")
	})
}

// Tick performs one synchronization step with the kernel: if the completion
// ring is empty it blocks for at least one completion; otherwise, if the
// submission ring has entries queued locally (via Submit) that haven't
// reached the kernel yet, it flushes them non-blockingly. Either way it then
// drains every available CQE and folds each into its slot, waking parked
// tasks.
func (r *Reactor) Tick() error {
	_, err := cell.With(r.cell, func(st *ringState) (struct{}, error) {
		if _, ok := st.ring.PeekCQE(); !ok {
			if _, err := st.ring.SubmitAndWaitCQEs(1); err != nil {
				return struct{}{}, wrapSyncErr("tick", err)
			}
		} else if st.ring.SQReady() > 0 {
			if _, err := st.ring.Submit(); err != nil {
				return struct{}{}, wrapSyncErr("tick", err)
			}
		}

		drained := r.drainAvailable(st)
		r.observer.ObserveTick(drained)
		return struct{}{}, nil
	})
	return err
}

// drainAvailable pops every immediately-available CQE and folds it into its
// slot. Caller holds the cell.
func (r *Reactor) drainAvailable(st *ringState) int {
	n := 0
	for {
		cqe, ok := st.ring.PeekCQE()
		if !ok {
			return n
		}
		st.ring.CQESeen(cqe)
		r.fold(st, completionOf(cqe))
		n++
	}
}

// fold applies one completion to its slot per the Waiting/Completed/
// Unclaimed transition table. Caller holds the cell.
func (r *Reactor) fold(st *ringState, c Completion) {
	s, ok := st.slots[OpID(c.UserData)]
	if !ok {
		panic(fmt.Sprintf("reactor: completion for unknown operation id %d (invariant violation)", c.UserData))
	}
	r.observer.ObserveComplete()

	switch s.state {
	case slotWaiting:
		w := s.waker
		s.state = slotCompleted
		s.entry = c
		w.Wake()
	case slotCompleted:
		q := list.New()
		q.PushBack(s.entry)
		q.PushBack(c)
		s.state = slotUnclaimed
		s.queue = q
		s.entry = Completion{}
	case slotUnclaimed:
		s.queue.PushBack(c)
	}
}

func completionOf(cqe *giouring.CompletionQueueEntry) Completion {
	return Completion{UserData: cqe.UserData, Res: cqe.Res, Flags: cqe.Flags}
}

func wrapSyncErr(op string, err error) error {
	return &uringrt.Error{Op: op, Code: uringrt.CodeKernelSyncFailed, Msg: err.Error(), Inner: err}
}
