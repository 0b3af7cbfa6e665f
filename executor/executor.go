// Package executor drives a set of cooperatively scheduled continuations on
// a single thread: a FIFO queue of runnable steps plus a spawn/tick/block_on
// surface.
package executor

import (
	"container/list"

	"github.com/ehrlich-b/uringrt/internal/cell"
	"github.com/ehrlich-b/uringrt/internal/metrics"
	"github.com/ehrlich-b/uringrt/reactor"
)

type execState struct {
	queue *list.List // of func()
}

// Executor is a strictly single-threaded, cooperative, FIFO scheduler. No
// fairness beyond insertion order.
type Executor struct {
	cell     *cell.Cell[execState]
	observer metrics.Observer
	wakerSeq uint64
}

// Option configures an Executor at construction time.
type Option func(*Executor)

// WithObserver attaches a metrics.Observer to the executor's tick path.
func WithObserver(obs metrics.Observer) Option {
	return func(e *Executor) { e.observer = obs }
}

// New creates an empty Executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		cell:     cell.New(execState{queue: list.New()}),
		observer: metrics.NoOp{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) schedule(fn func()) {
	cell.With(e.cell, func(st *execState) struct{} {
		st.queue.PushBack(fn)
		return struct{}{}
	})
}

func (e *Executor) popFront() (func(), bool) {
	return cell.With(e.cell, func(st *execState) (func(), bool) {
		front := st.queue.Front()
		if front == nil {
			return nil, false
		}
		st.queue.Remove(front)
		return front.Value.(func()), true
	})
}

// Tick repeatedly pops the front runnable and runs it until the queue is
// empty, including runnables enqueued by steps run during this same call.
func (e *Executor) Tick() {
	n := 0
	for {
		fn, ok := e.popFront()
		if !ok {
			break
		}
		fn()
		n++
	}
	e.observer.ObserveTick(n)
}

// newWaker builds a reactor.Waker that reschedules fn on this executor when
// woken.
func (e *Executor) newWaker(fn func()) reactor.Waker {
	return reactor.NewWaker(func() { e.schedule(fn) })
}

// BlockOn polls driver to completion with a no-op waker, invoking ticker
// between polls. ticker is expected to advance both this executor and the
// reactor it is paired with, in that order: a task woken during a reactor
// tick must not run until the executor's own tick observes it, so callers
// compose ticker as executor.Tick() then reactor.Tick().
func BlockOn[T any](driver func(reactor.Waker) (T, bool, error), ticker func() error) (T, error) {
	var zero T
	for {
		v, ready, err := driver(reactor.NoopWaker)
		if ready {
			return v, err
		}
		if tErr := ticker(); tErr != nil {
			return zero, tErr
		}
	}
}
