package executor

import "github.com/ehrlich-b/uringrt/reactor"

// Driver is the shape of the function Spawn drives: poll-once semantics,
// returning (value, ready, err). ready false means Pending.
type Driver[T any] func(reactor.Waker) (T, bool, error)

// Task is a join handle over a spawned driver. Dropping it without ever
// calling Poll simply detaches: the driver still runs to completion via the
// executor's queue, its result just goes unobserved.
type Task[T any] struct {
	done    bool
	value   T
	err     error
	waiters []reactor.Waker
}

// Poll reports the task's outcome once it has resolved, or parks waker to
// be woken on resolution.
func (t *Task[T]) Poll(waker reactor.Waker) (result T, ready bool, err error) {
	if t.done {
		return t.value, true, t.err
	}
	t.waiters = append(t.waiters, waker)
	var zero T
	return zero, false, nil
}

func (t *Task[T]) complete(v T, err error) {
	t.done = true
	t.value = v
	t.err = err
	waiters := t.waiters
	t.waiters = nil
	for _, w := range waiters {
		w.Wake()
	}
}

// Spawn wraps driver into a runnable whose schedule callback enqueues it on
// e's FIFO. The runnable is run once immediately (eager first poll) so a
// driver that completes synchronously never touches the queue. The returned
// Task resolves to driver's eventual output.
func Spawn[T any](e *Executor, driver Driver[T]) *Task[T] {
	task := &Task[T]{}

	var waker reactor.Waker
	var step func()
	step = func() {
		v, ready, err := driver(waker)
		if ready {
			task.complete(v, err)
		}
	}
	waker = e.newWaker(step)

	step()
	return task
}
