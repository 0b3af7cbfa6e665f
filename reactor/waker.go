package reactor

import "sync/atomic"

var wakerSeq atomic.Uint64

// Waker is the reactor's handle to re-schedule a parked continuation. Two
// wakers are considered the same task if their ids match; the reactor uses
// this to decide whether a Waiting slot's waker needs replacing.
type Waker struct {
	id   uint64
	wake func()
}

// NewWaker builds a Waker with a fresh identity around wake.
func NewWaker(wake func()) Waker {
	return Waker{id: wakerSeq.Add(1), wake: wake}
}

// Wake invokes the underlying schedule callback, if any.
func (w Waker) Wake() {
	if w.wake != nil {
		w.wake()
	}
}

// Same reports whether w and other were created by the same NewWaker call
// (same task identity), per spec semantics for replacing a Waiting waker.
func (w Waker) Same(other Waker) bool {
	return w.id == other.id
}

// NoopWaker is a Waker with no effect, used by block_on style polling loops
// that do not need re-scheduling (the caller re-polls unconditionally).
var NoopWaker = Waker{}
