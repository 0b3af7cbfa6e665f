package op

import "github.com/ehrlich-b/uringrt/reactor"

// StreamState is the three-way result of polling a Multishot: the caller
// should park and retry (Pending), consume one item (Ready), or stop
// polling entirely (Done).
type StreamState int

const (
	StreamPending StreamState = iota
	StreamReady
	StreamDone
)

// Multishot drives a Capability to an indefinite sequence of completions,
// the stream-producing counterpart to Oneshot. It finishes the first time a
// completion arrives with the kernel's MORE flag clear.
type Multishot[T any] struct {
	cap       Capability[T]
	r         *reactor.Reactor
	id        reactor.OpID
	submitted bool
	finished  bool
}

// NewMultishot wraps cap into a streaming operation driven against r.
func NewMultishot[T any](r *reactor.Reactor, cap Capability[T]) *Multishot[T] {
	return &Multishot[T]{cap: cap, r: r}
}

// Poll advances the stream by at most one item.
func (m *Multishot[T]) Poll(waker reactor.Waker) (item T, state StreamState, err error) {
	var zero T
	if m.finished {
		return zero, StreamDone, nil
	}
	if !m.submitted {
		id, err := m.r.Submit(m.cap.Build, waker)
		if err != nil {
			m.finished = true
			return zero, StreamDone, err
		}
		m.id = id
		m.submitted = true
	}

	c, ready, err := m.r.Drive(m.id, waker)
	if err != nil {
		m.finished = true
		return zero, StreamDone, err
	}
	if !ready {
		return zero, StreamPending, nil
	}
	if !c.More() {
		m.finished = true
	}
	val, err := m.cap.Interpret(c)
	return val, StreamReady, err
}

// SizeHint mirrors an iterator-style lower/upper bound: (1, nil) meaning
// "at least one more, upper bound unknown" while the stream is live, and
// (0, &0) once it has finished.
func (m *Multishot[T]) SizeHint() (lo int, hi *int) {
	if m.finished {
		zero := 0
		return 0, &zero
	}
	return 1, nil
}
