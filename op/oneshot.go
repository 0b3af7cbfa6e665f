package op

import "github.com/ehrlich-b/uringrt/reactor"

// Oneshot drives a Capability to exactly one completion. It is this
// package's stand-in for a pinned Future: the zero value is not usable,
// construct one with NewOneshot and drive it to completion with repeated
// Poll calls.
type Oneshot[T any] struct {
	cap       Capability[T]
	r         *reactor.Reactor
	id        reactor.OpID
	submitted bool
	done      bool
}

// NewOneshot wraps cap into a one-completion operation driven against r.
func NewOneshot[T any](r *reactor.Reactor, cap Capability[T]) *Oneshot[T] {
	return &Oneshot[T]{cap: cap, r: r}
}

// Poll advances the operation. ready is false exactly when the caller
// should park on waker and poll again later (Pending); once ready is true,
// the operation has resolved (successfully or with an error) and must not
// be polled again.
func (o *Oneshot[T]) Poll(waker reactor.Waker) (result T, ready bool, err error) {
	if o.done {
		panic("op: Oneshot polled again after resolving")
	}
	if !o.submitted {
		id, err := o.r.Submit(o.cap.Build, waker)
		if err != nil {
			o.done = true
			var zero T
			return zero, true, err
		}
		o.id = id
		o.submitted = true
	}

	c, ready, err := o.r.Drive(o.id, waker)
	if err != nil {
		o.done = true
		var zero T
		return zero, true, err
	}
	if !ready {
		var zero T
		return zero, false, nil
	}
	if c.More() {
		panic("op: Oneshot capability received a multishot completion (MORE set)")
	}
	o.done = true
	val, err := o.cap.Interpret(c)
	return val, true, err
}
