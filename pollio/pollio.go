// Package pollio adapts PollIo, a handle carrying a reactor reference and
// an owned file descriptor, to generic read/write/shutdown/close operations
// with per-direction in-flight handles. For read/write it combines a
// blocking syscall attempt with a POLLIN/POLLOUT readiness operation so
// caller-provided buffers never have to outlive a pinned io_uring
// operation.
package pollio

import (
	"syscall"

	"github.com/pawelgaczynski/giouring"
	"golang.org/x/sys/unix"

	"github.com/ehrlich-b/uringrt/op"
	"github.com/ehrlich-b/uringrt/reactor"
)

func errFromRes(res int32) error {
	if res >= 0 {
		return nil
	}
	return syscall.Errno(-res)
}

// handle is one per-direction in-flight operation slot.
type handle struct {
	id       reactor.OpID
	inFlight bool
}

type shutdownPhase int

const (
	shutdownIdle shutdownPhase = iota
	shutdownCancelling
	shutdownSubmitted
)

// PollIo owns exactly one file descriptor and a shared reactor reference.
// It holds up to four independent per-direction operation handles (read,
// write, shutdown, close) — deliberately four separate slots, not one
// shared slot, so a read and a write (or a shutdown cancelling either) can
// be in flight at the same time without colliding.
type PollIo struct {
	fd int32
	r  *reactor.Reactor

	read, write, shutdown, closeOp handle

	shutdownPhase  shutdownPhase
	cancelTarget   *handle
	cancelHandle   handle
}

// New wraps fd (already nonblocking) with poll-fallback read/write and
// true io_uring shutdown/close.
func New(r *reactor.Reactor, fd int32) *PollIo {
	return &PollIo{fd: fd, r: r}
}

// PollRead attempts a synchronous read(2) into buf; on EAGAIN it submits a
// POLLIN readiness operation and returns Pending, retrying the syscall once
// that operation resolves.
func (p *PollIo) PollRead(buf []byte, waker reactor.Waker) (n int, ready bool, err error) {
	if p.read.inFlight {
		_, driveReady, driveErr := p.r.Drive(p.read.id, waker)
		if driveErr != nil {
			p.read.inFlight = false
			return 0, true, driveErr
		}
		if !driveReady {
			return 0, false, nil
		}
		p.read.inFlight = false
	}

	n, sysErr := unix.Read(int(p.fd), buf)
	switch sysErr {
	case nil:
		return n, true, nil
	case unix.EINTR:
		waker.Wake()
		return 0, false, nil
	case unix.EAGAIN:
		id, subErr := p.r.Submit(func(sqe *giouring.SubmissionQueueEntry) {
			sqe.PreparePollAdd(p.fd, unix.POLLIN)
		}, waker)
		if subErr != nil {
			return 0, true, subErr
		}
		p.read = handle{id: id, inFlight: true}
		return 0, false, nil
	default:
		return 0, true, sysErr
	}
}

// PollWrite mirrors PollRead with POLLOUT.
func (p *PollIo) PollWrite(buf []byte, waker reactor.Waker) (n int, ready bool, err error) {
	if p.write.inFlight {
		_, driveReady, driveErr := p.r.Drive(p.write.id, waker)
		if driveErr != nil {
			p.write.inFlight = false
			return 0, true, driveErr
		}
		if !driveReady {
			return 0, false, nil
		}
		p.write.inFlight = false
	}

	n, sysErr := unix.Write(int(p.fd), buf)
	switch sysErr {
	case nil:
		return n, true, nil
	case unix.EINTR:
		waker.Wake()
		return 0, false, nil
	case unix.EAGAIN:
		id, subErr := p.r.Submit(func(sqe *giouring.SubmissionQueueEntry) {
			sqe.PreparePollAdd(p.fd, unix.POLLOUT)
		}, waker)
		if subErr != nil {
			return 0, true, subErr
		}
		p.write = handle{id: id, inFlight: true}
		return 0, false, nil
	default:
		return 0, true, sysErr
	}
}

// PollShutdown implements the compound shutdown protocol: if a read or
// write is in flight, cancel it first, wait for the cancellation's own
// completion, clear the slot, self-wake, and only then submit the real
// Shutdown SQE on the next poll.
func (p *PollIo) PollShutdown(mode op.ShutdownMode, waker reactor.Waker) (ready bool, err error) {
	switch p.shutdownPhase {
	case shutdownIdle:
		switch {
		case p.read.inFlight:
			return p.beginCancel(&p.read, waker)
		case p.write.inFlight:
			return p.beginCancel(&p.write, waker)
		}
		id, subErr := p.r.Submit(func(sqe *giouring.SubmissionQueueEntry) {
			sqe.PrepareShutdown(p.fd, mode.How())
		}, waker)
		if subErr != nil {
			return true, subErr
		}
		p.shutdown = handle{id: id, inFlight: true}
		p.shutdownPhase = shutdownSubmitted
		return false, nil

	case shutdownCancelling:
		_, driveReady, driveErr := p.r.Drive(p.cancelHandle.id, waker)
		if driveErr != nil {
			return true, driveErr
		}
		if !driveReady {
			return false, nil
		}
		p.cancelTarget.inFlight = false
		p.cancelTarget = nil
		p.shutdownPhase = shutdownIdle
		waker.Wake()
		return false, nil

	case shutdownSubmitted:
		c, driveReady, driveErr := p.r.Drive(p.shutdown.id, waker)
		if driveErr != nil {
			return true, driveErr
		}
		if !driveReady {
			return false, nil
		}
		p.shutdown.inFlight = false
		return true, errFromRes(c.Res)
	}
	panic("pollio: unreachable shutdown phase")
}

func (p *PollIo) beginCancel(target *handle, waker reactor.Waker) (bool, error) {
	id, err := p.r.Submit(func(sqe *giouring.SubmissionQueueEntry) {
		sqe.PrepareCancel64(uint64(target.id), 0)
	}, waker)
	if err != nil {
		return true, err
	}
	p.cancelTarget = target
	p.cancelHandle = handle{id: id, inFlight: true}
	p.shutdownPhase = shutdownCancelling
	return false, nil
}

// PollClose submits a true io_uring Close for fd. Unlike read/write it
// never aliases a caller buffer, so there is no syscall fast path.
func (p *PollIo) PollClose(waker reactor.Waker) (ready bool, err error) {
	if !p.closeOp.inFlight {
		id, subErr := p.r.Submit(func(sqe *giouring.SubmissionQueueEntry) {
			sqe.PrepareClose(p.fd)
		}, waker)
		if subErr != nil {
			return true, subErr
		}
		p.closeOp = handle{id: id, inFlight: true}
		return false, nil
	}

	c, driveReady, driveErr := p.r.Drive(p.closeOp.id, waker)
	if driveErr != nil {
		return true, driveErr
	}
	if !driveReady {
		return false, nil
	}
	p.closeOp.inFlight = false
	return true, errFromRes(c.Res)
}
