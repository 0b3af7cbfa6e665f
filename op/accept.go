package op

import (
	"unsafe"

	"github.com/pawelgaczynski/giouring"
	"golang.org/x/sys/unix"

	"github.com/ehrlich-b/uringrt/reactor"
)

// AcceptFlags selects the flags applied to the accepted descriptor,
// mirroring accept4(2)'s SOCK_NONBLOCK / SOCK_CLOEXEC.
type AcceptFlags struct {
	Nonblocking bool
	CloseOnExec bool
}

func (f AcceptFlags) bits() uint32 {
	var bits uint32
	if f.Nonblocking {
		bits |= unix.SOCK_NONBLOCK
	}
	if f.CloseOnExec {
		bits |= unix.SOCK_CLOEXEC
	}
	return bits
}

// Addr is the peer address reported by Accept.
type Addr interface {
	Network() string
	String() string
}

// Accepted is the result of a successful Accept completion: the newly
// accepted descriptor and the parsed peer address.
type Accepted struct {
	FD   *OwnedFD
	Addr Addr
}

type acceptState struct {
	fd      BorrowedFD
	flags   AcceptFlags
	addr    unix.RawSockaddrAny
	addrLen uint32
}

func newAcceptState(fd BorrowedFD, flags AcceptFlags) acceptState {
	return acceptState{fd: fd, flags: flags, addrLen: uint32(unsafe.Sizeof(unix.RawSockaddrAny{}))}
}

func (s *acceptState) interpret(c reactor.Completion) (Accepted, error) {
	if err := errFromRes(c.Res); err != nil {
		return Accepted{}, err
	}
	addr, err := decodeSockaddr(&s.addr)
	if err != nil {
		return Accepted{}, err
	}
	return Accepted{FD: NewOwnedFD(c.Res), Addr: addr}, nil
}

// Accept takes a borrowed listening descriptor. It owns the
// sockaddr_storage and its length for the lifetime of the operation, and on
// completion yields the accepted descriptor plus the parsed peer address.
// Drive it with Oneshot[Accepted].
type Accept struct {
	acceptState
}

// NewAccept builds an Accept capability over the given listening descriptor.
func NewAccept(fd BorrowedFD, flags AcceptFlags) *Accept {
	return &Accept{newAcceptState(fd, flags)}
}

func (a *Accept) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PrepareAccept(int32(a.fd), uint64(uintptr(unsafe.Pointer(&a.addr))), uint64(uintptr(unsafe.Pointer(&a.addrLen))), a.flags.bits())
}

func (a *Accept) Interpret(c reactor.Completion) (Accepted, error) {
	return a.interpret(c)
}

// AcceptMultishot is Accept's streaming counterpart: one submission yields
// one Accepted per inbound connection. Drive it with Multishot[Accepted].
type AcceptMultishot struct {
	acceptState
}

// NewAcceptMultishot builds a multishot Accept capability over the given
// listening descriptor.
func NewAcceptMultishot(fd BorrowedFD, flags AcceptFlags) *AcceptMultishot {
	return &AcceptMultishot{newAcceptState(fd, flags)}
}

func (a *AcceptMultishot) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PrepareMultishotAccept(int32(a.fd), uint64(uintptr(unsafe.Pointer(&a.addr))), uint64(uintptr(unsafe.Pointer(&a.addrLen))), a.flags.bits())
}

func (a *AcceptMultishot) Interpret(c reactor.Completion) (Accepted, error) {
	return a.interpret(c)
}
