package op

import (
	"net"
	"syscall"
	"testing"
	"unsafe"

	"github.com/pawelgaczynski/giouring"
	"golang.org/x/sys/unix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehrlich-b/uringrt/reactor"
)

func TestReadInterpretExtendsBufferAndReturnsWhole(t *testing.T) {
	buf := NewGrowableBuffer(8)
	r := NewRead(BorrowedFD(3), buf, 0)

	got, err := r.Interpret(reactor.Completion{Res: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, len(got))
	assert.Equal(t, 5, len(buf.Bytes()))
}

func TestReadInterpretKernelErrorLeavesBufferUntouched(t *testing.T) {
	buf := NewGrowableBuffer(8)
	r := NewRead(BorrowedFD(3), buf, 0)

	_, err := r.Interpret(reactor.Completion{Res: -int32(syscall.EIO)})
	require.Error(t, err)
	assert.Equal(t, 0, len(buf.Bytes()))
}

func TestWriteInterpretReturnsByteCount(t *testing.T) {
	w := NewWrite(BorrowedFD(3), []byte("hello"), 0)
	n, err := w.Interpret(reactor.Completion{Res: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestWriteInterpretZeroLengthIsNotAnError(t *testing.T) {
	w := NewWrite(BorrowedFD(3), nil, 0)
	n, err := w.Interpret(reactor.Completion{Res: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSpliceInterpretReturnsByteCount(t *testing.T) {
	s := NewSplice(BorrowedFD(1), -1, BorrowedFD(2), -1, 4096)
	n, err := s.Interpret(reactor.Completion{Res: 2048})
	require.NoError(t, err)
	assert.Equal(t, 2048, n)
}

func TestCloseInterpretSurfacesKernelError(t *testing.T) {
	owned := NewOwnedFD(9)
	c := NewClose(owned)
	_, err := c.Interpret(reactor.Completion{Res: -int32(syscall.EBADF)})
	assert.Error(t, err)
}

func TestCloseConsumesOwnedFD(t *testing.T) {
	owned := NewOwnedFD(9)
	NewClose(owned)
	assert.Panics(t, func() { owned.Release() }, "Close must have already released the descriptor")
}

func TestShutdownModeHow(t *testing.T) {
	assert.Equal(t, int32(unix.SHUT_RD), ShutdownRead.How())
	assert.Equal(t, int32(unix.SHUT_WR), ShutdownWrite.How())
	assert.Equal(t, int32(unix.SHUT_RDWR), ShutdownBoth.How())
}

func TestShutdownInterpretOK(t *testing.T) {
	s := NewShutdown(BorrowedFD(4), ShutdownBoth)
	_, err := s.Interpret(reactor.Completion{Res: 0})
	assert.NoError(t, err)
}

func TestConnectInterpretSurfacesKernelError(t *testing.T) {
	c, err := NewConnect(BorrowedFD(4), net.ParseIP("127.0.0.1"), 80)
	require.NoError(t, err)
	_, err = c.Interpret(reactor.Completion{Res: -int32(syscall.ECONNREFUSED)})
	assert.Error(t, err)
}

func TestCancelInterpretOutcomes(t *testing.T) {
	c := NewCancel(reactor.OpID(42))
	o, err := c.Interpret(reactor.Completion{Res: 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, o)

	o, err = c.Interpret(reactor.Completion{Res: -int32(syscall.ENOENT)})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, o)
}

func TestPollAddInterpretReturnsEventMask(t *testing.T) {
	p := NewPollAdd(BorrowedFD(4), unix.POLLIN)
	mask, err := p.Interpret(reactor.Completion{Res: int32(unix.POLLIN)})
	require.NoError(t, err)
	assert.Equal(t, uint32(unix.POLLIN), mask)
}

func TestPollRemoveInterpretOutcome(t *testing.T) {
	p := NewPollRemove(reactor.OpID(1))
	o, err := p.Interpret(reactor.Completion{Res: 0})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, o)
}

func TestRawInterpretReturnsCompletionVerbatim(t *testing.T) {
	built := false
	r := NewRaw(func(sqe *giouring.SubmissionQueueEntry) { built = true })
	r.Build(&giouring.SubmissionQueueEntry{})
	assert.True(t, built)

	c := reactor.Completion{UserData: 7, Res: 3, Flags: 1}
	got, err := r.Interpret(c)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestAcceptInterpretDecodesSockaddr(t *testing.T) {
	a := NewAccept(BorrowedFD(3), AcceptFlags{Nonblocking: true, CloseOnExec: true})

	var sa unix.RawSockaddrInet4
	sa.Family = unix.AF_INET
	copy(sa.Addr[:], net.ParseIP("10.0.0.1").To4())
	copy((*[unsafe.Sizeof(unix.RawSockaddrAny{})]byte)(unsafe.Pointer(&a.addr))[:], (*[unsafe.Sizeof(sa)]byte)(unsafe.Pointer(&sa))[:])

	got, err := a.Interpret(reactor.Completion{Res: 11})
	require.NoError(t, err)
	assert.Equal(t, int32(11), got.FD.Release())
	tcp, ok := got.Addr.(*net.TCPAddr)
	require.True(t, ok)
	assert.True(t, tcp.IP.Equal(net.ParseIP("10.0.0.1")))
}

func TestAcceptFlagsBits(t *testing.T) {
	f := AcceptFlags{Nonblocking: true, CloseOnExec: true}
	bits := f.bits()
	assert.NotZero(t, bits&unix.SOCK_NONBLOCK)
	assert.NotZero(t, bits&unix.SOCK_CLOEXEC)

	assert.Zero(t, AcceptFlags{}.bits())
}
