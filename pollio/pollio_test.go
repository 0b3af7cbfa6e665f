package pollio_test

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehrlich-b/uringrt"
	"github.com/ehrlich-b/uringrt/op"
	"github.com/ehrlich-b/uringrt/pollio"
	"github.com/ehrlich-b/uringrt/reactor"
)

func socketpair(t *testing.T) (int, int) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		unix.Close(fds[0])
		unix.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestPollReadSucceedsImmediatelyWhenDataIsPresent(t *testing.T) {
	a, b := socketpair(t)
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	p := pollio.New(r, int32(a))
	waker := reactor.NewWaker(func() {})

	_, err := unix.Write(b, []byte("hi"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, ready, err := p.PollRead(buf, waker)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, 2, n)
	assert.Equal(t, "hi", string(buf[:n]))
}

func TestPollReadEAGAINSubmitsPollAddAndRetriesOnNextDrive(t *testing.T) {
	a, b := socketpair(t)
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	p := pollio.New(r, int32(a))
	waker := reactor.NewWaker(func() {})

	buf := make([]byte, 16)
	n, ready, err := p.PollRead(buf, waker)
	require.NoError(t, err)
	assert.False(t, ready, "nothing to read yet: must fall back to PollAdd")
	assert.Equal(t, 0, n)

	// Remote peer writes; complete the PollAdd and retry.
	_, err = unix.Write(b, []byte("ok"))
	require.NoError(t, err)
	require.True(t, ring.CompleteOldestSubmission(int32(unix.POLLIN), 0))
	require.NoError(t, r.Tick())

	n, ready, err = p.PollRead(buf, waker)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ok", string(buf[:n]))
}

func TestPollWriteSucceedsImmediately(t *testing.T) {
	a, _ := socketpair(t)
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	p := pollio.New(r, int32(a))
	waker := reactor.NewWaker(func() {})

	n, ready, err := p.PollWrite([]byte("data"), waker)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, 4, n)
}

func TestPollCloseSubmitsAndCompletes(t *testing.T) {
	a, _ := socketpair(t)
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	p := pollio.New(r, int32(a))
	waker := reactor.NewWaker(func() {})

	ready, err := p.PollClose(waker)
	require.NoError(t, err)
	assert.False(t, ready)

	require.True(t, ring.CompleteOldestSubmission(0, 0))
	require.NoError(t, r.Tick())

	ready, err = p.PollClose(waker)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestPollShutdownWithNoInFlightOpGoesStraightToShutdownSQE(t *testing.T) {
	a, _ := socketpair(t)
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	p := pollio.New(r, int32(a))
	waker := reactor.NewWaker(func() {})

	ready, err := p.PollShutdown(op.ShutdownBoth, waker)
	require.NoError(t, err)
	assert.False(t, ready)

	require.True(t, ring.CompleteOldestSubmission(0, 0))
	require.NoError(t, r.Tick())

	ready, err = p.PollShutdown(op.ShutdownBoth, waker)
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestPollShutdownCancelsInFlightReadFirst(t *testing.T) {
	a, _ := socketpair(t)
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	p := pollio.New(r, int32(a))
	waker := reactor.NewWaker(func() {})

	// Get a read in flight via EAGAIN fallback.
	buf := make([]byte, 8)
	_, ready, err := p.PollRead(buf, waker)
	require.NoError(t, err)
	require.False(t, ready)

	// Shutdown must cancel that PollAdd before ever submitting Shutdown.
	ready, err = p.PollShutdown(op.ShutdownBoth, waker)
	require.NoError(t, err)
	assert.False(t, ready)

	// Complete the cancel — it was submitted after the still-outstanding
	// PollAdd, so it is the newest submission, not the oldest.
	require.True(t, ring.CompleteNewestSubmission(0, 0))
	require.NoError(t, r.Tick())

	ready, err = p.PollShutdown(op.ShutdownBoth, waker)
	require.NoError(t, err)
	assert.False(t, ready, "cancel resolved: must self-wake and leave the real Shutdown for the next poll")

	// The self-woken poll submits the real Shutdown SQE, again newer than the
	// still-outstanding (never completed) original PollAdd.
	ready, err = p.PollShutdown(op.ShutdownBoth, waker)
	require.NoError(t, err)
	assert.False(t, ready)

	require.True(t, ring.CompleteNewestSubmission(0, 0))
	require.NoError(t, r.Tick())

	ready, err = p.PollShutdown(op.ShutdownBoth, waker)
	require.NoError(t, err)
	assert.True(t, ready)
}
