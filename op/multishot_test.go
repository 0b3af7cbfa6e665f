package op_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehrlich-b/uringrt"
	"github.com/ehrlich-b/uringrt/op"
	"github.com/ehrlich-b/uringrt/reactor"
)

func TestMultishotYieldsOneItemPerCompletion(t *testing.T) {
	const more = uint32(1) << 1
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	stream := op.NewMultishot[int](r, &doubler{})
	waker := reactor.NewWaker(func() {})

	_, state, err := stream.Poll(waker)
	require.NoError(t, err)
	assert.Equal(t, op.StreamPending, state)
	lo, hi := stream.SizeHint()
	assert.Equal(t, 1, lo)
	assert.Nil(t, hi)

	require.True(t, ring.CompleteOldestSubmission(1, more))
	require.NoError(t, r.Tick())

	v, state, err := stream.Poll(waker)
	require.NoError(t, err)
	assert.Equal(t, op.StreamReady, state)
	assert.Equal(t, 2, v)

	// Still live: SizeHint says at least one more expected.
	lo, hi = stream.SizeHint()
	assert.Equal(t, 1, lo)
	assert.Nil(t, hi)
}

func TestMultishotFinishesOnMoreClear(t *testing.T) {
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	stream := op.NewMultishot[int](r, &doubler{})
	waker := reactor.NewWaker(func() {})

	_, _, _ = stream.Poll(waker)
	require.True(t, ring.CompleteOldestSubmission(5, 0)) // MORE clear: terminal
	require.NoError(t, r.Tick())

	_, state, err := stream.Poll(waker)
	require.NoError(t, err)
	assert.Equal(t, op.StreamReady, state)

	// The next poll reports end-of-stream without touching the reactor.
	_, state, err = stream.Poll(waker)
	require.NoError(t, err)
	assert.Equal(t, op.StreamDone, state)

	lo, hi := stream.SizeHint()
	assert.Equal(t, 0, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 0, *hi)
}

func TestMultishotFanOutThreeArrivals(t *testing.T) {
	const more = uint32(1) << 1
	ring := uringrt.NewFakeRing(8)
	r := reactor.New(ring)
	cap := &doubler{}
	stream := op.NewMultishot[int](r, cap)
	waker := reactor.NewWaker(func() {})

	_, _, err := stream.Poll(waker) // submits
	require.NoError(t, err)

	userData, ok := ring.PeekOldestSubmissionUserData()
	require.True(t, ok)
	require.True(t, ring.CompleteOldestSubmission(1, more)) // consumes the sole submission

	ring.InjectCompletion(userData, 2, more)
	ring.InjectCompletion(userData, 3, 0) // terminal
	require.NoError(t, r.Tick())

	for _, want := range []int32{1, 2, 3} {
		v, state, err := stream.Poll(waker)
		require.NoError(t, err)
		assert.Equal(t, op.StreamReady, state)
		assert.Equal(t, int(want)*2, v)
	}

	_, state, err := stream.Poll(waker)
	require.NoError(t, err)
	assert.Equal(t, op.StreamDone, state)
}
