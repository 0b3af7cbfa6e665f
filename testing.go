package uringrt

import (
	"container/list"

	"github.com/pawelgaczynski/giouring"
)

// FakeRing is an in-memory reactor.Ring usable by consumers of this module
// in their own tests, the same spirit as a hand-built mock for an external
// dependency: it tracks calls so assertions can inspect what was built and
// completed without exercising a live kernel.
type FakeRing struct {
	depth int

	pendingSQEs []*giouring.SubmissionQueueEntry
	submitted   *list.List // of *giouring.SubmissionQueueEntry, "sent to the kernel"
	completions *list.List // of *giouring.CompletionQueueEntry, queued for PeekCQE

	SubmitCalls          int
	SubmitAndWaitCalls   int
	GetSQECalls          int
	ClosedCalled         bool
}

// NewFakeRing creates a FakeRing with room for depth pending SQEs before
// GetSQE starts returning nil (simulating a full ring).
func NewFakeRing(depth int) *FakeRing {
	return &FakeRing{
		depth:       depth,
		submitted:   list.New(),
		completions: list.New(),
	}
}

func (f *FakeRing) GetSQE() *giouring.SubmissionQueueEntry {
	f.GetSQECalls++
	if len(f.pendingSQEs) >= f.depth {
		return nil
	}
	sqe := &giouring.SubmissionQueueEntry{}
	f.pendingSQEs = append(f.pendingSQEs, sqe)
	return sqe
}

func (f *FakeRing) Submit() (int, error) {
	f.SubmitCalls++
	n := len(f.pendingSQEs)
	for _, sqe := range f.pendingSQEs {
		f.submitted.PushBack(sqe)
	}
	f.pendingSQEs = nil
	return n, nil
}

// SQReady reports how many SQEs GetSQE has handed out but Submit has not
// yet flushed, mirroring the real ring's submission-queue-ready count.
func (f *FakeRing) SQReady() uint32 {
	return uint32(len(f.pendingSQEs))
}

func (f *FakeRing) SubmitAndWaitCQEs(waitNr uint32) (int, error) {
	f.SubmitAndWaitCalls++
	n, _ := f.Submit()
	return n, nil
}

func (f *FakeRing) PeekCQE() (*giouring.CompletionQueueEntry, bool) {
	front := f.completions.Front()
	if front == nil {
		return nil, false
	}
	return front.Value.(*giouring.CompletionQueueEntry), true
}

func (f *FakeRing) CQESeen(cqe *giouring.CompletionQueueEntry) {
	front := f.completions.Front()
	if front != nil && front.Value.(*giouring.CompletionQueueEntry) == cqe {
		f.completions.Remove(front)
	}
}

func (f *FakeRing) Close() error {
	f.ClosedCalled = true
	return nil
}

// flush moves any not-yet-flushed SQEs into the submitted list. Reactor.Submit
// only queues SQEs locally (a real Submit/Tick is what flushes them), so
// every test hook below flushes first rather than forcing callers to
// interleave a flush-only Tick of their own.
func (f *FakeRing) flush() {
	if len(f.pendingSQEs) > 0 {
		f.Submit()
	}
}

// CompleteOldestSubmission is the test-side hook standing in for "the
// kernel finished an operation, in submission order": it pops the oldest
// submitted SQE and enqueues a matching CQE carrying its user-data, so a
// subsequent Reactor.Tick will drain it. Callers are responsible for having
// already written UserData into the SQE (Reactor.Submit does this).
func (f *FakeRing) CompleteOldestSubmission(res int32, flags uint32) bool {
	f.flush()
	front := f.submitted.Front()
	if front == nil {
		return false
	}
	sqe := front.Value.(*giouring.SubmissionQueueEntry)
	f.submitted.Remove(front)
	f.completions.PushBack(&giouring.CompletionQueueEntry{
		UserData: sqe.UserData,
		Res:      res,
		Flags:    flags,
	})
	return true
}

// CompleteNewestSubmission mirrors CompleteOldestSubmission but completes
// the most recently submitted SQE instead of the oldest. Tests reach for
// this when a later submission (e.g. a Cancel naming an earlier op) must be
// completed independently of whatever was submitted before it.
func (f *FakeRing) CompleteNewestSubmission(res int32, flags uint32) bool {
	f.flush()
	back := f.submitted.Back()
	if back == nil {
		return false
	}
	sqe := back.Value.(*giouring.SubmissionQueueEntry)
	f.submitted.Remove(back)
	f.completions.PushBack(&giouring.CompletionQueueEntry{
		UserData: sqe.UserData,
		Res:      res,
		Flags:    flags,
	})
	return true
}

// PendingSubmissionCount reports how many SQEs have been submitted to the
// fake kernel but not yet completed.
func (f *FakeRing) PendingSubmissionCount() int {
	return f.submitted.Len()
}

// PeekOldestSubmissionUserData reports the user-data field of the oldest
// submitted-but-not-yet-completed SQE, without consuming it. Tests use this
// to learn a multishot operation's assigned identifier so they can deliver
// several completions for it via InjectCompletion.
func (f *FakeRing) PeekOldestSubmissionUserData() (uint64, bool) {
	f.flush()
	front := f.submitted.Front()
	if front == nil {
		return 0, false
	}
	return front.Value.(*giouring.SubmissionQueueEntry).UserData, true
}

// InjectCompletion queues a completion carrying userData directly, without
// consuming an entry from the submitted list. This is the hook tests reach
// for to simulate a multishot operation's second (and later) arrival: the
// kernel does not retire a multishot SQE's slot in the submission-tracking
// sense between completions, so CompleteOldestSubmission's one-CQE-per-SQE
// bookkeeping does not model it.
func (f *FakeRing) InjectCompletion(userData uint64, res int32, flags uint32) {
	f.completions.PushBack(&giouring.CompletionQueueEntry{
		UserData: userData,
		Res:      res,
		Flags:    flags,
	})
}

// FakeClock is a deterministic stand-in for wall-clock reads, in UnixNano.
// No type in this module reads a clock; metrics records counters only.
type FakeClock struct {
	nowNanos int64
}

// NewFakeClock creates a FakeClock starting at the given UnixNano instant.
func NewFakeClock(startNanos int64) *FakeClock {
	return &FakeClock{nowNanos: startNanos}
}

// Now returns the clock's current instant, in UnixNano.
func (c *FakeClock) Now() int64 {
	return c.nowNanos
}

// Advance moves the clock forward by nanos.
func (c *FakeClock) Advance(nanos int64) {
	c.nowNanos += nanos
}
