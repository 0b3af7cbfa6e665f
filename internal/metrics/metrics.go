// Package metrics adapts the ambient observability pattern used throughout
// this runtime's lineage: an Observer interface plus an atomic-counter
// Metrics struct implementing it, wired into the reactor's submit/tick hot
// path.
package metrics

import "sync/atomic"

// Observer is a pluggable hook for reactor and executor events. NoOp is the
// zero-cost default; Metrics is the built-in atomic-counter implementation.
type Observer interface {
	// ObserveSubmit is called each time Reactor.Submit inserts a new slot.
	ObserveSubmit()
	// ObserveComplete is called each time a CQE is folded into a slot.
	ObserveComplete()
	// ObserveTick is called once per Reactor.Tick, reporting how many CQEs
	// were drained, and once per Executor.Tick, reporting how many runnables
	// were run.
	ObserveTick(drained int)
	// ObserveQueueDepth is called with the current number of live slots.
	ObserveQueueDepth(depth int)
}

// NoOp is a zero-cost Observer implementation.
type NoOp struct{}

func (NoOp) ObserveSubmit()          {}
func (NoOp) ObserveComplete()        {}
func (NoOp) ObserveTick(int)         {}
func (NoOp) ObserveQueueDepth(int)   {}

// Metrics is an atomic-counter Observer that accumulates runtime statistics.
type Metrics struct {
	Submits       atomic.Uint64
	Completions   atomic.Uint64
	Ticks         atomic.Uint64
	DrainedTotal  atomic.Uint64
	MaxQueueDepth atomic.Uint32
}

// New creates a zeroed Metrics instance.
func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) ObserveSubmit() {
	m.Submits.Add(1)
}

func (m *Metrics) ObserveComplete() {
	m.Completions.Add(1)
}

func (m *Metrics) ObserveTick(drained int) {
	m.Ticks.Add(1)
	m.DrainedTotal.Add(uint64(drained))
}

func (m *Metrics) ObserveQueueDepth(depth int) {
	d := uint32(depth)
	for {
		cur := m.MaxQueueDepth.Load()
		if d <= cur {
			return
		}
		if m.MaxQueueDepth.CompareAndSwap(cur, d) {
			return
		}
	}
}

// Snapshot is a point-in-time copy of Metrics' counters.
type Snapshot struct {
	Submits       uint64
	Completions   uint64
	Ticks         uint64
	DrainedTotal  uint64
	MaxQueueDepth uint32
}

// Snapshot takes a point-in-time copy of m's counters.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Submits:       m.Submits.Load(),
		Completions:   m.Completions.Load(),
		Ticks:         m.Ticks.Load(),
		DrainedTotal:  m.DrainedTotal.Load(),
		MaxQueueDepth: m.MaxQueueDepth.Load(),
	}
}

var (
	_ Observer = (*Metrics)(nil)
	_ Observer = NoOp{}
)
