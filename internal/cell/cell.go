// Package cell provides a single-threaded, runtime-checked exclusive-access
// cell. It is the interior-mutability primitive the reactor and executor use
// to expose shared-reference APIs while mutating their internal tables.
//
// Go has no compile-time equivalent of a type that is statically forbidden
// from crossing threads. Cell approximates the same discipline at runtime:
// the first goroutine to touch a Cell becomes its owner, and any access from
// a different goroutine, or any re-entrant access from the same goroutine,
// panics instead of silently racing.
package cell

import (
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
)

// Cell wraps a value of type T behind a runtime-checked exclusive-access
// gate. Use With to run a closure against the held value.
type Cell[T any] struct {
	owner int64 // goroutine id of the first caller; 0 until claimed
	held  atomic.Bool
	value T
}

// New creates a Cell owning v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// With acquires exclusive access to the cell's value, runs fn against a
// pointer to it, and releases access before returning. It panics if the
// cell is already held (re-entrant access) or if called from a goroutine
// other than the one that first acquired it.
func With[T any, R any](c *Cell[T], fn func(*T) R) R {
	gid := goroutineID()
	if owner := atomic.LoadInt64(&c.owner); owner == 0 {
		atomic.CompareAndSwapInt64(&c.owner, 0, gid)
	} else if owner != gid {
		panic(fmt.Sprintf("cell: accessed from goroutine %d, owned by goroutine %d", gid, owner))
	}
	if !c.held.CompareAndSwap(false, true) {
		panic("cell: re-entrant access")
	}
	defer c.held.Store(false)
	return fn(&c.value)
}

// goroutineID extracts the calling goroutine's id from its stack trace
// header. This is the same technique used by goroutine-id-introspection
// helpers throughout the ecosystem (e.g. joeycumines/goroutineid): there is
// no supported API for this, so we parse "goroutine NNN [running]:".
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := string(buf[:n])
	const prefix = "goroutine "
	if len(s) < len(prefix) || s[:len(prefix)] != prefix {
		return -1
	}
	s = s[len(prefix):]
	i := 0
	for i < len(s) && s[i] != ' ' {
		i++
	}
	id, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return -1
	}
	return id
}
