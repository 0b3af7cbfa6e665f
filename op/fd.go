package op

import "fmt"

// BorrowedFD is a zero-cost, non-owning reference to a file descriptor. It
// carries no release obligation; the descriptor must outlive the operation
// that borrows it.
type BorrowedFD int32

// OwnedFD is a file descriptor this package's catalog takes ownership of.
// Go has no destructor-based close-on-drop, so callers that never submit an
// OwnedFD to Close remain responsible for calling Close themselves; Release
// exists only for the Close capability, to guarantee a descriptor can never
// be released twice.
type OwnedFD struct {
	fd       int32
	released bool
}

// NewOwnedFD wraps a raw file descriptor, taking ownership of it.
func NewOwnedFD(fd int32) *OwnedFD {
	return &OwnedFD{fd: fd}
}

// Borrow returns a non-owning view of the descriptor.
func (o *OwnedFD) Borrow() BorrowedFD {
	return BorrowedFD(o.fd)
}

// Release consumes the OwnedFD, returning its raw descriptor for exactly one
// caller. A second call panics: the Close capability's whole point is that
// the descriptor it releases into the kernel can never be double-closed.
func (o *OwnedFD) Release() int32 {
	if o.released {
		panic(fmt.Sprintf("op: OwnedFD %d released twice", o.fd))
	}
	o.released = true
	return o.fd
}
