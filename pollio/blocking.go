package pollio

import "github.com/ehrlich-b/uringrt/reactor"

// Blocking wraps a PollIo as an io.Reader/io.Writer/io.Closer for callers
// that only know the standard synchronous contract and have no executor
// of their own to poll from — grounded on crates/uring-adapter/src/lib.rs's
// tokio-io/hyper-io conformance modules, which adapt the same PollIo to
// tokio's AsyncRead/AsyncWrite and hyper::rt's Read/Write so hyper's HTTP/1
// server can drive connections without knowing about io_uring. Go has no
// directly analogous async-trait surface, so Blocking instead drives the
// reactor's Tick loop itself on every would-block result, one caller
// goroutine at a time.
type Blocking struct {
	p *PollIo
}

// NewBlocking adapts p to io.Reader/io.Writer/io.Closer.
func NewBlocking(p *PollIo) *Blocking {
	return &Blocking{p: p}
}

// Read implements io.Reader by looping PollRead/Tick until data arrives or
// an error occurs.
func (b *Blocking) Read(buf []byte) (int, error) {
	waker := reactor.NewWaker(func() {})
	for {
		n, ready, err := b.p.PollRead(buf, waker)
		if ready {
			return n, err
		}
		if tickErr := b.p.r.Tick(); tickErr != nil {
			return 0, tickErr
		}
	}
}

// Write implements io.Writer by looping PollWrite/Tick until every byte of
// buf is accepted by the kernel, satisfying io.Writer's "short write without
// error is itself an error" contract.
func (b *Blocking) Write(buf []byte) (int, error) {
	waker := reactor.NewWaker(func() {})
	written := 0
	for written < len(buf) {
		n, ready, err := b.p.PollWrite(buf[written:], waker)
		if !ready {
			if tickErr := b.p.r.Tick(); tickErr != nil {
				return written, tickErr
			}
			continue
		}
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// Close drives PollClose to completion, releasing the underlying fd through
// io_uring rather than a direct close(2).
func (b *Blocking) Close() error {
	waker := reactor.NewWaker(func() {})
	for {
		ready, err := b.p.PollClose(waker)
		if ready {
			return err
		}
		if tickErr := b.p.r.Tick(); tickErr != nil {
			return tickErr
		}
	}
}
