package op

import (
	"net"
	"unsafe"

	"github.com/pawelgaczynski/giouring"

	"github.com/ehrlich-b/uringrt/reactor"
)

// Connect takes a borrowed descriptor and owns the encoded sockaddr for the
// operation's lifetime. It is Accept's symmetric counterpart on the client
// side.
type Connect struct {
	fd   BorrowedFD
	addr []byte
}

// NewConnect builds a Connect capability toward ip:port.
func NewConnect(fd BorrowedFD, ip net.IP, port int) (*Connect, error) {
	raw, err := encodeSockaddr(ip, port)
	if err != nil {
		return nil, err
	}
	return &Connect{fd: fd, addr: raw}, nil
}

func (c *Connect) Build(sqe *giouring.SubmissionQueueEntry) {
	sqe.PrepareConnect(int32(c.fd), uint64(uintptr(unsafe.Pointer(&c.addr[0]))), uint64(len(c.addr)))
}

func (c *Connect) Interpret(cqe reactor.Completion) (struct{}, error) {
	return struct{}{}, errFromRes(cqe.Res)
}
