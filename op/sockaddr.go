package op

import (
	"encoding/binary"
	"fmt"
	"net"
	"unsafe"

	"golang.org/x/sys/unix"
)

// encodeSockaddr marshals an IPv4 or IPv6 address into the raw bytes the
// kernel expects for sockaddr_in / sockaddr_in6, matching the host ABI per
// the external interfaces the runtime relies on.
func encodeSockaddr(ip net.IP, port int) ([]byte, error) {
	if v4 := ip.To4(); v4 != nil {
		var sa unix.RawSockaddrInet4
		sa.Family = unix.AF_INET
		binary.BigEndian.PutUint16((*[2]byte)(unsafe.Pointer(&sa.Port))[:], uint16(port))
		copy(sa.Addr[:], v4)
		buf := make([]byte, unsafe.Sizeof(sa))
		*(*unix.RawSockaddrInet4)(unsafe.Pointer(&buf[0])) = sa
		return buf, nil
	}
	if v6 := ip.To16(); v6 != nil {
		var sa unix.RawSockaddrInet6
		sa.Family = unix.AF_INET6
		binary.BigEndian.PutUint16((*[2]byte)(unsafe.Pointer(&sa.Port))[:], uint16(port))
		copy(sa.Addr[:], v6)
		buf := make([]byte, unsafe.Sizeof(sa))
		*(*unix.RawSockaddrInet6)(unsafe.Pointer(&buf[0])) = sa
		return buf, nil
	}
	return nil, fmt.Errorf("op: unsupported address %v", ip)
}

// decodeSockaddr parses a sockaddr_storage the kernel filled in (e.g. after
// Accept) back into a net.Addr.
func decodeSockaddr(raw *unix.RawSockaddrAny) (net.Addr, error) {
	switch raw.Addr.Family {
	case unix.AF_INET:
		sa := (*unix.RawSockaddrInet4)(unsafe.Pointer(raw))
		port := binary.BigEndian.Uint16((*[2]byte)(unsafe.Pointer(&sa.Port))[:])
		ip := make(net.IP, 4)
		copy(ip, sa.Addr[:])
		return &net.TCPAddr{IP: ip, Port: int(port)}, nil
	case unix.AF_INET6:
		sa := (*unix.RawSockaddrInet6)(unsafe.Pointer(raw))
		port := binary.BigEndian.Uint16((*[2]byte)(unsafe.Pointer(&sa.Port))[:])
		ip := make(net.IP, 16)
		copy(ip, sa.Addr[:])
		return &net.TCPAddr{IP: ip, Port: int(port)}, nil
	default:
		return nil, fmt.Errorf("op: unsupported address family %d", raw.Addr.Family)
	}
}
