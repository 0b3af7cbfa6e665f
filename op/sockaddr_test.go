package op

import (
	"net"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSockaddrIPv4RoundTrip(t *testing.T) {
	raw, err := encodeSockaddr(net.ParseIP("192.0.2.10"), 4242)
	require.NoError(t, err)
	require.Equal(t, int(unsafe.Sizeof(unix.RawSockaddrInet4{})), len(raw))

	var any unix.RawSockaddrAny
	copy((*[unsafe.Sizeof(unix.RawSockaddrAny{})]byte)(unsafe.Pointer(&any))[:], raw)

	addr, err := decodeSockaddr(&any)
	require.NoError(t, err)
	tcp, ok := addr.(*net.TCPAddr)
	require.True(t, ok)
	assert.Equal(t, 4242, tcp.Port)
	assert.True(t, tcp.IP.Equal(net.ParseIP("192.0.2.10")))
}

func TestEncodeDecodeSockaddrIPv6RoundTrip(t *testing.T) {
	raw, err := encodeSockaddr(net.ParseIP("2001:db8::1"), 9000)
	require.NoError(t, err)
	require.Equal(t, int(unsafe.Sizeof(unix.RawSockaddrInet6{})), len(raw))

	var any unix.RawSockaddrAny
	copy((*[unsafe.Sizeof(unix.RawSockaddrAny{})]byte)(unsafe.Pointer(&any))[:], raw)

	addr, err := decodeSockaddr(&any)
	require.NoError(t, err)
	tcp, ok := addr.(*net.TCPAddr)
	require.True(t, ok)
	assert.Equal(t, 9000, tcp.Port)
	assert.True(t, tcp.IP.Equal(net.ParseIP("2001:db8::1")))
}

func TestDecodeSockaddrUnknownFamily(t *testing.T) {
	var any unix.RawSockaddrAny
	_, err := decodeSockaddr(&any)
	assert.Error(t, err)
}
