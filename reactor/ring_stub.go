//go:build !linux

package reactor

import "fmt"

// NewKernelRing is only available on linux, where io_uring exists. Non-linux
// builds can still use FakeRing (see the module-root testing.go) for tests
// that do not require a live kernel.
func NewKernelRing(entries uint32) (Ring, error) {
	return nil, fmt.Errorf("reactor: io_uring is only available on linux")
}
