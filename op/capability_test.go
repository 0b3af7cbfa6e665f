package op

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrFromResNonNegativeIsNil(t *testing.T) {
	assert.NoError(t, errFromRes(0))
	assert.NoError(t, errFromRes(42))
}

func TestErrFromResNegativeIsErrno(t *testing.T) {
	err := errFromRes(-int32(syscall.EBADF))
	assert.ErrorIs(t, err, syscall.EBADF)
}
