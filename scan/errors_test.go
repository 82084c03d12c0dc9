package scan

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		kind ProbeErrorKind
	}{
		{&os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED}, KindRefused},
		{fmt.Errorf("read: %w", syscall.ECONNRESET), KindReset},
		{os.ErrDeadlineExceeded, KindTimeout},
		{syscall.EHOSTUNREACH, KindUnreachable},
		{errors.New("dial tcp: connection refused"), KindRefused},
		{errors.New("something else"), KindOther},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, classify(c.err), c.err.Error())
	}
}

func TestProbeErrorUnwraps(t *testing.T) {
	err := newProbeError(UDP, 161, syscall.ECONNREFUSED)
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	assert.Equal(t, KindRefused, err.Kind)
	assert.Contains(t, err.Error(), "udp probe of port 161 failed (refused)")
}
