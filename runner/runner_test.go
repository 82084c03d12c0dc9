package runner

import (
	"bufio"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	stdout []string
	stderr []string
}

func (r *recorder) OnLine(stream Stream, line string) {
	if stream == Stderr {
		r.stderr = append(r.stderr, line)
		return
	}
	r.stdout = append(r.stdout, line)
}

func requireShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRunStreamsLinesAndExitCode(t *testing.T) {
	requireShell(t)

	rec := &recorder{}
	code, err := Run(context.Background(), "sh", []string{"-c", "echo one; echo two; echo oops 1>&2; exit 3"}, rec)
	require.NoError(t, err)

	assert.Equal(t, 3, code)
	assert.Equal(t, []string{"one", "two"}, rec.stdout)
	assert.Equal(t, []string{"oops"}, rec.stderr)
}

func TestRunSuccess(t *testing.T) {
	requireShell(t)

	var lines []string
	code, err := Run(context.Background(), "sh", []string{"-c", "printf 'a\\nb'"}, LineSinkFunc(func(stream Stream, line string) {
		lines = append(lines, stream.String()+":"+line)
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"stdout:a", "stdout:b"}, lines)
}

func TestRunMissingProgram(t *testing.T) {
	code, err := Run(context.Background(), "csak-no-such-program", nil, &recorder{})
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestRunCancel(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	code, _ := Run(ctx, "sh", []string{"-c", "exec sleep 10"}, &recorder{})
	assert.NotEqual(t, 0, code)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunDrainsAfterOverlongLine(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// the program writes well past the pipe buffer after the long line
	script := "head -c 2097152 /dev/zero | tr '\\0' a; echo; head -c 1048576 /dev/zero; echo 1>&2 done"
	rec := &recorder{}
	code, err := Run(ctx, "sh", []string{"-c", script}, rec)

	require.NoError(t, ctx.Err(), "program blocked on a full pipe")
	assert.Equal(t, 0, code)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Empty(t, rec.stdout)
	assert.Equal(t, []string{"done"}, rec.stderr)
}

func TestRunCancelWithChildHoldingOutput(t *testing.T) {
	requireShell(t)

	prev := WaitDelay
	WaitDelay = 200 * time.Millisecond
	defer func() { WaitDelay = prev }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// the background sleep outlives the killed shell and keeps both pipes open
	start := time.Now()
	code, _ := Run(ctx, "sh", []string{"-c", "sleep 5 & wait"}, &recorder{})
	assert.NotEqual(t, 0, code)
	assert.Less(t, time.Since(start), 3*time.Second)
}
