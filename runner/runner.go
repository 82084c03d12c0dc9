// Package runner launches external programs and streams their output line by
// line.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Stream uint8

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// LineSink receives output lines. Calls are serialized.
type LineSink interface {
	OnLine(stream Stream, line string)
}

type LineSinkFunc func(stream Stream, line string)

func (f LineSinkFunc) OnLine(stream Stream, line string) {
	f(stream, line)
}

// WaitDelay is how long Run keeps reading output after ctx is cancelled.
// Programs that leave children behind holding the output pipes would
// otherwise keep Run blocked until those children exit.
var WaitDelay = 2 * time.Second

// MaxLineLength is the longest line forwarded to a LineSink. Once a stream
// produces a longer line, the rest of that stream is discarded.
const MaxLineLength = 1024 * 1024

type line struct {
	stream Stream
	text   string
}

// Run starts name with args, forwards every line it writes to sink and waits
// for it to exit. The exit status is returned as exitCode; err is only set
// when the program could not be run at all or its output could not be read.
// Cancelling ctx kills the process; Run returns at most WaitDelay later.
func Run(ctx context.Context, name string, args []string, sink LineSink) (int, error) {

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = WaitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("stderr pipe: %w", err)
	}

	log.Debugf("Running %s %v", name, args)
	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start %s: %w", name, err)
	}

	lines := make(chan line)
	readErrs := make(chan error, 2)
	wg := &sync.WaitGroup{}

	read := func(r io.Reader, stream Stream) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), MaxLineLength)
		for scanner.Scan() {
			lines <- line{stream: stream, text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			readErrs <- fmt.Errorf("read %s: %w", stream, err)
			// keep the pipe flowing or the program blocks on a full pipe
			_, _ = io.Copy(io.Discard, r)
		}
	}

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-finished:
			return
		case <-ctx.Done():
		}
		select {
		case <-finished:
		case <-time.After(WaitDelay):
			log.Debugf("%s still holds its output open after cancellation, closing pipes", name)
			_ = stdout.Close()
			_ = stderr.Close()
		}
	}()

	wg.Add(2)
	go read(stdout, Stdout)
	go read(stderr, Stderr)

	go func() {
		wg.Wait()
		close(lines)
	}()

	for l := range lines {
		sink.OnLine(l.stream, l.text)
	}
	close(readErrs)

	waitErr := cmd.Wait()

	var readErr error
	for err := range readErrs {
		readErr = errors.Join(readErr, err)
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), readErr
		}
		return -1, errors.Join(waitErr, readErr)
	}

	return 0, readErr
}
