package scan

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"syscall"
)

// ErrCancelled marks a Result built from a scan that was stopped before every
// port had been probed.
var ErrCancelled = errors.New("scan cancelled")

type InvalidRangeError struct {
	Start  int
	End    int
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid port range %d-%d: %s", e.Start, e.End, e.Reason)
}

type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve host '%s': %s", e.Host, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

type ProbeErrorKind uint8

const (
	KindOther ProbeErrorKind = iota
	KindRefused
	KindTimeout
	KindReset
	KindUnreachable
)

func (k ProbeErrorKind) String() string {
	switch k {
	case KindRefused:
		return "refused"
	case KindTimeout:
		return "timeout"
	case KindReset:
		return "reset"
	case KindUnreachable:
		return "unreachable"
	}
	return "other"
}

// ProbeError describes why a single probe did not find its port open. It never
// leaves the scan; it is attached to the Outcome for diagnostics only.
type ProbeError struct {
	Proto Protocol
	Port  int
	Kind  ProbeErrorKind
	Err   error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s probe of port %d failed (%s): %s", e.Proto, e.Port, e.Kind, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

func newProbeError(proto Protocol, port int, err error) *ProbeError {
	return &ProbeError{
		Proto: proto,
		Port:  port,
		Kind:  classify(err),
		Err:   err,
	}
}

func classify(err error) ProbeErrorKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return KindRefused
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, io.EOF):
		return KindReset
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return KindUnreachable
	case errors.Is(err, os.ErrDeadlineExceeded):
		return KindTimeout
	}
	// some platforms only surface the condition in the message
	msg := err.Error()
	switch {
	case strings.Contains(msg, "refused"):
		return KindRefused
	case strings.Contains(msg, "reset"):
		return KindReset
	case strings.Contains(msg, "unreachable"):
		return KindUnreachable
	}
	return KindOther
}
