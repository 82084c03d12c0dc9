package scan

import (
	"context"
	"errors"
	"net"
	"sort"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// Sink receives the events of a scan. Calls are never concurrent, so
// implementations need no locking of their own.
type Sink interface {
	OnOpen(port int)
	OnProgress(completed, total int)
	OnDone(open []int) error
}

type State int32

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var ErrAlreadyStarted = errors.New("scan job has already been started")

type Resolver func(ctx context.Context, host string) (net.IP, error)

// Scanner holds the settings shared by every scan it starts.
type Scanner struct {
	timeout      time.Duration
	parallelism  int
	probe        ProbeFunc
	resolve      Resolver
	lookupDevice func(net.IP) Device
}

type Option func(*Scanner)

// WithProbe replaces the network probe, regardless of the target protocol.
func WithProbe(probe ProbeFunc) Option {
	return func(s *Scanner) {
		s.probe = probe
	}
}

func WithResolver(resolve Resolver) Option {
	return func(s *Scanner) {
		s.resolve = resolve
	}
}

func WithDeviceLookup(lookup func(net.IP) Device) Option {
	return func(s *Scanner) {
		s.lookupDevice = lookup
	}
}

func NewScanner(timeout time.Duration, parallelism int, options ...Option) *Scanner {
	if parallelism < 1 {
		parallelism = DefaultParallelism
	}
	s := &Scanner{
		timeout:      timeout,
		parallelism:  parallelism,
		resolve:      Resolve,
		lookupDevice: LookupDevice,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Scan probes every port of ports on target and blocks until they are all
// done or ctx is cancelled. See Job.Run.
func (s *Scanner) Scan(ctx context.Context, target Target, ports PortRange, sink Sink) (Result, error) {
	return s.NewJob(target, ports).Run(ctx, sink)
}

func (s *Scanner) NewJob(target Target, ports PortRange) *Job {
	return &Job{
		scanner: s,
		target:  target,
		ports:   ports,
		total:   int64(ports.Len()),
	}
}

// Job is a single scan. State and Progress may be read from any goroutine
// while Run is in progress.
type Job struct {
	scanner   *Scanner
	target    Target
	ports     PortRange
	started   int32
	state     int32
	completed int64
	total     int64
}

func (j *Job) State() State {
	return State(atomic.LoadInt32(&j.state))
}

func (j *Job) Progress() Progress {
	return Progress{
		Completed: int(atomic.LoadInt64(&j.completed)),
		Total:     int(atomic.LoadInt64(&j.total)),
	}
}

func (j *Job) setState(state State) {
	atomic.StoreInt32(&j.state, int32(state))
}

// Run executes the job. It fails before any probe is sent if the range is
// invalid or the host cannot be resolved. Once probing starts, per-port
// failures only ever count as closed|filtered ports.
//
// If ctx is cancelled mid-scan, Run returns the ports found so far with
// State StateCancelled and Err ErrCancelled, and a nil error.
func (j *Job) Run(ctx context.Context, sink Sink) (Result, error) {

	if !atomic.CompareAndSwapInt32(&j.started, 0, 1) {
		return Result{}, ErrAlreadyStarted
	}

	if sink == nil {
		sink = discard{}
	}

	s := j.scanner
	result := NewResult(j.target, j.ports)
	result.StartedAt = time.Now()

	fail := func(err error) (Result, error) {
		j.setState(StateFailed)
		result.State = StateFailed
		result.Err = err
		result.FinishedAt = time.Now()
		return result, err
	}

	if err := j.ports.Validate(); err != nil {
		return fail(err)
	}

	ip, err := s.resolve(ctx, j.target.Host)
	if err != nil {
		return fail(err)
	}
	result.IP = ip

	probe := s.probe
	if probe == nil {
		probe = probeFor(j.target.Protocol)
	}

	host := ip.String()
	total := j.ports.Len()

	j.setState(StateRunning)
	log.WithFields(log.Fields{
		"host":  j.target.Host,
		"ip":    host,
		"proto": j.target.Protocol.String(),
		"ports": j.ports.String(),
	}).Debugf("Scanning %d ports on %d routines...", total, s.parallelism)

	outcomes := RunAll(ctx, j.ports.Ports(), s.parallelism, func(port int) Outcome {
		return probe(host, port, s.timeout)
	})

	// single consumer: the only writer of open and completed
	open := []int{}
	for outcome := range outcomes {
		completed := atomic.AddInt64(&j.completed, 1)
		if outcome.IsOpen() {
			open = append(open, outcome.Port)
			sink.OnOpen(outcome.Port)
		} else if outcome.Err != nil && log.IsLevelEnabled(log.DebugLevel) {
			log.WithFields(log.Fields{
				"proto": outcome.Err.Proto.String(),
				"port":  outcome.Port,
				"kind":  outcome.Err.Kind.String(),
			}).Debug(outcome.Err.Err)
		}
		sink.OnProgress(int(completed), total)
	}

	sort.Ints(open)
	result.Open = open
	result.Progress = j.Progress()

	if result.Progress.Completed < total {
		j.setState(StateCancelled)
		result.State = StateCancelled
		result.Err = ErrCancelled
	} else {
		j.setState(StateCompleted)
		result.State = StateCompleted
	}

	if s.lookupDevice != nil {
		device := s.lookupDevice(ip)
		result.MAC = device.MAC
		result.Manufacturer = device.Manufacturer
	}

	result.FinishedAt = time.Now()

	if err := sink.OnDone(result.Open); err != nil {
		return result, err
	}

	return result, nil
}

type discard struct{}

func (discard) OnOpen(int) {}

func (discard) OnProgress(int, int) {}

func (discard) OnDone([]int) error {
	return nil
}
