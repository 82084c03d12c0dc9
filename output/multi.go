package output

import (
	"errors"

	"github.com/csak/csak/scan"
)

type multiSink struct {
	sinks []scan.Sink
}

// Multi fans every event out to each of sinks in order. OnDone is delivered to
// all of them even if some fail; their errors are joined.
func Multi(sinks ...scan.Sink) scan.Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) OnOpen(port int) {
	for _, s := range m.sinks {
		s.OnOpen(port)
	}
}

func (m *multiSink) OnProgress(completed, total int) {
	for _, s := range m.sinks {
		s.OnProgress(completed, total)
	}
}

func (m *multiSink) OnDone(open []int) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.OnDone(open); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
