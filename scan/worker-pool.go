package scan

import (
	"context"
	"sync"
)

// DefaultParallelism bounds the number of probes in flight when the caller
// does not choose. Each probe holds a socket, so this must stay well under
// the usual open file limit.
const DefaultParallelism = 500

// RunAll runs work once for every port on at most parallelism goroutines and
// streams the outcomes in completion order. The channel is closed once every
// dispatched port has produced exactly one outcome.
//
// Cancelling ctx stops dispatch of further ports. Work already running when
// ctx is cancelled still completes and reports; a port a worker picks up
// after cancellation is dropped without running. After cancellation the
// channel therefore carries fewer outcomes than len(ports). The caller must
// drain the channel.
func RunAll(ctx context.Context, ports []int, parallelism int, work ProbeWork) <-chan Outcome {

	if parallelism < 1 {
		parallelism = 1
	}
	if len(ports) > 0 && parallelism > len(ports) {
		parallelism = len(ports)
	}

	jobChan := make(chan int)
	resultChan := make(chan Outcome, parallelism)
	wg := &sync.WaitGroup{}

	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := range jobChan {
				// dispatch may still win its select against ctx.Done()
				if ctx.Err() != nil {
					continue
				}
				resultChan <- work(port)
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, port := range ports {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case jobChan <- port:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	return resultChan
}

// ProbeWork probes a single port.
type ProbeWork func(port int) Outcome
