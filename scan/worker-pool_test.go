package scan

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllProducesOneOutcomePerPort(t *testing.T) {
	ports := PortRange{Start: 1, End: 2000}.Ports()

	var calls int64
	outcomes := RunAll(context.Background(), ports, 64, func(port int) Outcome {
		atomic.AddInt64(&calls, 1)
		return Outcome{Port: port}
	})

	seen := map[int]int{}
	for outcome := range outcomes {
		seen[outcome.Port]++
	}

	assert.Equal(t, int64(len(ports)), atomic.LoadInt64(&calls))
	require.Len(t, seen, len(ports))
	for _, port := range ports {
		assert.Equal(t, 1, seen[port], "port %d", port)
	}
}

func TestRunAllBoundsParallelism(t *testing.T) {
	const parallelism = 8
	ports := PortRange{Start: 1, End: 200}.Ports()

	var inFlight, maxInFlight int64
	outcomes := RunAll(context.Background(), ports, parallelism, func(port int) Outcome {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			prev := atomic.LoadInt64(&maxInFlight)
			if n <= prev || atomic.CompareAndSwapInt64(&maxInFlight, prev, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return Outcome{Port: port}
	})

	count := 0
	for range outcomes {
		count++
	}

	assert.Equal(t, len(ports), count)
	assert.LessOrEqual(t, atomic.LoadInt64(&maxInFlight), int64(parallelism))
	assert.Greater(t, atomic.LoadInt64(&maxInFlight), int64(1))
}

func TestRunAllClampsParallelism(t *testing.T) {
	count := 0
	for range RunAll(context.Background(), []int{1, 2, 3}, 0, func(port int) Outcome {
		return Outcome{Port: port}
	}) {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestRunAllEmpty(t *testing.T) {
	count := 0
	for range RunAll(context.Background(), nil, 10, func(port int) Outcome {
		return Outcome{Port: port}
	}) {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestRunAllStopsDispatchOnCancel(t *testing.T) {
	const parallelism = 4
	ports := PortRange{Start: 1, End: 1000}.Ports()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int64
	outcomes := RunAll(ctx, ports, parallelism, func(port int) Outcome {
		if atomic.AddInt64(&calls, 1) == 20 {
			cancel()
		}
		time.Sleep(time.Millisecond)
		return Outcome{Port: port}
	})

	seen := map[int]bool{}
	for outcome := range outcomes {
		assert.False(t, seen[outcome.Port], "duplicate outcome for port %d", outcome.Port)
		seen[outcome.Port] = true
	}

	// work that started still reports; only the other workers can be mid-call
	assert.Equal(t, int(atomic.LoadInt64(&calls)), len(seen))
	assert.GreaterOrEqual(t, len(seen), 20)
	assert.LessOrEqual(t, len(seen), 20+parallelism-1)
}

func TestRunAllCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	count := 0
	for range RunAll(ctx, PortRange{Start: 1, End: 500}.Ports(), 16, func(port int) Outcome {
		atomic.AddInt64(&calls, 1)
		return Outcome{Port: port}
	}) {
		count++
	}

	assert.Equal(t, 0, count)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestRunAllSkipsPortsReceivedAfterCancel(t *testing.T) {
	ports := PortRange{Start: 1, End: 5000}.Ports()

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())

		var calls, afterCancel int64
		outcomes := RunAll(ctx, ports, 1, func(port int) Outcome {
			if ctx.Err() != nil {
				atomic.AddInt64(&afterCancel, 1)
			}
			if atomic.AddInt64(&calls, 1) == 5 {
				cancel()
			}
			return Outcome{Port: port}
		})

		count := 0
		for range outcomes {
			count++
		}
		cancel()

		// a single worker is never mid-call when it cancels, so nothing may
		// start afterwards
		assert.Equal(t, int64(0), atomic.LoadInt64(&afterCancel))
		assert.Equal(t, 5, count)
	}
}
