package scan

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Outcome is the result of probing a single port once.
type Outcome struct {
	Port  int
	State PortState
	Err   *ProbeError
}

func (o Outcome) IsOpen() bool {
	return o.State == PortOpen
}

// ProbeFunc probes one port of an already resolved host.
type ProbeFunc func(host string, port int, timeout time.Duration) Outcome

// Probe dispatches to the probe for proto. It never returns an error: every
// network failure is folded into a PortClosedOrFiltered outcome.
func Probe(proto Protocol, host string, port int, timeout time.Duration) Outcome {
	return probeFor(proto)(host, port, timeout)
}

func probeFor(proto Protocol) ProbeFunc {
	if proto == UDP {
		return ProbeUDP
	}
	return ProbeTCP
}

func mustBeValidPort(port int) {
	if port < MinPort || port > MaxPort {
		panic(fmt.Sprintf("scan: invalid port %d", port))
	}
}

func address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
