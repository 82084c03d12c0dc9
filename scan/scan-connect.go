package scan

import (
	"net"
	"time"
)

// ProbeTCP performs a full connect to host:port. A completed handshake means
// the port is open; refusal, reset, timeout or any other error means it is not.
func ProbeTCP(host string, port int, timeout time.Duration) Outcome {
	mustBeValidPort(port)

	conn, err := net.DialTimeout("tcp", address(host, port), timeout)
	if err != nil {
		return Outcome{
			Port:  port,
			State: PortClosedOrFiltered,
			Err:   newProbeError(TCP, port, err),
		}
	}
	_ = conn.Close()

	return Outcome{Port: port, State: PortOpen}
}
