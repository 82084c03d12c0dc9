package scan

import (
	"context"
	"fmt"
	"net"
	"strings"
)

type Protocol uint8

const (
	TCP Protocol = iota
	UDP
)

func (p Protocol) String() string {
	if p == UDP {
		return "udp"
	}
	return "tcp"
}

type PortState uint8

const (
	PortClosedOrFiltered PortState = iota
	PortOpen
)

func (s PortState) String() string {
	if s == PortOpen {
		return "open"
	}
	return "closed|filtered"
}

// Target is the host/protocol pair a scan runs against. Host is kept exactly
// as given; it is resolved once when the scan starts.
type Target struct {
	Host     string
	Protocol Protocol
}

func NewTarget(host string, proto Protocol) Target {
	return Target{
		Host:     strings.TrimSpace(host),
		Protocol: proto,
	}
}

// Resolve turns a hostname or literal IP into the address probes are sent to.
// IPv4 addresses are preferred when a name has both families.
func Resolve(ctx context.Context, host string) (net.IP, error) {
	if host == "" {
		return nil, &ResolutionError{Host: host, Err: fmt.Errorf("empty host")}
	}

	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, &ResolutionError{Host: host, Err: err}
	}
	if len(addrs) == 0 {
		return nil, &ResolutionError{Host: host, Err: fmt.Errorf("no addresses found")}
	}

	for _, addr := range addrs {
		if v4 := addr.IP.To4(); v4 != nil {
			return v4, nil
		}
	}
	return addrs[0].IP, nil
}
