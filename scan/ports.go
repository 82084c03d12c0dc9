package scan

// DescribePort returns the IANA service name registered for port, or an empty
// string when there is none.
func DescribePort(proto Protocol, port int) string {
	known := knownTCPPorts
	if proto == UDP {
		known = knownUDPPorts
	}
	if s, ok := known[port]; ok {
		return s
	}

	return ""
}
