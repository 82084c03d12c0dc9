package scan

import (
	"net"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	log "github.com/sirupsen/logrus"
)

var defaultUDPPayload = []byte{0x00}

var (
	udpPayloadsOnce sync.Once
	udpPayloads     map[int][]byte
)

// udpPayload returns the datagram sent to port. Most ports get a single zero
// byte; well-known ports whose services ignore garbage get a valid request.
func udpPayload(port int) []byte {
	udpPayloadsOnce.Do(func() {
		udpPayloads = map[int][]byte{}
		if dns, err := dnsVersionQuery(); err == nil {
			udpPayloads[53] = dns
		} else {
			log.Debugf("Failed to build DNS probe payload: %s", err)
		}
	})
	if payload, ok := udpPayloads[port]; ok {
		return payload
	}
	return defaultUDPPayload
}

// dnsVersionQuery serializes a "version.bind CH TXT" query.
func dnsVersionQuery() ([]byte, error) {
	dns := &layers.DNS{
		ID:     0x4353,
		RD:     true,
		OpCode: layers.DNSOpCodeQuery,
		Questions: []layers.DNSQuestion{
			{
				Name:  []byte("version.bind"),
				Type:  layers.DNSTypeTXT,
				Class: layers.DNSClassCH,
			},
		},
	}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, dns); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ProbeUDP sends one datagram to host:port and waits up to timeout for any
// reply. A reply means open. Silence, an ICMP unreachable surfaced as a socket
// error, or any other failure all map to PortClosedOrFiltered: without a reply
// there is no way to tell a closed port from a filtered one.
func ProbeUDP(host string, port int, timeout time.Duration) Outcome {
	mustBeValidPort(port)

	closed := func(err error) Outcome {
		return Outcome{
			Port:  port,
			State: PortClosedOrFiltered,
			Err:   newProbeError(UDP, port, err),
		}
	}

	conn, err := net.DialTimeout("udp", address(host, port), timeout)
	if err != nil {
		return closed(err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return closed(err)
	}

	if _, err := conn.Write(udpPayload(port)); err != nil {
		return closed(err)
	}

	buf := make([]byte, 1500)
	if _, err := conn.Read(buf); err != nil {
		return closed(err)
	}

	return Outcome{Port: port, State: PortOpen}
}
