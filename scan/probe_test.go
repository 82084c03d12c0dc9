package scan

import (
	"net"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenTCP(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	return l.Addr().(*net.TCPAddr).Port
}

func TestProbeTCPOpen(t *testing.T) {
	port := listenTCP(t)

	outcome := ProbeTCP("127.0.0.1", port, time.Second)
	assert.Equal(t, port, outcome.Port)
	assert.Equal(t, PortOpen, outcome.State)
	assert.Nil(t, outcome.Err)
}

func TestProbeTCPClosed(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	outcome := ProbeTCP("127.0.0.1", port, time.Second)
	assert.Equal(t, PortClosedOrFiltered, outcome.State)
	require.NotNil(t, outcome.Err)
	assert.Equal(t, KindRefused, outcome.Err.Kind)
	assert.Equal(t, TCP, outcome.Err.Proto)
}

func TestProbeUDPOpen(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	go func() {
		buf := make([]byte, 1500)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			_, _ = conn.WriteTo(buf[:n], addr)
		}
	}()

	port := conn.LocalAddr().(*net.UDPAddr).Port
	outcome := ProbeUDP("127.0.0.1", port, time.Second)
	assert.Equal(t, PortOpen, outcome.State)
	assert.Nil(t, outcome.Err)
}

func TestProbeUDPNoResponse(t *testing.T) {
	// bound but silent: the datagram is swallowed and nothing comes back
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	port := conn.LocalAddr().(*net.UDPAddr).Port
	timeout := 200 * time.Millisecond

	start := time.Now()
	outcome := ProbeUDP("127.0.0.1", port, timeout)
	elapsed := time.Since(start)

	assert.Equal(t, PortClosedOrFiltered, outcome.State)
	require.NotNil(t, outcome.Err)
	assert.Equal(t, KindTimeout, outcome.Err.Kind)
	assert.Less(t, elapsed, timeout+time.Second)
}

func TestProbeUDPClosedPortIsNotOpen(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)

	outcome := ProbeUDP("127.0.0.1", port, 300*time.Millisecond)
	assert.Equal(t, PortClosedOrFiltered, outcome.State)
	assert.NotNil(t, outcome.Err)
}

func TestProbeDispatchesOnProtocol(t *testing.T) {
	port := listenTCP(t)
	assert.Equal(t, PortOpen, Probe(TCP, "127.0.0.1", port, time.Second).State)
}

func TestProbeInvalidPortPanics(t *testing.T) {
	assert.Panics(t, func() { ProbeTCP("127.0.0.1", 0, time.Second) })
	assert.Panics(t, func() { ProbeUDP("127.0.0.1", 65536, time.Second) })
}

func TestDNSPayload(t *testing.T) {
	payload := udpPayload(53)
	require.Greater(t, len(payload), 12)
	// ID 0x4353, RD set
	assert.Equal(t, []byte{0x43, 0x53, 0x01, 0x00}, payload[0:4])
	// one question, no answers
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, payload[4:8])

	// QNAME version.bind, QTYPE TXT, QCLASS CH
	question := append([]byte("\x07version\x04bind\x00"), 0x00, 0x10, 0x00, 0x03)
	assert.Equal(t, question, payload[12:])

	assert.Equal(t, defaultUDPPayload, udpPayload(9999))
}
