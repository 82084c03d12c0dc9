package scan

import (
	"fmt"
	"net"
	"strings"
	"time"
)

type Progress struct {
	Completed int
	Total     int
}

// Result is the outcome of one scan. It is only handed out once the scan has
// stopped, after which nothing modifies it.
type Result struct {
	Target       Target
	Range        PortRange
	IP           net.IP
	Open         []int
	State        State
	Progress     Progress
	Err          error
	MAC          string
	Manufacturer string
	StartedAt    time.Time
	FinishedAt   time.Time
}

func NewResult(target Target, ports PortRange) Result {
	return Result{
		Target:   target,
		Range:    ports,
		Open:     []int{},
		State:    StatePending,
		Progress: Progress{Total: ports.Len()},
	}
}

// IsComplete reports whether every port in the range was probed.
func (r Result) IsComplete() bool {
	return r.State == StateCompleted
}

func (r Result) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Lines renders one "PROTO PORT" line per open port, ascending.
func (r Result) Lines() []string {
	lines := make([]string, 0, len(r.Open))
	for _, port := range r.Open {
		lines = append(lines, FormatLine(r.Target.Protocol, port))
	}
	return lines
}

func FormatLine(proto Protocol, port int) string {
	return fmt.Sprintf("%s %d", strings.ToUpper(proto.String()), port)
}

// Summary is the one-line human readable verdict.
func (r Result) Summary() string {
	var text string
	if len(r.Open) == 0 {
		text = fmt.Sprintf("No open ports found on %s", r.Target.Host)
	} else {
		ports := make([]string, 0, len(r.Open))
		for _, port := range r.Open {
			ports = append(ports, fmt.Sprintf("%d", port))
		}
		text = fmt.Sprintf("Open ports on %s: %s", r.Target.Host, strings.Join(ports, ", "))
	}
	if r.State == StateCancelled {
		text = fmt.Sprintf("%s (scan interrupted after %d of %d ports)", text, r.Progress.Completed, r.Progress.Total)
	}
	return text
}

func (r Result) String() string {

	host := r.Target.Host
	if r.IP != nil && r.IP.String() != host {
		host = fmt.Sprintf("%s (%s)", host, r.IP.String())
	}

	text := fmt.Sprintf("Scan results for host %s\n", host)
	text = fmt.Sprintf("%s\t%d/%d %s ports scanned in %s\n", text, r.Progress.Completed, r.Progress.Total, r.Target.Protocol, r.Duration().String())

	if r.MAC != "" {
		text = fmt.Sprintf("%s\t%s %s\n", text, pad("MAC:", 16), r.MAC)
	}
	if r.Manufacturer != "" {
		text = fmt.Sprintf("%s\t%s %s\n", text, pad("Manufacturer:", 16), r.Manufacturer)
	}

	if len(r.Open) > 0 {
		text = fmt.Sprintf(
			"%s\t%s\t%s\t%s\n",
			text,
			"PORT",
			"STATE",
			"SERVICE",
		)
	}

	for _, port := range r.Open {
		text = fmt.Sprintf(
			"%s\t%s\t%s\t%s\n",
			text,
			pad(fmt.Sprintf("%d/%s", port, r.Target.Protocol), 10),
			pad("OPEN", 10),
			DescribePort(r.Target.Protocol, port),
		)
	}

	return text
}

func pad(input string, length int) string {
	for len(input) < length {
		input += " "
	}
	return input
}
