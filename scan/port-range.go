package scan

import "fmt"

const (
	MinPort = 1
	MaxPort = 65535
)

// PortRange is an inclusive range of ports within [MinPort, MaxPort].
type PortRange struct {
	Start int
	End   int
}

// FullRange covers every port.
var FullRange = PortRange{Start: MinPort, End: MaxPort}

func NewPortRange(start, end int) (PortRange, error) {
	r := PortRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return PortRange{}, err
	}
	return r, nil
}

func (r PortRange) Validate() error {
	if r.Start < MinPort || r.Start > MaxPort {
		return &InvalidRangeError{Start: r.Start, End: r.End, Reason: fmt.Sprintf("start port must be within %d-%d", MinPort, MaxPort)}
	}
	if r.End < MinPort || r.End > MaxPort {
		return &InvalidRangeError{Start: r.Start, End: r.End, Reason: fmt.Sprintf("end port must be within %d-%d", MinPort, MaxPort)}
	}
	if r.Start > r.End {
		return &InvalidRangeError{Start: r.Start, End: r.End, Reason: "start port is greater than end port"}
	}
	return nil
}

func (r PortRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

func (r PortRange) Contains(port int) bool {
	return port >= r.Start && port <= r.End
}

func (r PortRange) Ports() []int {
	ports := make([]int, 0, r.Len())
	for i := r.Start; i <= r.End; i++ {
		ports = append(ports, i)
	}
	return ports
}

func (r PortRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
