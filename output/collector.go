package output

import "github.com/csak/csak/scan"

// Collector keeps every event in memory.
type Collector struct {
	Discovered []int
	Completed  int
	Total      int
	Final      []int
	Done       bool
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) OnOpen(port int) {
	c.Discovered = append(c.Discovered, port)
}

func (c *Collector) OnProgress(completed, total int) {
	c.Completed = completed
	c.Total = total
}

func (c *Collector) OnDone(open []int) error {
	c.Final = append([]int(nil), open...)
	c.Done = true
	return nil
}

var _ scan.Sink = (*Collector)(nil)
