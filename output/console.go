package output

import (
	"fmt"
	"io"

	"github.com/csak/csak/scan"
	log "github.com/sirupsen/logrus"
)

// Console streams discoveries to the log as they happen and prints the final
// "PROTO PORT" lines to w.
type Console struct {
	w     io.Writer
	proto scan.Protocol
}

func NewConsole(w io.Writer, proto scan.Protocol) *Console {
	return &Console{
		w:     w,
		proto: proto,
	}
}

func (c *Console) OnOpen(port int) {
	log.Infof("Discovered open port %d/%s", port, c.proto)
}

func (c *Console) OnProgress(completed, total int) {}

func (c *Console) OnDone(open []int) error {
	for _, port := range open {
		if _, err := fmt.Fprintln(c.w, scan.FormatLine(c.proto, port)); err != nil {
			return err
		}
	}
	return nil
}
