package output

import (
	"io"
	"time"

	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
)

const progressInterval = 100 * time.Millisecond

// Progress draws a progress bar on w. Redraws are throttled; a full range
// scan produces tens of thousands of progress events.
type Progress struct {
	w        io.Writer
	title    string
	bar      *pterm.ProgressbarPrinter
	shown    int
	lastDraw time.Time
	disabled bool
}

func NewProgress(w io.Writer, title string) *Progress {
	return &Progress{
		w:     w,
		title: title,
	}
}

func (p *Progress) OnOpen(port int) {}

func (p *Progress) OnProgress(completed, total int) {
	if p.disabled {
		return
	}

	if p.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle(p.title).
			WithWriter(p.w).
			WithRemoveWhenDone(true).
			Start()
		if err != nil {
			log.Debugf("Progress bar disabled: %s", err)
			p.disabled = true
			return
		}
		p.bar = bar
		p.lastDraw = time.Now()
	}

	if completed < total && time.Since(p.lastDraw) < progressInterval {
		return
	}

	if delta := completed - p.shown; delta > 0 {
		p.bar.Add(delta)
		p.shown = completed
	}
	p.lastDraw = time.Now()
}

func (p *Progress) OnDone(open []int) error {
	if p.bar != nil {
		_, _ = p.bar.Stop()
	}
	return nil
}
