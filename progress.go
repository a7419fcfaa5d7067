package main

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Progress prints the sending percentage on a single console line. The line
// is redrawn only when the integer percentage changes.
type Progress struct {
	w     io.Writer
	total int64
	last  int
	t0    time.Time
}

func newProgress(w io.Writer, total int64) *Progress {
	return &Progress{w: w, total: total, last: -1, t0: time.Now()}
}

// percent is floor(100*sent/total). An empty file is complete from the start.
func (p *Progress) percent(sent int64) int {
	if p.total <= 0 {
		return 100
	}
	return int(100 * sent / p.total)
}

// Update records that sent bytes went out and reports whether the line was
// redrawn.
func (p *Progress) Update(sent int64) bool {
	pct := p.percent(sent)
	if pct == p.last {
		return false
	}
	p.last = pct
	p.draw(pct, sent)
	return true
}

// Last is the most recently printed percentage, or -1.
func (p *Progress) Last() int { return p.last }

func (p *Progress) draw(pct int, sent int64) {
	width := 28
	filled := pct * width / 100
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	var speed float64
	if dt := time.Since(p.t0).Seconds(); dt > 0 {
		speed = float64(sent) / dt
	}
	fmt.Fprintf(p.w, "\rSending file... %3d%%  [%s]  %s/s", pct, bar, fmtSize(speed))
}

func fmtSize(n float64) string {
	for _, u := range []string{"B", "KB", "MB", "GB"} {
		if n < 1024 {
			return fmt.Sprintf("%6.1f %s", n, u)
		}
		n /= 1024
	}
	return fmt.Sprintf("%6.1f TB", n)
}

func fmtTime(s float64) string {
	if s < 60 {
		return fmt.Sprintf("%.0fs", s)
	}
	return fmt.Sprintf("%dm%02ds", int(s)/60, int(s)%60)
}
