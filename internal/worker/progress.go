package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 30

// Progress tracks and displays batch render progress. Besides wall-clock
// throughput it accumulates the per-frame render times reported by the pool,
// so the cost of a single frame stays visible independent of how many
// workers run in parallel.
type Progress struct {
	startTime  time.Time
	output     io.Writer
	total      int
	completed  int
	failed     int
	renderTime time.Duration
	mu         sync.RWMutex
	enabled    bool
}

// NewProgress creates a new progress tracker.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Update records the completion of one frame.
func (p *Progress) Update(completed, total, failed int, frameElapsed time.Duration) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	p.renderTime += frameElapsed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback returns a ProgressFunc suitable for use with Pool.Config.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

func (p *Progress) snapshot() (completed, total, failed int, renderTime, elapsed time.Duration) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.completed, p.total, p.failed, p.renderTime, time.Since(p.startTime)
}

// Print displays the current progress to output.
func (p *Progress) Print() {
	completed, total, failed, renderTime, elapsed := p.snapshot()

	filled := 0
	if total > 0 {
		filled = completed * progressBarWidth / total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)

	line := fmt.Sprintf("\r[%s] %d/%d frames", bar, completed, total)
	if failed > 0 {
		line += fmt.Sprintf(" (%d failed)", failed)
	}
	if completed > 0 {
		avg := renderTime / time.Duration(completed)
		line += fmt.Sprintf(" - %s/frame", formatDuration(avg))

		if completed < total {
			// ETA from wall-clock throughput, which already reflects
			// worker parallelism.
			rate := float64(completed) / elapsed.Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-completed)/rate) * time.Second
				line += fmt.Sprintf(" - ETA: %s", formatDuration(eta))
			}
		}
	}
	if completed == total {
		line += fmt.Sprintf(" - Done in %s", formatDuration(elapsed))
	}

	// Pad to clear previous line content
	line += "          "

	fmt.Fprint(p.output, line)
}

// Done prints the final progress and a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary returns a summary string of the completed work.
func (p *Progress) Summary() string {
	completed, total, failed, renderTime, elapsed := p.snapshot()
	successful := completed - failed

	avg := time.Duration(0)
	if completed > 0 {
		avg = renderTime / time.Duration(completed)
	}

	return fmt.Sprintf("Rendered %d/%d frames (%d failed) in %s (avg %s/frame)",
		successful, total, failed, formatDuration(elapsed), formatDuration(avg))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, mins)
}
