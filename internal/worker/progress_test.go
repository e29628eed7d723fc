package worker

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestProgressAveragesFrameTime(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(4, true)
	p.output = &buf

	p.Update(1, 4, 0, 100*time.Millisecond)
	p.Update(2, 4, 0, 300*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "2/4 frames") {
		t.Errorf("expected frame count in output, got %q", out)
	}
	if !strings.Contains(out, "200ms/frame") {
		t.Errorf("expected averaged frame time in output, got %q", out)
	}
}

func TestProgressReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(3, true)
	p.output = &buf

	p.Update(1, 3, 1, 50*time.Millisecond)

	if !strings.Contains(buf.String(), "(1 failed)") {
		t.Errorf("expected failure count in output, got %q", buf.String())
	}
}

func TestProgressDisabledStaysSilent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(2, false)
	p.output = &buf

	p.Update(1, 2, 0, time.Millisecond)
	p.Done()

	if buf.Len() != 0 {
		t.Errorf("disabled progress must not write, got %q", buf.String())
	}
}

func TestProgressSummary(t *testing.T) {
	p := NewProgress(2, false)
	p.Update(2, 2, 1, 100*time.Millisecond)

	summary := p.Summary()
	if !strings.Contains(summary, "1/2 frames") {
		t.Errorf("expected successful/total in summary, got %q", summary)
	}
	if !strings.Contains(summary, "(1 failed)") {
		t.Errorf("expected failure count in summary, got %q", summary)
	}
	if !strings.Contains(summary, "50ms/frame") {
		t.Errorf("expected average frame time in summary, got %q", summary)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
		{2*time.Hour + 5*time.Minute, "2h5m"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
