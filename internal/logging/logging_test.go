package logging

import (
	"strings"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero", bytes: 0, want: "0 B"},
		{name: "bytes", bytes: 512, want: "512 B"},
		{name: "kilobytes", bytes: 1536, want: "1.5 KB"},
		{name: "megabytes", bytes: 100 * 1024 * 1024, want: "100.0 MB"},
		{name: "gigabytes", bytes: 3 * 1024 * 1024 * 1024, want: "3.0 GB"},
		{name: "terabytes", bytes: 2 * 1024 * 1024 * 1024 * 1024, want: "2.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestPrintSummarySavingsIsLastLine(t *testing.T) {
	var sb strings.Builder
	PrintSummary(&sb, 1, 3, 5, 0, 1536, true, 40*time.Millisecond)

	out := strings.TrimRight(sb.String(), "\n")
	lines := strings.Split(out, "\n")
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "Total savings: 1.5 KB") {
		t.Errorf("last line = %q, want savings total", last)
	}
}

func TestPrintSummaryQuietPrintsOnlySavings(t *testing.T) {
	var sb strings.Builder
	PrintSummary(&sb, 0, 3, 5, 2, 1024, false, time.Second)

	out := strings.TrimRight(sb.String(), "\n")
	if strings.Count(out, "\n") != 0 {
		t.Errorf("verbosity 0 output = %q, want a single line", out)
	}
	if !strings.HasPrefix(out, "Total savings: 1.0 KB") {
		t.Errorf("verbosity 0 output = %q, want savings total", out)
	}
}
