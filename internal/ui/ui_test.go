package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/sysmonlog/internal/config"
	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

var defaultThresholds = config.Thresholds{CPU: 80, RAM: 70}

func TestReporterSample(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Sample(model.Sample{
		Timestamp:   "2024-05-17 14:03:09",
		CPUPercent:  42.5,
		RAMPercent:  61,
		DiskPercent: 77.7,
		NetSentMB:   2,
		NetRecvMB:   1.005,
		TopCPU:      "make (PID 90 - 71%)",
		TopRAM:      "java (PID 812 - 18.5%)",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	want := "[2024-05-17 14:03:09] CPU: 42.5% | RAM: 61% | Disk: 77.7% | Net Sent: 2.00 MB | Net Recv: 1.00 MB"
	if lines[0] != want {
		t.Errorf("summary = %q, want %q", lines[0], want)
	}
	if lines[1] != "Top CPU process: make (PID 90 - 71%)" {
		t.Errorf("top cpu line = %q", lines[1])
	}
	if lines[2] != "Top RAM process: java (PID 812 - 18.5%)" {
		t.Errorf("top ram line = %q", lines[2])
	}
}

func TestReporterAlertAndShutdown(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Alert(Alert{Resource: "CPU", Value: 81})
	r.Stopping()
	r.Exported([]string{"system_logs.csv", "system_logs.json"})

	out := buf.String()
	for _, want := range []string{
		"ALERT: high CPU usage (81%)",
		"Monitor stopped. Exporting logs...",
		"Logs exported to 'system_logs.csv', 'system_logs.json'.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func plotRows(t *testing.T, out string) []string {
	t.Helper()
	var rows []string
	for _, line := range strings.Split(out, "\n") {
		r := []rune(line)
		if len(r) > axisWidth && r[axisWidth-1] == '│' {
			rows = append(rows, string(r[axisWidth:]))
		}
	}
	return rows
}

func TestRenderPlot(t *testing.T) {
	var samples []model.Sample
	for i, cpu := range []float64{10, 20, 30, 40, 90} {
		samples = append(samples, model.Sample{Timestamp: "2024-01-01 00:00:0" + string(rune('0'+i)), CPUPercent: cpu, RAMPercent: 50})
	}
	const width, height = 21, 11
	rows := plotRows(t, renderPlot(samples, defaultThresholds, width, height))
	if len(rows) != height {
		t.Fatalf("got %d plot rows, want %d", len(rows), height)
	}
	at := func(row, col int) rune { return []rune(rows[row])[col] }

	if got := at(rowFor(90, height), width-1); got != cpuMark {
		t.Errorf("last cpu point = %q, want %q", got, cpuMark)
	}
	if got := at(rowFor(10, height), 0); got != cpuMark {
		t.Errorf("first cpu point = %q, want %q", got, cpuMark)
	}
	if got := at(rowFor(50, height), 10); got != ramMark {
		t.Errorf("ram point = %q, want %q", got, ramMark)
	}
	if !strings.ContainsRune(rows[rowFor(80, height)], cpuLimit) {
		t.Errorf("cpu limit line missing: %q", rows[rowFor(80, height)])
	}
	if !strings.ContainsRune(rows[rowFor(70, height)], ramLimit) {
		t.Errorf("ram limit line missing: %q", rows[rowFor(70, height)])
	}
}

func TestRowAndColumnMapping(t *testing.T) {
	if rowFor(100, 11) != 0 || rowFor(0, 11) != 10 || rowFor(150, 11) != 0 || rowFor(-3, 11) != 10 {
		t.Error("rowFor does not clamp to the 0..100 axis")
	}
	if columnFor(0, 1, 40) != 0 || columnFor(4, 5, 41) != 40 || columnFor(2, 5, 41) != 20 {
		t.Error("columnFor does not spread samples across the width")
	}
}

func TestChartKeys(t *testing.T) {
	tests := []struct {
		name        string
		key         tea.KeyMsg
		interrupted bool
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChart(nil, defaultThresholds)
			_, cmd := c.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("command is not tea.Quit")
			}
			if c.interrupted != tt.interrupted {
				t.Errorf("interrupted = %v, want %v", c.interrupted, tt.interrupted)
			}
		})
	}
}

func TestChartViewLegend(t *testing.T) {
	c := newChart([]model.Sample{{Timestamp: "2024-01-01 00:00:00", CPUPercent: 12, RAMPercent: 34}}, defaultThresholds)
	c.Update(tea.WindowSizeMsg{Width: 90, Height: 24})
	view := c.View()
	for _, want := range []string{"recommended CPU limit (80%)", "recommended RAM limit (70%)", "1 samples"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChartViewerPlot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"dismiss", "q", nil},
		{"interrupt", "\x03", ErrInterrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &ChartViewer{In: strings.NewReader(tt.input), Out: &bytes.Buffer{}}
			err := v.Plot(context.Background(), []model.Sample{{Timestamp: "2024-01-01 00:00:00", CPUPercent: 1}}, defaultThresholds)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Plot() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	if err := (Discard{}).Plot(context.Background(), nil, defaultThresholds); err != nil {
		t.Errorf("Discard.Plot() = %v", err)
	}
}
