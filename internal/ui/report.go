package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// Alert is a reading that exceeded its threshold.
type Alert struct {
	Resource string // "CPU" or "RAM"
	Value    float64
}

// Reporter prints the per-tick console report. Colour is used only when w
// is a terminal.
type Reporter struct {
	w     io.Writer
	title lipgloss.Style
	stamp lipgloss.Style
	label lipgloss.Style
	alert lipgloss.Style
	note  lipgloss.Style
}

func NewReporter(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:     w,
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("45")),
		stamp: r.NewStyle().Foreground(lipgloss.Color("244")),
		label: r.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		alert: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		note:  r.NewStyle().Foreground(lipgloss.Color("78")),
	}
}

func (r *Reporter) Start() {
	fmt.Fprintln(r.w, r.title.Render("Monitoring system resources (Ctrl+C to stop)..."))
}

// Sample prints the summary line and both top consumer lines.
func (r *Reporter) Sample(s model.Sample) {
	fmt.Fprintf(r.w, "\n%s CPU: %v%% | RAM: %v%% | Disk: %v%% | Net Sent: %.2f MB | Net Recv: %.2f MB\n",
		r.stamp.Render("["+s.Timestamp+"]"),
		s.CPUPercent, s.RAMPercent, s.DiskPercent, s.NetSentMB, s.NetRecvMB)
	fmt.Fprintf(r.w, "%s %s\n", r.label.Render("Top CPU process:"), s.TopCPU)
	fmt.Fprintf(r.w, "%s %s\n", r.label.Render("Top RAM process:"), s.TopRAM)
}

func (r *Reporter) Alert(a Alert) {
	fmt.Fprintln(r.w, r.alert.Render(fmt.Sprintf("ALERT: high %s usage (%v%%)", a.Resource, a.Value)))
}

func (r *Reporter) Stopping() {
	fmt.Fprintln(r.w, "\n"+r.title.Render("Monitor stopped. Exporting logs..."))
}

func (r *Reporter) Exported(paths []string) {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = "'" + p + "'"
	}
	fmt.Fprintln(r.w, r.note.Render("Logs exported to "+strings.Join(quoted, ", ")+"."))
}
