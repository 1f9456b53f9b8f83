package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/sysmonlog/internal/config"
	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// ErrInterrupted is returned by a Visualizer when the user asked to stop the
// monitor while the chart was open.
var ErrInterrupted = errors.New("interrupted from chart viewer")

// Visualizer renders the CPU and RAM series of the full log. Plot runs
// synchronously; the monitor does not sample while it is open.
type Visualizer interface {
	Plot(ctx context.Context, samples []model.Sample, th config.Thresholds) error
}

// Discard is a Visualizer that draws nothing.
type Discard struct{}

func (Discard) Plot(context.Context, []model.Sample, config.Thresholds) error { return nil }

// ChartViewer shows the series full screen until dismissed with q, esc or
// enter. ctrl+c dismisses it and reports ErrInterrupted.
type ChartViewer struct {
	In  io.Reader
	Out io.Writer
}

func (v *ChartViewer) Plot(ctx context.Context, samples []model.Sample, th config.Thresholds) error {
	m := newChart(samples, th)
	prog := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(v.In),
		tea.WithOutput(v.Out),
	)
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return ErrInterrupted
		}
		return fmt.Errorf("chart viewer: %w", err)
	}
	if c, ok := final.(*chart); ok && c.interrupted {
		return ErrInterrupted
	}
	return nil
}

// chart is the Bubble Tea model of the viewer.
type chart struct {
	samples     []model.Sample
	th          config.Thresholds
	width       int
	height      int
	interrupted bool
}

func newChart(samples []model.Sample, th config.Thresholds) *chart {
	return &chart{samples: samples, th: th, width: 100, height: 30}
}

func (c *chart) Init() tea.Cmd { return nil }

func (c *chart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "enter":
			return c, tea.Quit
		case "ctrl+c":
			c.interrupted = true
			return c, tea.Quit
		}
	}
	return c, nil
}

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cpuStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	ramStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cpuLimitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	ramLimitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	gaugeFill     = "█"
	gaugeEmpty    = "░"
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
)

const (
	cpuMark   = 'o'
	ramMark   = 'x'
	bothMark  = '*'
	cpuLimit  = '-'
	ramLimit  = '='
	axisWidth = 5
)

func (c *chart) View() string {
	header := titleStyle.Render("CPU and RAM usage with recommended limits") + "  " +
		subtleStyle.Render(fmt.Sprintf("%d samples", len(c.samples)))

	var latest model.Sample
	if n := len(c.samples); n > 0 {
		latest = c.samples[n-1]
	}
	gauges := fmt.Sprintf("CPU %s   RAM %s", gaugeBar(latest.CPUPercent, 20), gaugeBar(latest.RAMPercent, 20))

	// Border, header, gauges, x axis, legend and help take 10 rows.
	plotW := max(c.width-axisWidth-6, 10)
	plotH := max(c.height-10, 5)
	body := renderPlot(c.samples, c.th, plotW, plotH)

	legend := strings.Join([]string{
		cpuStyle.Render(string(cpuMark) + " CPU usage (%)"),
		ramStyle.Render(string(ramMark) + " RAM usage (%)"),
		cpuLimitStyle.Render(fmt.Sprintf("%c%c recommended CPU limit (%v%%)", cpuLimit, cpuLimit, c.th.CPU)),
		ramLimitStyle.Render(fmt.Sprintf("%c%c recommended RAM limit (%v%%)", ramLimit, ramLimit, c.th.RAM)),
	}, "   ")
	help := subtleStyle.Render("q/esc: continue monitoring   ctrl+c: stop")

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, gauges, body, legend, help))
}

// renderPlot draws both series on a width x height grid with a y axis from
// 0 to 100 percent and the time range underneath. Readings above 100 are
// drawn on the top row.
func renderPlot(samples []model.Sample, th config.Thresholds, width, height int) string {
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}
	hline := func(pct float64, mark rune) {
		row := grid[rowFor(pct, height)]
		for x := range row {
			if x%2 == 0 {
				row[x] = mark
			}
		}
	}
	hline(th.CPU, cpuLimit)
	hline(th.RAM, ramLimit)

	for i, s := range samples {
		x := columnFor(i, len(samples), width)
		cy, ry := rowFor(s.CPUPercent, height), rowFor(s.RAMPercent, height)
		grid[cy][x] = cpuMark
		if ry == cy {
			grid[ry][x] = bothMark
		} else {
			grid[ry][x] = ramMark
		}
	}

	var b strings.Builder
	for y, row := range grid {
		axis := strings.Repeat(" ", axisWidth-1)
		if y == 0 || y == height-1 || y == height/2 {
			axis = fmt.Sprintf("%*.0f", axisWidth-1, 100*(1-float64(y)/float64(height-1)))
		}
		b.WriteString(subtleStyle.Render(axis + "│"))
		for _, r := range row {
			b.WriteString(styleFor(r).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	b.WriteString(subtleStyle.Render(strings.Repeat(" ", axisWidth-1) + "└" + strings.Repeat("─", width)))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", axisWidth) + timeAxis(samples, width))
	return b.String()
}

func styleFor(r rune) lipgloss.Style {
	switch r {
	case cpuMark, bothMark:
		return cpuStyle
	case ramMark:
		return ramStyle
	case cpuLimit:
		return cpuLimitStyle
	case ramLimit:
		return ramLimitStyle
	}
	return lipgloss.NewStyle()
}

// rowFor maps a percentage to a grid row, 0 being the top.
func rowFor(pct float64, height int) int {
	pct = math.Max(0, math.Min(100, pct))
	return int(math.Round((1 - pct/100) * float64(height-1)))
}

// columnFor spreads n samples over width columns; with more samples than
// columns, neighbours share a column and the later one wins.
func columnFor(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
}

func timeAxis(samples []model.Sample, width int) string {
	if len(samples) == 0 {
		return subtleStyle.Render("no samples yet")
	}
	first, last := samples[0].Timestamp, samples[len(samples)-1].Timestamp
	if len(samples) == 1 || width < len(first)+len(last)+1 {
		return subtleStyle.Render(truncate(first, width))
	}
	gap := width - len(first) - len(last)
	return subtleStyle.Render(first + strings.Repeat(" ", gap) + last)
}

// Helpers
func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
