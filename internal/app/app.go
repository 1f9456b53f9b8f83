// Package app assembles the monitor from configuration: the gopsutil
// source, the exporters, the console reporter and the chart viewer.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/sysmonlog/internal/config"
	"github.com/Dicklesworthstone/sysmonlog/internal/export"
	"github.com/Dicklesworthstone/sysmonlog/internal/monitor"
	"github.com/Dicklesworthstone/sysmonlog/internal/sampler"
	"github.com/Dicklesworthstone/sysmonlog/internal/ui"
)

// Application is one configured sysmonlog run.
type Application struct {
	Config config.Config
	Out    io.Writer
	Logger zerolog.Logger

	source sampler.Source
	viz    ui.Visualizer
}

// Option configures an Application during construction.
type Option func(*Application)

// WithSource replaces the host metrics source.
func WithSource(s sampler.Source) Option {
	return func(a *Application) { a.source = s }
}

// WithVisualizer replaces the chart viewer.
func WithVisualizer(v ui.Visualizer) Option {
	return func(a *Application) { a.viz = v }
}

func New(cfg config.Config, out, errOut io.Writer, opts ...Option) *Application {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: errOut, TimeFormat: time.TimeOnly}).
		Level(cfg.Level()).
		With().Timestamp().Str("component", "sysmonlog").Logger()

	a := &Application{Config: cfg, Out: out, Logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	if a.source == nil {
		a.source = sampler.NewHost(cfg.CPUWindow, cfg.DiskPath)
	}
	if a.viz == nil {
		if cfg.Plot {
			a.viz = &ui.ChartViewer{In: os.Stdin, Out: out}
		} else {
			a.viz = ui.Discard{}
		}
	}
	return a
}

// Exporters returns the configured export set: CSV, JSON and, when a path
// is set, the Prometheus textfile.
func (a *Application) Exporters() export.Set {
	set := export.Set{
		export.CSV{Path: a.Config.CSVPath},
		export.JSON{Path: a.Config.JSONPath},
	}
	if a.Config.TextfilePath != "" {
		set = append(set, export.Textfile{Path: a.Config.TextfilePath})
	}
	return set
}

// Run monitors until ctx is cancelled or a fatal error occurs.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Debug().
		Float64("cpu_threshold", a.Config.Thresholds.CPU).
		Float64("ram_threshold", a.Config.Thresholds.RAM).
		Int("cadence", a.Config.Cadence).
		Dur("interval", a.Config.Interval).
		Msg("starting")

	collector := sampler.NewCollector(a.source, a.Logger.With().Str("component", "sampler").Logger())
	loop := monitor.New(a.Config, collector, a.Exporters(), a.viz, ui.NewReporter(a.Out),
		a.Logger.With().Str("component", "monitor").Logger())
	return loop.Run(ctx)
}
